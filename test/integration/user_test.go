package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 用户模块集成测试
//
// 覆盖场景：
// 1. 注册（公开）与Basic认证
// 2. 修改密码（旧密码校验）
// 3. 持有图书的添加与移除
// 4. 出生日期区间+姓名子串查询

func TestUserRegisterAndAuth(t *testing.T) {
	base := BaseURL(t)

	t.Run("注册后可用Basic认证", func(t *testing.T) {
		user, creds := RegisterTestUser(t, base, "auth")

		status, resp := GetJSON(t, base+"/api/users/username", creds)
		require.Equal(t, http.StatusOK, status)

		var got UserData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, user.Username, got.Username)
	})

	t.Run("响应不包含密码", func(t *testing.T) {
		user, creds := RegisterTestUser(t, base, "nopass")

		status, resp := GetJSON(t, fmt.Sprintf("%s/api/users/%d", base, user.ID), creds)
		require.Equal(t, http.StatusOK, status)
		assert.False(t, strings.Contains(string(resp.Data), "password"),
			"用户响应不应包含password字段: %s", string(resp.Data))
	})

	t.Run("错误密码返回401", func(t *testing.T) {
		_, creds := RegisterTestUser(t, base, "badpass")
		creds.Password = "wrong-password"

		status, resp := GetJSON(t, base+"/api/users/username", creds)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Wrong User Or Password", resp.Message)
	})

	t.Run("缺失必填属性返回400", func(t *testing.T) {
		status, resp := PostJSON(t, base+"/api/users/", map[string]string{
			"username": GenerateTestUsername("incomplete"),
			"password": "Test1234",
		}, Anonymous)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Received Null Attributes", resp.Message)
	})
}

func TestUserEditPassword(t *testing.T) {
	base := BaseURL(t)
	user, creds := RegisterTestUser(t, base, "editpass")

	t.Run("旧密码错误返回409", func(t *testing.T) {
		status, resp := PutJSON(t, fmt.Sprintf("%s/api/users/editPass/%d", base, user.ID),
			map[string]string{
				"oldPassword": "definitely-wrong",
				"newPassword": "NewPass1234",
			}, creds)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Old Password Mismatch", resp.Message)

		// 旧凭证仍然有效
		status, _ = GetJSON(t, base+"/api/users/username", creds)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("修改成功后新密码生效", func(t *testing.T) {
		status, resp := PutJSON(t, fmt.Sprintf("%s/api/users/editPass/%d", base, user.ID),
			map[string]string{
				"oldPassword": creds.Password,
				"newPassword": "NewPass1234",
			}, creds)
		require.Equal(t, http.StatusOK, status, "修改密码失败: %s", resp.Message)

		status, _ = GetJSON(t, base+"/api/users/username", creds)
		assert.Equal(t, http.StatusUnauthorized, status, "旧密码应失效")

		creds.Password = "NewPass1234"
		status, _ = GetJSON(t, base+"/api/users/username", creds)
		assert.Equal(t, http.StatusOK, status, "新密码应生效")
	})
}

func TestUserBookOwnership(t *testing.T) {
	base := BaseURL(t)
	user, creds := RegisterTestUser(t, base, "ownership")
	book := CreateTestBook(t, base, "Integration Owned Book")

	ownershipURL := fmt.Sprintf("%s/api/users/%d/%d", base, user.ID, book.ID)

	t.Run("添加持有图书", func(t *testing.T) {
		status, resp := PutJSON(t, ownershipURL, nil, creds)
		require.Equal(t, http.StatusOK, status, "添加失败: %s", resp.Message)

		var got UserData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Len(t, got.Books, 1)
		assert.Equal(t, book.ID, got.Books[0].ID)
	})

	t.Run("重复添加返回409", func(t *testing.T) {
		status, resp := PutJSON(t, ownershipURL, nil, creds)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Book Already Owned", resp.Message)
	})

	t.Run("移除后图书记录仍在", func(t *testing.T) {
		status, resp := DeleteJSON(t, ownershipURL, creds)
		require.Equal(t, http.StatusOK, status, "移除失败: %s", resp.Message)

		var got UserData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Empty(t, got.Books)

		status, _ = GetJSON(t, fmt.Sprintf("%s/api/books/%d", base, book.ID), creds)
		assert.Equal(t, http.StatusOK, status, "图书记录本身不应被删除")
	})

	t.Run("移除未持有图书返回404", func(t *testing.T) {
		status, resp := DeleteJSON(t, ownershipURL, creds)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Book Not Found", resp.Message)
	})
}

func TestUsersByBirthdate(t *testing.T) {
	base := BaseURL(t)
	user, creds := RegisterTestUser(t, base, "birthdate")

	t.Run("区间与姓名子串过滤", func(t *testing.T) {
		url := fmt.Sprintf(
			"%s/api/users/birthdateBetweenAndNameContains?fromDate=1950-01-01&toDate=2000-12-31&characters=%s",
			base, "Integration+birthdate")
		status, resp := GetJSON(t, url, creds)
		require.Equal(t, http.StatusOK, status, "查询失败: %s", resp.Message)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.GreaterOrEqual(t, page.Total, int64(1))

		var list []UserData
		require.NoError(t, json.Unmarshal(page.List, &list))

		found := false
		for _, item := range list {
			if item.ID == user.ID {
				found = true
			}
		}
		assert.True(t, found, "结果应包含刚注册的用户")
	})

	t.Run("日期无法解析返回409", func(t *testing.T) {
		url := base + "/api/users/birthdateBetweenAndNameContains?fromDate=1950-01-01&toDate=not-a-date"
		status, resp := GetJSON(t, url, creds)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Invalid date", resp.Message)
	})
}
