package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	createUserUseCase      *appuser.CreateUserUseCase
	updateUserUseCase      *appuser.UpdateUserUseCase
	deleteUserUseCase      *appuser.DeleteUserUseCase
	getUserUseCase         *appuser.GetUserUseCase
	listUsersUseCase       *appuser.ListUsersUseCase
	editPasswordUseCase    *appuser.EditPasswordUseCase
	addBookUseCase         *appuser.AddBookUseCase
	removeBookUseCase      *appuser.RemoveBookUseCase
	listByBirthdateUseCase *appuser.ListByBirthdateUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	createUserUseCase *appuser.CreateUserUseCase,
	updateUserUseCase *appuser.UpdateUserUseCase,
	deleteUserUseCase *appuser.DeleteUserUseCase,
	getUserUseCase *appuser.GetUserUseCase,
	listUsersUseCase *appuser.ListUsersUseCase,
	editPasswordUseCase *appuser.EditPasswordUseCase,
	addBookUseCase *appuser.AddBookUseCase,
	removeBookUseCase *appuser.RemoveBookUseCase,
	listByBirthdateUseCase *appuser.ListByBirthdateUseCase,
) *UserHandler {
	return &UserHandler{
		createUserUseCase:      createUserUseCase,
		updateUserUseCase:      updateUserUseCase,
		deleteUserUseCase:      deleteUserUseCase,
		getUserUseCase:         getUserUseCase,
		listUsersUseCase:       listUsersUseCase,
		editPasswordUseCase:    editPasswordUseCase,
		addBookUseCase:         addBookUseCase,
		removeBookUseCase:      removeBookUseCase,
		listByBirthdateUseCase: listByBirthdateUseCase,
	}
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BasicAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/users/ [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithCause(err))
		return
	}

	result, err := h.listUsersUseCase.Execute(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toUserResponses(result.Users), result.Total, result.Page, result.PageSize)
}

// CurrentUser 当前认证用户
// @Summary      当前认证用户的记录
// @Description  按Basic认证主体的用户名返回用户记录
// @Tags         用户
// @Produce      json
// @Security     BasicAuth
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Router       /api/users/username [get]
func (h *UserHandler) CurrentUser(c *gin.Context) {
	username := middleware.MustGetUsername(c)

	result, err := h.getUserUseCase.ExecuteByUsername(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// GetUser 用户详情
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Security     BasicAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "User Not Found"
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getUserUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// CreateUser 用户注册
// @Summary      用户注册
// @Description  自助注册接口，不需要认证；密码bcrypt加密后存储
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "Received Null Attributes"
// @Router       /api/users/ [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createUserUseCase.Execute(c.Request.Context(), appuser.CreateUserRequest{
		Username:  req.Username,
		Password:  req.Password,
		Name:      req.Name,
		Birthdate: birthdate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toUserResponse(result))
}

// UpdateUser 更新用户
// @Summary      更新用户
// @Description  全量替换（密码除外，存量哈希保留）；请求体ID必须与路径ID一致
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id      path int                   true "用户ID"
// @Param        request body dto.UpdateUserRequest true "完整用户信息"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "Received Null Attributes"
// @Failure      404 {object} response.Response "User Not Found"
// @Failure      409 {object} response.Response "User Id Mismatch"
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateUserUseCase.Execute(c.Request.Context(), id, appuser.UpdateUserRequest{
		ID:        req.ID,
		Username:  req.Username,
		Name:      req.Name,
		Birthdate: birthdate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Tags         用户
// @Produce      json
// @Security     BasicAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "User Not Found"
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteUserUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// EditPassword 修改密码
// @Summary      修改密码
// @Description  旧密码校验通过后才写入新密码哈希
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id      path int                     true "用户ID"
// @Param        request body dto.EditPasswordRequest true "旧密码与新密码"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "User Not Found"
// @Failure      409 {object} response.Response "Old Password Mismatch"
// @Router       /api/users/editPass/{id} [put]
func (h *UserHandler) EditPassword(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.EditPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.editPasswordUseCase.Execute(c.Request.Context(), id, appuser.EditPasswordRequest{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// AddBook 添加持有图书
// @Summary      添加持有图书
// @Tags         用户
// @Produce      json
// @Security     BasicAuth
// @Param        id     path int true "用户ID"
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "Book Not Found / User Not Found"
// @Failure      409 {object} response.Response "Book Already Owned"
// @Router       /api/users/{id}/{bookId} [put]
func (h *UserHandler) AddBook(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	bookID, err := parseID(c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), userID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// RemoveBook 移除持有图书
// @Summary      移除持有图书
// @Description  只解除持有关系，图书记录本身不受影响
// @Tags         用户
// @Produce      json
// @Security     BasicAuth
// @Param        id     path int true "用户ID"
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "Book Not Found / User Not Found"
// @Router       /api/users/{id}/{bookId} [delete]
func (h *UserHandler) RemoveBook(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	bookID, err := parseID(c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.removeBookUseCase.Execute(c.Request.Context(), userID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// UsersByBirthdate 出生日期区间+姓名子串查询
// @Summary      按出生日期区间和姓名子串查询用户
// @Tags         用户
// @Produce      json
// @Security     BasicAuth
// @Param        fromDate   query string false "起始日期（含），格式2006-01-02"
// @Param        toDate     query string false "结束日期（含），格式2006-01-02"
// @Param        characters query string false "姓名子串"
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      409 {object} response.Response "Invalid date"
// @Router       /api/users/birthdateBetweenAndNameContains [get]
func (h *UserHandler) UsersByBirthdate(c *gin.Context) {
	var req dto.UsersByBirthdateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithCause(err))
		return
	}

	var from, to *time.Time
	if req.FromDate != "" {
		t, err := time.Parse(appuser.BirthdateFormat, req.FromDate)
		if err != nil {
			response.Error(c, apperrors.ErrInvalidDate.WithCause(err))
			return
		}
		from = &t
	}
	if req.ToDate != "" {
		t, err := time.Parse(appuser.BirthdateFormat, req.ToDate)
		if err != nil {
			response.Error(c, apperrors.ErrInvalidDate.WithCause(err))
			return
		}
		to = &t
	}

	result, err := h.listByBirthdateUseCase.Execute(c.Request.Context(), appuser.ListByBirthdateRequest{
		From:       from,
		To:         to,
		Characters: req.Characters,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toUserResponses(result.Users), result.Total, result.Page, result.PageSize)
}

// parseBirthdate 解析请求体中的出生日期（格式2006-01-02）
func parseBirthdate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, apperrors.ErrNullAttributes
	}
	t, err := time.Parse(appuser.BirthdateFormat, raw)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate.WithCause(err)
	}
	return t, nil
}
