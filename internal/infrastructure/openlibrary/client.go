// Package openlibrary 实现对Open Library图书元数据API的客户端
//
// 上游接口：GET /api/books?bibkeys=ISBN:<isbn>&format=json&jscmd=data
// 响应是以"ISBN:<isbn>"为键的对象；空对象表示源中没有该ISBN的记录。
//
// 可靠性设计（上游是公共服务，不可假设稳定）：
// 1. 请求超时显式可配，不依赖http.Client零值（零值是不超时）
// 2. 熔断器包裹HTTP调用：上游连续故障时快速失败，不阻塞请求线程
// 3. 每次本地未命中恰好触发一次外部调用：无重试、无缓存（调用方决定是否入库）
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

// Client Open Library客户端，实现book.MetadataFetcher
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient 创建客户端
func NewClient(cfg *config.Config) *Client {
	breaker := circuitbreaker.New("openlibrary", circuitbreaker.Config{
		MaxRequests: uint32(cfg.OpenLibrary.BreakerMaxRequests),
		Interval:    cfg.OpenLibrary.BreakerInterval,
		Timeout:     cfg.OpenLibrary.BreakerTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.OpenLibrary.BreakerMaxFailures)
		},
	})
	breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		logger.L().Warn("circuit breaker state changed",
			logger.String("name", name),
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
		metrics.SetBreakerState(name, int(to))
	})

	return &Client{
		baseURL: cfg.OpenLibrary.BaseURL,
		http:    &http.Client{Timeout: cfg.OpenLibrary.Timeout},
		breaker: breaker,
	}
}

// bookRecord 上游jscmd=data格式的记录结构
// 必填字段用指针区分"缺失"和"零值"
type bookRecord struct {
	Title         *string `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Publishers    []named `json:"publishers"`
	Authors       []named `json:"authors"`
	NumberOfPages *int    `json:"number_of_pages"`
	PublishDate   *string `json:"publish_date"`
	Cover         struct {
		Small string `json:"small"`
	} `json:"cover"`
}

type named struct {
	Name string `json:"name"`
}

// FetchByISBN 抓取并归一化外部记录
//
// 错误映射：
// - 网络错误/非2xx/熔断打开 → ErrCodeConnectionFailed
// - 响应为空对象 → ErrBookNotFound（源中无此记录）
// - 记录缺必填字段、提取不到年份 → ErrCodeUnableToReadRecord
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	start := time.Now()

	var body []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		body, reqErr = c.get(ctx, isbn)
		return reqErr
	})
	if err != nil {
		metrics.ObserveFetch(fetchResult(err), time.Since(start).Seconds())
		if errors.Is(err, circuitbreaker.ErrOpenState) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			return nil, apperrors.New(apperrors.ErrCodeConnectionFailed,
				"Connection Failed: metadata service temporarily unavailable").WithCause(err)
		}
		return nil, err
	}

	b, err := c.normalize(body, isbn)
	metrics.ObserveFetch(fetchResult(err), time.Since(start).Seconds())
	return b, err
}

// get 执行HTTP调用，只返回连接类错误（供熔断器统计）
func (c *Client) get(ctx context.Context, isbn string) ([]byte, error) {
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data",
		c.baseURL, url.QueryEscape("ISBN:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeConnectionFailed,
			"Connection Failed: "+err.Error()).WithCause(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeConnectionFailed,
			"Connection Failed: "+err.Error()).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeConnectionFailed,
			"Connection Failed: "+err.Error()).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 把上游状态码和报文带给调用方（对外表现为409）
		return nil, apperrors.New(apperrors.ErrCodeConnectionFailed,
			fmt.Sprintf("Connection Failed With Status %d: %s", resp.StatusCode, string(body)))
	}

	return body, nil
}

// normalize 解析响应体并归一化为图书实体
func (c *Client) normalize(body []byte, isbn string) (*book.Book, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: malformed response").WithCause(err)
	}

	// 空对象：外部源没有该ISBN的记录
	if len(payload) == 0 {
		return nil, apperrors.ErrBookNotFound
	}

	raw, ok := payload["ISBN:"+isbn]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: missing ISBN key")
	}

	var record bookRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: "+err.Error()).WithCause(err)
	}

	dto, err := toDTO(&record, isbn)
	if err != nil {
		return nil, err
	}
	return dto.ToBook()
}

// toDTO 记录 → DTO，必填字段缺失即失败
// 调用方不需要区分具体缺了哪个字段，统一归为"记录不可读"
func toDTO(record *bookRecord, isbn string) (*BookDTO, error) {
	if record.Title == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: missing title")
	}
	if record.NumberOfPages == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: missing number_of_pages")
	}
	if record.PublishDate == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: missing publish_date")
	}
	if len(record.Authors) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: missing authors")
	}
	if len(record.Publishers) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: missing publishers")
	}
	if record.Cover.Small == "" {
		return nil, apperrors.New(apperrors.ErrCodeUnableToReadRecord,
			"Unable To Read Book Record: missing cover")
	}

	// subtitle可选，缺失时用"-"占位（保证Book的必填校验通过）
	subtitle := "-"
	if record.Subtitle != nil && *record.Subtitle != "" {
		subtitle = *record.Subtitle
	}

	dto := &BookDTO{
		ISBN:          isbn,
		Title:         *record.Title,
		Subtitle:      subtitle,
		Publishers:    names(record.Publishers),
		Authors:       names(record.Authors),
		NumberOfPages: *record.NumberOfPages,
		PublishDate:   *record.PublishDate,
		Image:         record.Cover.Small,
	}
	return dto, nil
}

// names 提取名称列表，保持源顺序
func names(items []named) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

// fetchResult 错误 → 指标result标签
func fetchResult(err error) string {
	switch {
	case err == nil:
		return "hit"
	case apperrors.Is(err, apperrors.ErrBookNotFound):
		return "miss"
	case errors.Is(err, circuitbreaker.ErrOpenState), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return "rejected"
	default:
		appErr := apperrors.GetAppError(err)
		if appErr.Code == apperrors.ErrCodeUnableToReadRecord {
			return "unreadable"
		}
		return "connection_failed"
	}
}
