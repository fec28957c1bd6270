// Package metrics 提供基于Prometheus的指标收集
//
// 指标分四组：
// 1. HTTP：请求总数、耗时、并发数（gin中间件上报）
// 2. 外部元数据服务：抓取总数（按结果分类）、抓取耗时
// 3. 熔断器：状态、请求结果
// 4. 缓存与消息：图书缓存命中/未命中、事件发布总数
//
// 使用方式：main中调用Init()一次，再通过promhttp暴露/metrics端点
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，非真实URL，避免高基数）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（秒）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 外部元数据服务指标

	// MetadataFetchTotal 外部抓取总数
	// 标签：result（hit/miss/connection_failed/unreadable/rejected）
	MetadataFetchTotal *prometheus.CounterVec

	// MetadataFetchDuration 外部抓取耗时（秒）
	MetadataFetchDuration prometheus.Histogram

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// 缓存指标

	// BookCacheHitsTotal 图书详情缓存命中总数
	BookCacheHitsTotal prometheus.Counter

	// BookCacheMissesTotal 图书详情缓存未命中总数
	BookCacheMissesTotal prometheus.Counter

	// 消息队列指标

	// EventsPublishedTotal 领域事件发布总数
	// 标签：routing_key（如book.created）、result（success/failure）
	EventsPublishedTotal *prometheus.CounterVec
)

// Init 初始化并注册所有指标
// 必须在程序启动时调用一次；重复调用为no-op
func Init() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "Number of HTTP requests currently being served",
		},
	)

	MetadataFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_fetch_total",
			Help: "Total number of external book metadata fetches",
		},
		[]string{"result"},
	)

	MetadataFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "metadata_fetch_duration_seconds",
			Help: "External metadata fetch latency in seconds",
			// 外部HTTP调用偏慢，桶从10ms起
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	BookCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "book_cache_hits_total",
			Help: "Total number of book detail cache hits",
		},
	)

	BookCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "book_cache_misses_total",
			Help: "Total number of book detail cache misses",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"routing_key", "result"},
	)
}

// ObserveFetch 记录一次外部抓取的结果与耗时
func ObserveFetch(result string, seconds float64) {
	if !initialized {
		return
	}
	MetadataFetchTotal.WithLabelValues(result).Inc()
	MetadataFetchDuration.Observe(seconds)
}

// IncEventPublished 记录一次事件发布结果
func IncEventPublished(routingKey, result string) {
	if !initialized {
		return
	}
	EventsPublishedTotal.WithLabelValues(routingKey, result).Inc()
}

// SetBreakerState 上报熔断器状态
func SetBreakerState(name string, state int) {
	if !initialized {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// IncBookCacheHit 记录一次图书缓存命中
func IncBookCacheHit() {
	if !initialized {
		return
	}
	BookCacheHitsTotal.Inc()
}

// IncBookCacheMiss 记录一次图书缓存未命中
func IncBookCacheMiss() {
	if !initialized {
		return
	}
	BookCacheMissesTotal.Inc()
}
