package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestInit 重复初始化不应panic（promauto重复注册会panic）
func TestInit(t *testing.T) {
	Init()
	Init()

	if HTTPRequestsTotal == nil {
		t.Fatal("Init后HTTPRequestsTotal不应为nil")
	}
}

// TestHTTPCounter HTTP请求计数
func TestHTTPCounter(t *testing.T) {
	Init()

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/books/:id", "200"))
	HTTPRequestsTotal.WithLabelValues("GET", "/api/books/:id", "200").Inc()
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/books/:id", "200"))

	if after-before != 1 {
		t.Errorf("期望计数+1，实际+%v", after-before)
	}
}

// TestObserveFetch 外部抓取指标
func TestObserveFetch(t *testing.T) {
	Init()

	before := testutil.ToFloat64(MetadataFetchTotal.WithLabelValues("hit"))
	ObserveFetch("hit", 0.123)
	after := testutil.ToFloat64(MetadataFetchTotal.WithLabelValues("hit"))

	if after-before != 1 {
		t.Errorf("期望hit计数+1，实际+%v", after-before)
	}
}

// TestSetBreakerState 熔断器状态上报
func TestSetBreakerState(t *testing.T) {
	Init()

	SetBreakerState("openlibrary", 1)
	if v := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("openlibrary")); v != 1 {
		t.Errorf("期望状态为1，实际%v", v)
	}

	SetBreakerState("openlibrary", 0)
	if v := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("openlibrary")); v != 0 {
		t.Errorf("期望状态为0，实际%v", v)
	}
}
