package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

// TestClosedState 关闭状态下请求正常通过
func TestClosedState(t *testing.T) {
	cb := New("metadata", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
	})

	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
	if counts := cb.Counts(); counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestOpenState 连续失败触发熔断后快速失败
func TestOpenState(t *testing.T) {
	cb := New("metadata", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error { return errors.New("service unavailable") })
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断期间不应调用实际函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestHalfOpenRecovery 超时后半开探测，成功则恢复
func TestHalfOpenRecovery(t *testing.T) {
	cb := New("metadata", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	time.Sleep(80 * time.Millisecond)

	// 探测请求放行且成功 → 恢复CLOSED
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("半开状态探测请求期望成功，实际%v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望恢复为CLOSED，实际%s", cb.State())
	}
}

// TestHalfOpenFailureReopens 半开探测失败则重新熔断
func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New("metadata", Config{
		MaxRequests: 1,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	_ = cb.Execute(func() error { return errors.New("fail") })
	time.Sleep(80 * time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("still failing") })
	if cb.State() != StateOpen {
		t.Errorf("探测失败后期望状态为OPEN，实际%s", cb.State())
	}
}

// TestStateChangeCallback 状态变化回调
func TestStateChangeCallback(t *testing.T) {
	cb := New("metadata", Config{
		Timeout: time.Minute,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	var from, to State
	cb.OnStateChange(func(name string, f, tState State) {
		from, to = f, tState
	})

	_ = cb.Execute(func() error { return errors.New("boom") })

	if from != StateClosed || to != StateOpen {
		t.Errorf("期望回调CLOSED→OPEN，实际%s→%s", from, to)
	}
}
