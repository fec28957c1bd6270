package mq

import (
	"context"
	"os"
	"testing"
)

// bookImportedEvent 测试事件结构
type bookImportedEvent struct {
	BookID uint   `json:"book_id"`
	ISBN   string `json:"isbn"`
}

// TestNopPublisher 禁用MQ时的空实现
func TestNopPublisher(t *testing.T) {
	var p EventPublisher = NopPublisher{}

	if err := p.Publish(context.Background(), "book.imported", bookImportedEvent{BookID: 1, ISBN: "9780747532743"}); err != nil {
		t.Fatalf("NopPublisher.Publish不应失败: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("NopPublisher.Close不应失败: %v", err)
	}
}

// TestPublisher_Publish 需要本地RabbitMQ，通过环境变量开启
func TestPublisher_Publish(t *testing.T) {
	url := os.Getenv("LIBRARY_TEST_AMQP_URL")
	if url == "" {
		t.Skip("未设置LIBRARY_TEST_AMQP_URL，跳过RabbitMQ集成测试")
	}

	publisher, err := NewPublisher(url, "library.test.events")
	if err != nil {
		t.Fatalf("创建Publisher失败: %v", err)
	}
	defer publisher.Close()

	event := bookImportedEvent{BookID: 123, ISBN: "9780747532743"}
	if err := publisher.Publish(context.Background(), "book.imported", event); err != nil {
		t.Fatalf("发布事件失败: %v", err)
	}
}
