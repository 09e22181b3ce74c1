package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kardio/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// 报告事件类型，同时作为 AMQP routing key
const (
	EventReportSubmitted = "report.submitted"
	EventReportResolved  = "report.resolved"
)

// ReportEvent 报告状态变更事件，只携带标识与状态，消费方按需回查
type ReportEvent struct {
	Type          string              `json:"type"`
	ReportID      string              `json:"reportId"`
	UserID        string              `json:"userId"`
	TransactionID string              `json:"transactionId"`
	MerchantID    string              `json:"merchantId"`
	Status        models.ReportStatus `json:"status"`
	Timestamp     time.Time           `json:"timestamp"`
}

// NewReportEvent 由报告构造事件
func NewReportEvent(eventType string, r *models.CategoryChangeReport) ReportEvent {
	return ReportEvent{
		Type:          eventType,
		ReportID:      r.ID,
		UserID:        r.UserID,
		TransactionID: r.TransactionID,
		MerchantID:    r.MerchantID,
		Status:        r.Status,
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON 序列化事件
func (e ReportEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventPublisher 事件发布
type EventPublisher interface {
	Publish(ctx context.Context, event ReportEvent) error
}

// NopPublisher 未启用事件时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReportEvent) error { return nil }

// AMQPPublisher 通过 RabbitMQ topic exchange 发布报告事件
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPPublisher 连接 broker 并声明 exchange
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish 发布持久化消息，routing key 为事件类型
func (p *AMQPPublisher) Publish(ctx context.Context, event ReportEvent) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ReportID,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Close 关闭 channel 与连接
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
