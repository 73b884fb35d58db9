package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"ninjashop/internal/domain/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 呼び出し側が期限を付けていない場合の上限
const writeTimeout = 2 * time.Second

// 注文IDをキーにして同じ注文のイベント順を保つ
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: writeTimeout,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event model.OrderEvent) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, writeTimeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.logger.Debug("order event published",
		zap.String("event_id", event.EventID),
		zap.String("type", string(event.Type)),
		zap.Int64("order_id", event.OrderID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

func encode(event model.OrderEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}

// KAFKA_BROKERS未設定時
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.OrderEvent) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }
