package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studenthub/internal/cart"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer struct {
	Writer WriterInterface // Используем интерфейс
	Logger *zap.SugaredLogger
}

// NewProducer асинхронный writer: операции корзины не должны ждать брокер
func NewProducer(brokers []string, topic string, logger *zap.SugaredLogger) *Producer {
	return &Producer{
		Writer: &kafkaWriterWrapper{ // Обёртка над реальным Writer
			Writer: &kafka.Writer{
				Addr:     kafka.TCP(brokers...),
				Topic:    topic,
				Balancer: &kafka.Hash{},
				Async:    true,
				Completion: func(messages []kafka.Message, err error) {
					if err != nil {
						logger.Errorf("Failed to deliver %d Kafka messages: %v", len(messages), err)
					}
				},
			},
		},
		Logger: logger,
	}
}

// Обёртка для реализации интерфейса
type kafkaWriterWrapper struct {
	Writer *kafka.Writer
}

func (w *kafkaWriterWrapper) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return w.Writer.WriteMessages(ctx, msgs...)
}

func (w *kafkaWriterWrapper) Close() error {
	return w.Writer.Close()
}

func (p *Producer) SendEvent(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// ключ по сессии, чтобы события одной корзины попадали в одну партицию
	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
	})

	if err != nil {
		p.Logger.Errorf("Failed to write Kafka message: %v", err)
		return err
	}

	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// CartHook подписывает каждую новую корзину сессии на отправку событий.
// Ошибки отправки только логируются, на корзину они не влияют
func CartHook(producer EventProducer, logger *zap.SugaredLogger) cart.Hook {
	return func(sessionID string, store *cart.Store) {
		store.Subscribe(func(change cart.Change) {
			event := NewEvent(sessionID, change, time.Now())
			if err := producer.SendEvent(context.Background(), event); err != nil {
				logger.Warnf("failed to send %s event for session %s: %v", event.Type, sessionID, err)
			}
		})
	}
}
