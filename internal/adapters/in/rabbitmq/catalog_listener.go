package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yusched/schedule-generator/internal/config"
	"github.com/yusched/schedule-generator/internal/core/ports/in"
	"github.com/yusched/schedule-generator/internal/core/ports/out"
)

// CatalogListener слушает события обновления файлов термов и сбрасывает
// кэшированный снимок каталога соответствующего терма
type CatalogListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.ScheduleGeneratorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type CatalogUpdateMessage struct {
	Term string `json:"term"`
}

func NewCatalogListener(useCase in.ScheduleGeneratorUseCase, cfg *config.Config, logger out.LoggerPort) (*CatalogListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CatalogListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CatalogListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.message.failed", out.LogFields{
						"error": err.Error(),
					})
					// Сломанное сообщение не переигрываем
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("rabbitmq.listener.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *CatalogListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var update CatalogUpdateMessage
	if err := json.Unmarshal(msg.Body, &update); err != nil {
		return err
	}

	l.logger.Info("rabbitmq.catalog_update.received", out.LogFields{
		"term": update.Term,
	})

	return l.useCase.InvalidateTerm(ctx, update.Term)
}

func (l *CatalogListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
