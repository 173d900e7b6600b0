package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	routes "github.com/suchimauz/specialist-triage-booking/internal/adapters/out/rabbitmq"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

type MirrorReloader interface {
	Reload(ctx context.Context) error
}

// MirrorListener reloads the local mirror when another instance reports a
// change to the remote store.
type MirrorListener struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	reloader   MirrorReloader
	cfg        *config.Config
	instanceID string
	logger     out.LoggerPort
}

func NewMirrorListener(reloader MirrorReloader, cfg *config.Config, instanceID string, logger out.LoggerPort) (*MirrorListener, error) {
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

	return &MirrorListener{
		conn:       conn,
		channel:    channel,
		reloader:   reloader,
		cfg:        cfg,
		instanceID: instanceID,
		logger:     logger.WithModule("MirrorListener"),
	}, nil
}

func (l *MirrorListener) Start(ctx context.Context) error {
	err := l.channel.ExchangeDeclare(
		l.cfg.RabbitMQ.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	// Без имени очереди брокер создаёт отдельную очередь на каждый экземпляр
	exclusive := l.cfg.RabbitMQ.Queue == ""
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		!exclusive, // durable
		true,       // delete when unused
		exclusive,  // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return err
	}

	for _, resource := range []routes.ResourceType{
		routes.ResourceTypeAppointment,
		routes.ResourceTypeSpecialist,
		routes.ResourceTypeAll,
	} {
		err = l.channel.QueueBind(
			queue.Name,
			routes.BindingKey(l.cfg.RabbitMQ.Source, resource),
			l.cfg.RabbitMQ.Exchange,
			false,
			nil,
		)
		if err != nil {
			return err
		}
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

	l.logger.Info("mirror.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("mirror.queue.closed", out.LogFields{})
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *MirrorListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *MirrorListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := routes.ParseRoutingKey(msg.RoutingKey)
	if err != nil {
		l.logger.Warn("mirror.message.bad_routing_key", out.LogFields{
			"routingKey": msg.RoutingKey,
		})
		return err
	}

	if !l.shouldReload(routingKey) {
		return nil
	}

	l.logger.Info("mirror.message.received", out.LogFields{
		"routingKey": msg.RoutingKey,
		"messageId":  msg.MessageId,
	})

	// Ошибка reload не повод возвращать сообщение: зеркало уже в offline-режиме
	if err := l.reloader.Reload(ctx); err != nil {
		l.logger.Warn("mirror.message.reload_failed", out.LogFields{
			"error": err.Error(),
		})
	}
	return nil
}

// shouldReload ignores our own events; the writer already reloaded.
func (l *MirrorListener) shouldReload(key routes.RoutingKey) bool {
	if key.InstanceID == l.instanceID {
		return false
	}
	switch key.ResourceType {
	case routes.ResourceTypeAppointment, routes.ResourceTypeSpecialist, routes.ResourceTypeAll:
		return true
	}
	return false
}
