package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

// EventPublisher tells other instances that they should reload their mirror.
type EventPublisher struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	source     string
	instanceID string
	logger     out.LoggerPort
}

func NewEventPublisher(cfg *config.Config, instanceID string, logger out.LoggerPort) (*EventPublisher, error) {
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

	err = channel.ExchangeDeclare(
		cfg.RabbitMQ.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &EventPublisher{
		conn:       conn,
		channel:    channel,
		exchange:   cfg.RabbitMQ.Exchange,
		source:     cfg.RabbitMQ.Source,
		instanceID: instanceID,
		logger:     logger.WithModule("EventPublisher"),
	}, nil
}

func (p *EventPublisher) PublishAppointmentEvent(ctx context.Context, event out.AppointmentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := RoutingKey{
		Source:       p.source,
		Receiver:     MirrorReceiver,
		ResourceType: ResourceTypeAppointment,
		InstanceID:   p.instanceID,
		EventType:    string(event.Type),
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		key.String(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Timestamp:   time.Now(),
			AppId:       p.source,
			Body:        body,
		},
	)
	if err != nil {
		p.logger.Error("rabbitmq.publish.failed", out.LogFields{
			"routingKey": key.String(),
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Debug("rabbitmq.publish.sent", out.LogFields{
		"routingKey": key.String(),
	})
	return nil
}

func (p *EventPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
