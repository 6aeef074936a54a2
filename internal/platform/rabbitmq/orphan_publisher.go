package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"pdfsearch/internal/model"
)

type OrphanPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewOrphanPublisher(conn *amqp.Connection, queueName string) *OrphanPublisher {
	return &OrphanPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *OrphanPublisher) PublishOrphan(ctx context.Context, orphan model.OrphanedFile) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if _, err := DeclareQueue(ch, p.queueName); err != nil {
		return err
	}

	payload, err := json.Marshal(orphan)
	if err != nil {
		return fmt.Errorf("marshal orphan payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish orphan failed: %w", err)
	}
	return nil
}
