package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/udconnect/udconnect-api/pkg/mailer"
)

// DeclareEmailQueue declares the durable queue shared by the API and the email worker.
func DeclareEmailQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(name, true, false, false, false, nil)
	return err
}

// EmailQueue puts email jobs on a RabbitMQ queue through the default exchange.
type EmailQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	name string
}

func DialEmailQueue(url, name string) (*EmailQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := DeclareEmailQueue(ch, name); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &EmailQueue{conn: conn, ch: ch, name: name}, nil
}

func (q *EmailQueue) Enqueue(ctx context.Context, job mailer.EmailJob) error {
	msg, err := emailPublishing(job, time.Now())
	if err != nil {
		return err
	}
	return q.ch.PublishWithContext(ctx, "", q.name, false, false, msg)
}

func (q *EmailQueue) Close() {
	if q == nil {
		return
	}
	_ = q.ch.Close()
	_ = q.conn.Close()
}

// emailPublishing wraps a job as a persistent message; Type carries the template name.
func emailPublishing(job mailer.EmailJob, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return amqp.Publishing{}, err
	}
	typ := job.Template
	if typ == "" {
		typ = "raw"
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         typ,
		Timestamp:    at.UTC(),
		Body:         body,
	}, nil
}
