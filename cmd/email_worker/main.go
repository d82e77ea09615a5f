package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/config"
	"github.com/udconnect/udconnect-api/internal/infrastructure/events"
	"github.com/udconnect/udconnect-api/pkg/helpers"
	"github.com/udconnect/udconnect-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch keeps dispatch fair across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := events.DeclareEmailQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mailer.Deliver(c, mg, msg.Body)
			cancel()
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, mailer.ErrBadJob):
				helpers.LogError(logger, "dropping email job", err, logrus.Fields{"delivery_tag": msg.DeliveryTag})
				_ = msg.Nack(false, false)
			default:
				helpers.LogError(logger, "send failed, requeueing", err, logrus.Fields{"delivery_tag": msg.DeliveryTag})
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	select {
	case <-ctx.Done():
	case <-done:
		logger.Warn("delivery channel closed")
		os.Exit(1)
	}
	logger.Info("shutting down")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
