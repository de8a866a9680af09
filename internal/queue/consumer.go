package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Queue names consumed for the activity log. Kept in sync with the
// publisher in internal/service.
const (
	queueCreated   = "booking.created"
	queueCancelled = "booking.cancelled"
)

// StartBookingConsumer connects to RabbitMQ, declares both booking queues
// (durable) and appends each event as a single human-readable line to
// logs/booking.log. It runs a reconnect loop with exponential backoff and
// never returns under normal operation; processing errors are logged and the
// offending message rejected without requeue.
func StartBookingConsumer(url string, logger *zap.Logger) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("booking-consumer dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, logger); err != nil {
			logger.Warn("booking-consumer loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, logger *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warn("booking-consumer set QoS failed", zap.Error(err))
	}

	deliveries := make(chan amqp.Delivery)
	for _, name := range []string{queueCreated, queueCancelled} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		go func(in <-chan amqp.Delivery) {
			for d := range in {
				deliveries <- d
			}
		}(msgs)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case d := <-deliveries:
			if err := handleMessage(d.RoutingKey, d.Body); err != nil {
				logger.Warn("booking-consumer handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // reject, no requeue, to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		case err := <-closed:
			if err != nil {
				return err
			}
			return errors.New("connection closed")
		}
	}
}

func handleMessage(routingKey string, body []byte) error {
	var line string
	switch routingKey {
	case queueCreated:
		var ev BookingCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal created event: %w", err)
		}
		line = fmt.Sprintf("%s CREATED booking=%d room=%s date=%s slot=%s batch=%s",
			ev.CreatedAt, ev.BookingID, ev.RoomNumber, ev.Date, ev.TimeSlot, ev.BatchName)
	case queueCancelled:
		var ev BookingCancelledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal cancelled event: %w", err)
		}
		line = fmt.Sprintf("%s CANCELLED room=%s date=%s slot=%s",
			ev.CancelledAt, ev.RoomNumber, ev.Date, ev.TimeSlot)
	default:
		return fmt.Errorf("unknown routing key %q", routingKey)
	}
	return appendLog(line)
}

func appendLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join("logs", "booking.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = fmt.Fprintln(f, line)
	return err
}
