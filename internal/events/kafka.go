package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/metrics"
)

// MessageWriter is the subset of *kafka.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaRelayConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	// MaxEventBytes caps one encoded event. Order events inline their payment
	// screenshot, so this must exceed the screenshot ceiling. Zero keeps kafka-go's 1 MB.
	MaxEventBytes int64
}

// KafkaRelay mirrors every bus event onto a Kafka topic. It is an ordinary
// subscriber, so it inherits the bus's at-most-once delivery.
type KafkaRelay struct {
	bus          *Bus
	writer       MessageWriter
	writeTimeout time.Duration
	stopOnce     sync.Once
}

func NewKafkaWriter(cfg KafkaRelayConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		BatchBytes:   cfg.MaxEventBytes,
	}
}

func NewKafkaRelay(bus *Bus, writer MessageWriter, writeTimeout time.Duration) *KafkaRelay {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &KafkaRelay{
		bus:          bus,
		writer:       writer,
		writeTimeout: writeTimeout,
	}
}

// Run forwards events until ctx is cancelled or the bus closes.
func (r *KafkaRelay) Run(ctx context.Context) error {
	sub := r.bus.SubscribeInternal()
	defer r.bus.Unsubscribe(sub)
	defer r.shutdown()

	logrus.Info("Kafka relay started")
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Kafka relay context cancelled, stopping")
			return nil
		case ev, ok := <-sub.C:
			if !ok {
				logrus.Info("Event bus closed, stopping Kafka relay")
				return nil
			}
			r.forward(ctx, ev)
		}
	}
}

func (r *KafkaRelay) forward(ctx context.Context, ev Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		logrus.WithError(err).WithField("event", ev.Kind).Error("Failed to encode event for Kafka")
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(ev.Kind),
		Value: value,
		Time:  ev.PublishedAt,
	}
	if err := r.writer.WriteMessages(writeCtx, msg); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("kafka_relay", "internal").Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"event": ev.Kind,
			"seq":   ev.Seq,
		}).Error("Failed to write event to Kafka")
	}
}

func (r *KafkaRelay) shutdown() {
	r.stopOnce.Do(func() {
		if err := r.writer.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close Kafka writer")
		}
	})
}
