package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"

	"hr-interviews-go/internal/config"
	"hr-interviews-go/internal/domain/events"
	"hr-interviews-go/pkg/logger"
)

var ErrPublisherUnavailable = errors.New("event publisher unavailable")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes change events keyed by employee id, so every change
// for one employee lands on the same partition.
type KafkaPublisher struct {
	writer       messageWriter
	breaker      *gobreaker.CircuitBreaker[struct{}]
	writeTimeout time.Duration
	log          logger.Logger
}

// flushInterval caps how long a write waits for a batch to fill. Events are
// published one at a time on the request path.
const flushInterval = 10 * time.Millisecond

func NewKafkaPublisher(cfg config.EventsConfig, log logger.Logger) *KafkaPublisher {
	return newKafkaPublisher(newKafkaWriter(cfg), cfg.KafkaWriteTimeout, log)
}

func newKafkaWriter(cfg config.EventsConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           flushInterval,
		AllowAutoTopicCreation: true,
	}
}

func newKafkaPublisher(writer messageWriter, writeTimeout time.Duration, log logger.Logger) *KafkaPublisher {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &KafkaPublisher{
		writer:       writer,
		breaker:      newBreaker("kafka-events", log),
		writeTimeout: writeTimeout,
		log:          log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
		defer cancel()
		return struct{}{}, p.writer.WriteMessages(writeCtx, kafka.Message{
			Key:   []byte(event.EmployeeID),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.Type)},
			},
		})
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrPublisherUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newBreaker(name string, log logger.Logger) *gobreaker.CircuitBreaker[struct{}] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn("broker: circuit state changed", "breaker", name, "from", from.String(), "to", to.String())
	}
	return gobreaker.NewCircuitBreaker[struct{}](st)
}
