// Package events publishes order lifecycle events to Kafka for downstream
// integrations. Publishing is fire-and-forget: a full queue or a broken
// broker never affects the outcome of the request that produced the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Event types published to the order topic.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload written to Kafka.
type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        uuid.UUID `json:"order_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	OrderNumber    string    `json:"order_number"`
	Status         string    `json:"status"`
	TotalAmount    string    `json:"total_amount"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Producer handles Kafka message production with a worker pool.
type Producer struct {
	writer       *kafka.Writer
	topic        string
	eventChan    chan OrderEvent
	workerCount  int
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	breaker      *CircuitBreaker
}

// NewProducer creates a producer and starts its worker pool.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	p := &Producer{
		writer:       writer,
		topic:        topic,
		eventChan:    make(chan OrderEvent, 1000),
		workerCount:  10,
		shutdownChan: make(chan struct{}),
		breaker:      NewCircuitBreaker(5, 30*time.Second),
	}

	p.startWorkers()
	return p
}

func (p *Producer) startWorkers() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.eventWorker(i)
	}
	logrus.Infof("[events] started %d order event workers", p.workerCount)
}

func (p *Producer) eventWorker(id int) {
	defer p.wg.Done()

	for {
		select {
		case event := <-p.eventChan:
			err := p.breaker.Call(func() error {
				return p.sendEventSync(event)
			})
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"worker":   id,
					"type":     event.Type,
					"order_id": event.OrderID,
				}).Warnf("failed to publish order event: %v", err)
			}
		case <-p.shutdownChan:
			return
		}
	}
}

// Publish queues an event asynchronously (non-blocking). A nil producer is
// valid and drops everything, so callers never need to branch on whether
// Kafka is configured.
func (p *Producer) Publish(event OrderEvent) {
	if p == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	select {
	case p.eventChan <- event:
	default:
		logrus.Warnf("[events] order event queue full, dropping %s for %s", event.Type, event.OrderID)
	}
}

func (p *Producer) sendEventSync(event OrderEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.OrganizationID.String()),
		Value: message,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "organization_id", Value: []byte(event.OrganizationID.String())},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write order event to Kafka: %w", err)
	}
	return nil
}

// Close gracefully shuts down the producer and its workers.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	close(p.shutdownChan)
	p.wg.Wait()
	return p.writer.Close()
}
