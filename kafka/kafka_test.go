package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() OrderCompletedEvent {
	return OrderCompletedEvent{
		SessionID:   "sess-1",
		OrderNumber: "LS12345678",
		Lines:       []OrderLine{{ProductID: 1, Name: "Nordic Pendant Light", Quantity: 2, PriceValue: 129000}},
		ItemCount:   2,
		Total:       258000,
		City:        "Seoul",
		Country:     "KR",
		PlacedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func headerMap(msg *sarama.ProducerMessage) map[string]string {
	out := map[string]string{}
	for _, h := range msg.Headers {
		out[string(h.Key)] = string(h.Value)
	}
	return out
}

func TestPublisher_PublishOrderCompleted(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicOrderCompleted {
			return errors.New("wrong topic " + msg.Topic)
		}
		h := headerMap(msg)
		if h["event_type"] != EventTypeOrderCompleted || h["event_id"] == "" {
			return errors.New("missing event headers")
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got OrderCompletedEvent
		if err := json.Unmarshal(raw, &got); err != nil {
			return err
		}
		if got.OrderNumber != "LS12345678" || got.Currency != CurrencyKRW || got.EventID != h["event_id"] {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewPublisherWithProducer(producer)
	require.NoError(t, p.PublishOrderCompleted(context.Background(), sampleEvent()))
	require.NoError(t, p.Close())
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer)
	err := p.PublishOrderCompleted(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestNoopPublisher(t *testing.T) {
	var p OrderPublisher = NoopPublisher{}
	assert.NoError(t, p.PublishOrderCompleted(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}

func consumerMessage(t *testing.T, eventType string, value []byte) *sarama.ConsumerMessage {
	t.Helper()
	msg := &sarama.ConsumerMessage{Topic: TopicOrderCompleted, Value: value}
	if eventType != "" {
		msg.Headers = []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("event_id"), Value: []byte("evt-1")},
		}
	}
	return msg
}

func TestConsumer_HandleMessageDispatches(t *testing.T) {
	c := newConsumer("group", []string{TopicOrderCompleted})

	var got OrderCompletedEvent
	c.RegisterHandler(EventTypeOrderCompleted, func(ctx context.Context, e OrderCompletedEvent) error {
		got = e
		return nil
	})

	payload, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	require.NoError(t, c.HandleMessage(context.Background(), consumerMessage(t, EventTypeOrderCompleted, payload)))
	assert.Equal(t, "LS12345678", got.OrderNumber)
	assert.Equal(t, int64(258000), got.Total)
}

func TestConsumer_HandleMessageErrors(t *testing.T) {
	c := newConsumer("group", []string{TopicOrderCompleted})

	err := c.HandleMessage(context.Background(), consumerMessage(t, "", []byte("{}")))
	assert.ErrorIs(t, err, ErrMissingEventType)

	err = c.HandleMessage(context.Background(), consumerMessage(t, EventTypeOrderCompleted, []byte("{}")))
	assert.ErrorIs(t, err, ErrNoHandler)

	boom := errors.New("boom")
	c.RegisterHandler(EventTypeOrderCompleted, func(context.Context, OrderCompletedEvent) error { return boom })

	err = c.HandleMessage(context.Background(), consumerMessage(t, EventTypeOrderCompleted, []byte("not json")))
	assert.ErrorContains(t, err, "unmarshal")

	err = c.HandleMessage(context.Background(), consumerMessage(t, EventTypeOrderCompleted, []byte("{}")))
	assert.ErrorIs(t, err, boom)
}
