package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

// fakeSource serves a fixed message sequence and records commits.
type fakeSource struct {
	msgs      []kafka.Message
	next      int
	committed []int64
}

func (f *fakeSource) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if f.next >= len(f.msgs) {
		return kafka.Message{}, context.Canceled
	}
	msg := f.msgs[f.next]
	f.next++
	return msg, nil
}

func (f *fakeSource) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeSource) Close() error { return nil }

func TestConsumer_Consume_HandlerErrorDoesNotStopLoop(t *testing.T) {
	source := &fakeSource{msgs: []kafka.Message{{Offset: 1}, {Offset: 2}, {Offset: 3}}}
	consumer := &Consumer{source: source}

	var handled []int64
	err := consumer.Consume(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		handled = append(handled, msg.Offset)
		if msg.Offset == 2 {
			return errors.New("insert failed")
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int64{1, 2, 3}, handled)
	assert.Equal(t, []int64{1, 3}, source.committed)
}

func TestConsumer_Consume_FetchErrorStops(t *testing.T) {
	source := &fakeSource{}
	consumer := &Consumer{source: source}

	err := consumer.Consume(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		t.Fatal("handler must not run without a message")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, source.committed)
}

func TestConsumer_Close_NilSafe(t *testing.T) {
	var consumer *Consumer
	assert.NoError(t, consumer.Close())
	assert.NoError(t, (&Consumer{}).Close())
}
