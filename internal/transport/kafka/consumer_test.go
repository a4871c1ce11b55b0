package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"paquexpress-service/internal/service/assignments"
	testlog "paquexpress-service/internal/testutil"
)

func TestNewConsumer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	got, err := NewConsumer(rec.Logger(), nil, "gid", "topic", func(context.Context, assignments.Event) error { return nil })
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "", "topic", nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "   ", nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNewConsumer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func(_ []string, _ string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}

	rec := testlog.New()
	got, err := NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "topic", nil)
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)
}

type countingGroup struct {
	calls  int
	cancel context.CancelFunc
	err    error
	closed bool
}

func (g *countingGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	g.calls++
	if g.calls >= 2 {
		g.cancel()
	}
	return g.err
}

func (g *countingGroup) Errors() <-chan error      { return nil }
func (g *countingGroup) Close() error              { g.closed = true; return nil }
func (g *countingGroup) Pause(map[string][]int32)  {}
func (g *countingGroup) Resume(map[string][]int32) {}
func (g *countingGroup) PauseAll()                 {}
func (g *countingGroup) ResumeAll()                {}

func TestNewConsumer_UsesOldestOffset(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	g := &countingGroup{}
	var gotCfg *sarama.Config
	newConsumerGroup = func(brokers []string, groupID string, cfg *sarama.Config) (sarama.ConsumerGroup, error) {
		require.Equal(t, []string{"b:9092"}, brokers)
		require.Equal(t, "gid", groupID)
		gotCfg = cfg
		return g, nil
	}

	c, err := NewConsumer(nil, []string{"b:9092"}, "gid", "topic", nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, sarama.OffsetOldest, gotCfg.Consumer.Offsets.Initial)
	require.Equal(t, "topic", c.topic)
}

func TestConsumer_Run_ConsumesUntilCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &countingGroup{cancel: cancel}
	c := &Consumer{group: g, topic: "t", logger: testlog.New().Logger()}

	err := c.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, g.calls)

	require.NoError(t, c.Close())
	require.True(t, g.closed)
}

func TestConsumer_Run_StopsOnClosedGroup(t *testing.T) {
	t.Parallel()

	g := &countingGroup{cancel: func() {}, err: sarama.ErrClosedConsumerGroup}
	c := &Consumer{group: g, topic: "t", logger: testlog.New().Logger()}

	err := c.Run(context.Background())
	require.ErrorIs(t, err, sarama.ErrClosedConsumerGroup)
	require.Equal(t, 1, g.calls)
}

func TestConsumer_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}
