package testutil

import (
	"context"

	"github.com/kolstage/backend/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	// Packs records every published pack when PublishFunc is nil.
	Packs []*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.Packs = append(m.Packs, pack)
	return nil
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	return nil
}
