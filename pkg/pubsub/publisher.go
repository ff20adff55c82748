package pubsub

import "context"

// Pack is a single message on a topic. Key decides the partition.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(context.Context, string, *Pack) error
	Stop(ctx context.Context) error
}
