package pubsub

import "context"

// Pack is one message on a topic. Key decides the partition.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Close() error
}
