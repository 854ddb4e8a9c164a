package kafka

import (
	"context"
	"fmt"

	"github.com/giftgroup/backend/pkg/pubsub"

	"github.com/Shopify/sarama"
)

type publisher struct {
	clientID string
	producer sarama.SyncProducer
}

func NewPublisher(clientID string, brokerAddrs []string) (pubsub.Publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, err
	}

	return &publisher{clientID: clientID, producer: producer}, nil
}

func newPublisherWithProducer(clientID string, producer sarama.SyncProducer) *publisher {
	return &publisher{clientID: clientID, producer: producer}
}

func (p *publisher) Close() error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(pack.Msg),
	}
	if len(pack.Key) > 0 {
		m.Key = sarama.ByteEncoder(pack.Key)
	}

	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("p.producer.SendMessage: %w", err)
	}

	return nil
}
