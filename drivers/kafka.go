package drivers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	"eegview/config"
)

// Kafka consumes records published to a topic. A message value holds one or more newline separated lines.
type Kafka struct {
	*config.KafkaFlags
	client *kgo.Client
}

func NewKafka(kafkaFlags *config.KafkaFlags) *Kafka {
	return &Kafka{
		KafkaFlags: kafkaFlags,
	}
}

func (k *Kafka) Init() error {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(k.Brokers, ",")...),
		kgo.ConsumerGroup(k.Group),
		kgo.ConsumeTopics(k.Topic),
	)
	if err != nil {
		return fmt.Errorf("create kafka client: %w", err)
	}
	k.client = client
	log.Printf("consuming %s from %s as %s", k.Topic, k.Brokers, k.Group)
	return nil
}

func (k *Kafka) Run(ctx context.Context, lines chan<- string) error {
	for {
		fetches := k.client.PollFetches(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if fetches.IsClientClosed() {
			return nil
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			// All errors are retried internally when fetching, these are the ones that weren't.
			log.Printf("kafka fetch: %v", errs)
		}

		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()
			for _, line := range splitRecordValue(record.Value) {
				if err := send(ctx, lines, line); err != nil {
					return err
				}
			}
		}

		if err := k.client.CommitUncommittedOffsets(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("kafka commit: %v", err)
		}
	}
}

func (k *Kafka) Close() error {
	if k.client != nil {
		k.client.Close()
	}
	return nil
}

func splitRecordValue(value []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(value), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
