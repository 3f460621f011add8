package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/shopcart/config"
	"github.com/niksmo/shopcart/internal/adapter"
	"github.com/niksmo/shopcart/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	deletePolicy      = "delete"
	compactPolicy     = "compact"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()

	cl, err := createClient(cfg.Broker.SeedBrokers, cfg.Broker.TLS)
	if err != nil {
		printFail(err)
		return
	}
	defer cl.Close()

	printStart(cfg)
	defer printComplete(time.Now())

	// event streams
	err = makeTopics(
		sigCtx, cl, deletePolicy,
		cfg.Broker.Topics.CatalogEvents,
		cfg.Broker.Topics.CouponEvents,
	)
	if err != nil {
		printFail(err)
		return
	}

	// group table topics
	err = makeTopics(
		sigCtx, cl, compactPolicy,
		toGroupTable(cfg.Broker.Consumers.CouponTableGroup),
	)
	if err != nil {
		printFail(err)
		return
	}
}

func createClient(seedBrokers []string, t config.TLS) (*kadm.Client, error) {
	tlsConfig, err := adapter.MakeTLSConfig(t.CA, t.Cert, t.Key)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{kgo.SeedBrokers(seedBrokers...)}
	if tlsConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}
	return kadm.NewOptClient(opts...)
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, cleanupPolicy string, topics ...string,
) error {
	minISR := "2"

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}
	return responsesErr(responses)
}

// responsesErr reports every failed topic except the existing ones.
func responsesErr(responses kadm.CreateTopicResponses) error {
	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, fmt.Errorf("topic %q: %w", res.Topic, res.Err))
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}
	return errors.Join(errs...)
}

func printStart(cfg config.Config) {
	fmt.Printf(`initializing topics...
	- %q
	- %q
	- %q

`,
		cfg.Broker.Topics.CatalogEvents,
		cfg.Broker.Topics.CouponEvents,
		toGroupTable(cfg.Broker.Consumers.CouponTableGroup),
	)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}

func toGroupTable(group string) string {
	return string(goka.GroupTable(goka.Group(group)))
}
