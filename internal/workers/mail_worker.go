package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMailStream = "mail:stream"
	DefaultMailGroup  = "mail-workers"
)

// MailStream appends rendered messages to a Redis stream.
type MailStream struct {
	Redis  *redis.Client
	Stream string
	MaxLen int64
}

func (q *MailStream) Enqueue(ctx context.Context, e models.Email) (string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	stream := q.Stream
	if stream == "" {
		stream = DefaultMailStream
	}
	return q.Redis.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: q.MaxLen,
		Approx: q.MaxLen > 0,
		Values: map[string]any{"kind": string(e.Kind), "email": string(payload)},
	}).Result()
}

type Deliverer interface {
	Deliver(ctx context.Context, e models.Email) (string, error)
}

// MailWorkerPool consumes the mail stream through a consumer group so each
// message is sent by exactly one worker.
type MailWorkerPool struct {
	Redis      *redis.Client
	Mail       Deliverer
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *MailWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Mail == nil {
		return errors.New("MailWorkerPool missing dependency: Redis/Mail must be set")
	}
	if p.Stream == "" {
		p.Stream = DefaultMailStream
	}
	if p.Group == "" {
		p.Group = DefaultMailGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "mail"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 3
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	p.Logger.WithFields(logrus.Fields{"stream": p.Stream, "workers": p.NumWorkers}).Info("mail workers started")
	return nil
}

func (p *MailWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("mail stream read failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				// Acked even when delivery failed. The ledger row records
				// the failure and nothing redelivers it.
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *MailWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	log := p.Logger.WithField("redis_id", msg.ID)

	raw, _ := msg.Values["email"].(string)
	if raw == "" {
		log.Warn("mail message without payload")
		return
	}
	var e models.Email
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		log.WithError(err).Warn("mail message payload malformed")
		return
	}

	id, err := p.Mail.Deliver(ctx, e)
	if err != nil {
		log.WithError(err).WithField("kind", e.Kind).Error("mail delivery failed")
		return
	}
	log.WithFields(logrus.Fields{"kind": e.Kind, "message_id": id}).Info("mail delivered")
}
