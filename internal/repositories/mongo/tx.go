package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// TxRunner groups several repository writes into one unit. Repositories
// called with the ctx handed to fn take part in the unit.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	// Atomic reports whether a failed unit leaves no writes behind. When it
	// is false the caller must compensate for writes that already happened.
	Atomic() bool
}

type sessionTx struct {
	client *mongo.Client
}

// NewSessionTx runs units as multi-document transactions. Requires a replica
// set or sharded cluster.
func NewSessionTx(client *mongo.Client) TxRunner {
	return &sessionTx{client: client}
}

func (t *sessionTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	opts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, opts)
	return err
}

func (t *sessionTx) Atomic() bool { return true }

type directTx struct{}

// NewDirectTx runs units without a transaction, for standalone servers.
func NewDirectTx() TxRunner { return directTx{} }

func (directTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (directTx) Atomic() bool { return false }
