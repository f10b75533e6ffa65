package mongodb

import (
	"context"

	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Compile-time check to ensure TxRunner implements the interface
var _ repositories.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a MongoDB multi-document transaction.
// The workflows' multi-effect commits (entry + option + prize-pool
// increment, prediction + two counter increments) go through here so a
// failure of any one write aborts them all; no partial ledger state is
// ever visible.
type TxRunner struct {
	client *mongo.Client
}

// NewTxRunner creates a new TxRunner
func NewTxRunner(client *mongo.Client) *TxRunner {
	return &TxRunner{client: client}
}

// WithinTransaction starts a session, runs fn inside a transaction and
// commits iff fn returns nil. The context handed to fn carries the
// session; repository operations issued with it join the transaction.
// Caller deadlines propagate through ctx: a timeout aborts the whole
// transaction, never part of it.
func (t *TxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txnOptions := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	}, txnOptions)
	return err
}
