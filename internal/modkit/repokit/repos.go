// Package repokit holds the types and helpers repos are written against
package repokit

import (
	"context"

	"confmatrix/internal/platform/store"
)

type (
	// Queryer is the read surface SQL repos use
	Queryer = store.Querier

	// TxRunner runs a function inside a read only transaction
	TxRunner = store.TxRunner

	// Rows is a result set
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row
)

// WithTx runs fn inside one snapshot on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
