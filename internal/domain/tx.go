package domain

import "context"

// Transactor scopes a unit of work to one store transaction. fn runs with a context
// carrying the transaction; any error (or panic) rolls everything back. Multi-step
// mutations (event create, link redeem, cascade delete) acquire it once per public
// operation.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
