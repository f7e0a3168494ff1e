package usecases

import "context"

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SalesRecounter refreshes a pack's salesCount from its recharges.
type SalesRecounter interface {
	Execute(ctx context.Context, packID uint) (int64, error)
}
