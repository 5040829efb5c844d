package shared

import "context"

// UnitOfWork runs a function atomically: every repository write inside
// fn commits together or not at all. Implementations propagate the
// transaction through the context.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
