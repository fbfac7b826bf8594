package tx

import "context"

// Transactor runs fn inside one unit of work. Repositories called with the
// context handed to fn take part in the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
