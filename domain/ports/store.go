package ports

import "context"

// StoreHealth checks the catalog store connection, reconnecting once before giving up
type StoreHealth interface {
	Verify(ctx context.Context) error
}
