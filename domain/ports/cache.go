package ports

import "context"

// ═══════════════════════════════════════════════════════════════════════════════
// View Cache Port - cached read-side projections keyed by view path
// ═══════════════════════════════════════════════════════════════════════════════

// View keys invalidated after catalog mutations
const (
	ViewAdmin      = "/admin"
	ViewHome       = "/"
	ViewPromotions = "/promotions"
)

func ViewCategory(categoryID string) string {
	return "/category/" + categoryID
}

type ViewCache interface {
	// Get decodes the cached value into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}
