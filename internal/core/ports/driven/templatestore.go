package driven

import (
	"context"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// TemplateStore persists import templates.
type TemplateStore interface {
	// List returns all stored templates.
	List(ctx context.Context) ([]domain.ImportTemplate, error)

	// Get retrieves a template by ID.
	Get(ctx context.Context, id string) (*domain.ImportTemplate, error)

	// Create stores a new template and returns it with its assigned id.
	Create(ctx context.Context, tpl domain.ImportTemplate) (*domain.ImportTemplate, error)

	// Update applies a partial update. Fails with domain.ErrNotFound
	// when the id is unknown.
	Update(ctx context.Context, id string, update domain.TemplateUpdate) (*domain.ImportTemplate, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error

	// Duplicate copies a template under a new id with the name suffixed
	// " (Copy)", preserving the linked account reference.
	Duplicate(ctx context.Context, id string) (*domain.ImportTemplate, error)
}
