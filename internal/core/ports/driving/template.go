package driving

import (
	"context"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// TemplateService manages import templates and matches them against
// parsed files.
type TemplateService interface {
	// List returns all stored templates.
	List(ctx context.Context) ([]domain.ImportTemplate, error)

	// Get retrieves a template by ID.
	Get(ctx context.Context, id string) (*domain.ImportTemplate, error)

	// Create stores a new template and returns it with its assigned ID.
	Create(ctx context.Context, template domain.ImportTemplate) (*domain.ImportTemplate, error)

	// Update applies a partial update to an existing template.
	Update(ctx context.Context, id string, update domain.TemplateUpdate) (*domain.ImportTemplate, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error

	// Duplicate copies an existing template under a new ID.
	Duplicate(ctx context.Context, id string) (*domain.ImportTemplate, error)

	// Suggest matches detected columns against stored templates and
	// returns the best candidate, or nil when none clears the
	// confidence threshold.
	Suggest(ctx context.Context, fields []domain.DetectedField) (*domain.TemplateSuggestion, error)

	// Apply runs a template's mappings and combinations over parsed
	// rows, producing constructed records and per-row errors.
	Apply(ctx context.Context, templateID string, columns []string, rows [][]string, accountID string) (*domain.BuildResult, error)
}
