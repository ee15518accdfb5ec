package driven

import (
	"context"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

// RecordBuilder is the downstream transaction-construction collaborator.
// It consumes parsed rows and a resolved template; its internal
// algorithm (validation, duplicate detection) is its own concern.
type RecordBuilder interface {
	Build(ctx context.Context, columns []string, rows [][]string,
		tpl domain.ImportTemplate, accountID string) (*domain.BuildResult, error)
}
