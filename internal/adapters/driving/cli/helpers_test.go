package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tabula-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/services"
	"github.com/custodia-labs/tabula-cli/internal/parsers/delimited"
	"github.com/custodia-labs/tabula-cli/internal/parsers/hierarchical"
)

// setupTestServices wires real services over in-memory storage and
// returns a cleanup restoring the previous wiring.
func setupTestServices() func() {
	prevParse := parseService
	prevTemplate := templateService
	prevConfig := configStore

	parseService = services.NewParseService(
		delimited.NewExtractor(),
		hierarchical.NewExtractor(),
	)
	templateService = services.NewTemplateService(memory.NewTemplateStore(), nil)
	configStore = memory.NewConfigStore()

	return func() {
		parseService = prevParse
		templateService = prevTemplate
		configStore = prevConfig
	}
}

// writeTestFile drops content into a temp file and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// seedCLITemplate stores a template through the wired template service.
func seedCLITemplate(t *testing.T, name string, sourceFields ...string) *domain.ImportTemplate {
	t.Helper()
	tpl := domain.ImportTemplate{Name: name}
	for _, f := range sourceFields {
		tpl.FieldMappings = append(tpl.FieldMappings, domain.ImportFieldMapping{
			SourceField: f,
			TargetField: f,
			DataType:    domain.DataTypeText,
		})
	}
	created, err := templateService.Create(context.Background(), tpl)
	require.NoError(t, err)
	return created
}
