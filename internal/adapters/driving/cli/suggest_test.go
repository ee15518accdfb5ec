package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tabula-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/services"
)

func TestSuggestCmd_Use(t *testing.T) {
	assert.Equal(t, "suggest [file]", suggestCmd.Use)
}

func TestSuggestCmd_FindsMatch(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	tpl := seedCLITemplate(t, "Contacts", "name", "email", "phone")
	path := writeTestFile(t, "contacts.csv",
		"Name,Email,Phone\nJohn,john@example.com,555-1234\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"suggest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Contacts")
	assert.Contains(t, out, tpl.ID)
	assert.Contains(t, out, "100%")
}

func TestSuggestCmd_NoMatch(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	seedCLITemplate(t, "Contacts", "name", "email", "phone")
	path := writeTestFile(t, "totals.csv", "quarter,total\nQ1,100\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"suggest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No template matches")
}

func TestSuggestCmd_ConfigMinConfidence(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	// Three of four expected fields present: 75% clears the default
	// floor but not a configured 90%.
	seedCLITemplate(t, "Contacts", "name", "email", "phone", "fax")
	path := writeTestFile(t, "contacts.csv",
		"Name,Email,Phone\nJohn,john@example.com,555-1234\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"suggest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "75%")

	require.NoError(t, configStore.Set("suggest.min_confidence", 0.9))
	svc := services.NewTemplateService(memory.NewTemplateStore(), nil)
	applySuggestConfig(svc)
	templateService = svc
	seedCLITemplate(t, "Contacts", "name", "email", "phone", "fax")

	buf.Reset()
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No template matches")
}

func TestSuggestCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	tpl := seedCLITemplate(t, "Contacts", "name", "email", "phone")
	path := writeTestFile(t, "contacts.csv",
		"Name,Email,Phone\nJohn,john@example.com,555-1234\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"suggest", "--json", path})
	defer func() {
		rootCmd.SetArgs(nil)
		suggestJSON = false
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	var suggestion domain.TemplateSuggestion
	require.NoError(t, json.Unmarshal(buf.Bytes(), &suggestion))
	assert.Equal(t, tpl.ID, suggestion.TemplateID)
	assert.Equal(t, 100, suggestion.Confidence)
}

func TestSuggestCmd_UnparseableFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTestFile(t, "broken.json", "{not json")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"suggest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}
