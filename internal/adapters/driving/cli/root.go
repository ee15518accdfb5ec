package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tabula-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tabula-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tabula-cli/internal/core/services"
	"github.com/custodia-labs/tabula-cli/internal/logger"
	"github.com/custodia-labs/tabula-cli/internal/parsers/delimited"
	"github.com/custodia-labs/tabula-cli/internal/parsers/hierarchical"
)

// version is set via Execute from the build's main package.
var version = "dev"

// Services wired at startup. Commands nil-check before use so tests can
// inject fakes.
var (
	parseService    driving.ParseService
	templateService driving.TemplateService
	configStore     driven.ConfigStore

	metadataStore *sqlite.Store
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Inspect tabular files and manage import templates",
	Long: `Tabula analyses CSV, TXT and JSON exports: it detects encoding,
delimiter and header row, infers a data type per column, and matches
the detected schema against saved import templates.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute wires the default adapters and runs the root command.
func Execute(v string) error {
	version = v
	defer shutdown()
	return rootCmd.Execute()
}

// initServices builds the production service graph. Already-set services
// are left alone, which is how tests substitute their own.
func initServices() error {
	if parseService != nil && templateService != nil {
		return nil
	}

	if configStore == nil {
		cs, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		configStore = cs
	}

	if parseService == nil {
		parseService = services.NewParseService(
			delimited.NewExtractor(),
			hierarchical.NewExtractor(),
		)
	}

	if templateService == nil {
		store, err := sqlite.NewStore("")
		if err != nil {
			return fmt.Errorf("opening template store: %w", err)
		}
		metadataStore = store

		svc := services.NewTemplateService(store.TemplateStore(), nil)
		applySuggestConfig(svc)
		templateService = svc
	}

	return nil
}

// applySuggestConfig folds configured matching overrides into the
// template service.
func applySuggestConfig(svc *services.TemplateService) {
	if configStore == nil {
		return
	}
	if floor := configStore.GetFloat("suggest.min_confidence"); floor > 0 {
		svc.SetMinConfidence(floor)
	}
}

func shutdown() {
	if metadataStore != nil {
		if err := metadataStore.Close(); err != nil {
			logger.Warn("closing template store: %v", err)
		}
		metadataStore = nil
	}
}
