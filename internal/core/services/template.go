package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tabula-cli/internal/logger"
	"github.com/custodia-labs/tabula-cli/internal/matching"
)

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// TemplateService manages import templates and template matching.
type TemplateService struct {
	store         driven.TemplateStore
	builder       driven.RecordBuilder
	minConfidence float64
}

// NewTemplateService creates a template service.
// The builder parameter is optional (can be nil); without it Apply is
// unavailable.
func NewTemplateService(store driven.TemplateStore, builder driven.RecordBuilder) *TemplateService {
	return &TemplateService{
		store:         store,
		builder:       builder,
		minConfidence: matching.DefaultOptions().MinConfidence,
	}
}

// SetMinConfidence overrides the suggestion confidence floor.
func (s *TemplateService) SetMinConfidence(v float64) {
	if v > 0 && v <= 1 {
		s.minConfidence = v
	}
}

// List returns all stored templates.
func (s *TemplateService) List(ctx context.Context) ([]domain.ImportTemplate, error) {
	return s.store.List(ctx)
}

// Get retrieves a template by ID.
func (s *TemplateService) Get(ctx context.Context, id string) (*domain.ImportTemplate, error) {
	if id == "" {
		return nil, fmt.Errorf("get template: %w: empty id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Create validates and stores a new template.
func (s *TemplateService) Create(ctx context.Context, template domain.ImportTemplate) (*domain.ImportTemplate, error) {
	if template.Name == "" {
		return nil, fmt.Errorf("create template: %w: empty name", domain.ErrInvalidInput)
	}
	for i := range template.Combinations {
		if err := template.Combinations[i].Validate(); err != nil {
			return nil, fmt.Errorf("create template: %w", err)
		}
	}
	created, err := s.store.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	logger.Info("Created template %q (%s)", created.Name, created.ID)
	return created, nil
}

// Update applies a partial update to an existing template.
func (s *TemplateService) Update(ctx context.Context, id string, update domain.TemplateUpdate) (*domain.ImportTemplate, error) {
	if id == "" {
		return nil, fmt.Errorf("update template: %w: empty id", domain.ErrInvalidInput)
	}
	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("update template: %w: empty name", domain.ErrInvalidInput)
	}
	for i := range update.Combinations {
		if err := update.Combinations[i].Validate(); err != nil {
			return nil, fmt.Errorf("update template: %w", err)
		}
	}
	return s.store.Update(ctx, id, update)
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete template: %w: empty id", domain.ErrInvalidInput)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Deleted template %s", id)
	return nil
}

// Duplicate copies an existing template under a new ID.
func (s *TemplateService) Duplicate(ctx context.Context, id string) (*domain.ImportTemplate, error) {
	if id == "" {
		return nil, fmt.Errorf("duplicate template: %w: empty id", domain.ErrInvalidInput)
	}
	return s.store.Duplicate(ctx, id)
}

// EditCombinations opens an editing session over a template's field
// combinations, with UUIDs assigned to combinations saved for the first
// time. The caller persists the result through Update.
func (s *TemplateService) EditCombinations(tpl *domain.ImportTemplate) *domain.CombinationEditor {
	return domain.NewCombinationEditor(tpl.Combinations, uuid.NewString)
}

// Suggest matches detected columns against stored templates.
func (s *TemplateService) Suggest(ctx context.Context, fields []domain.DetectedField) (*domain.TemplateSuggestion, error) {
	templates, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest template: %w", err)
	}
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	suggestion := matching.SuggestTemplate(columns, templates, matching.Options{
		MinConfidence: s.minConfidence,
	})
	if suggestion == nil {
		logger.Debug("No template cleared the %.0f%% confidence floor", s.minConfidence*100)
		return nil, nil
	}
	logger.Info("Suggesting template %s at %d%% confidence", suggestion.TemplateID, suggestion.Confidence)
	return suggestion, nil
}

// Apply runs a template over parsed rows through the record builder.
func (s *TemplateService) Apply(ctx context.Context, templateID string, columns []string, rows [][]string, accountID string) (*domain.BuildResult, error) {
	if s.builder == nil {
		return nil, fmt.Errorf("apply template: record construction %w", domain.ErrNotImplemented)
	}
	tpl, err := s.store.Get(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("apply template: %w", err)
	}
	return s.builder.Build(ctx, columns, rows, *tpl, accountID)
}
