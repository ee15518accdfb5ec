package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore is an in-memory implementation of driven.TemplateStore.
type TemplateStore struct {
	mu        sync.RWMutex
	templates map[string]domain.ImportTemplate
	now       func() time.Time
}

// NewTemplateStore creates a new in-memory template store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{
		templates: make(map[string]domain.ImportTemplate),
		now:       time.Now,
	}
}

// List returns all stored templates, ordered by name.
func (s *TemplateStore) List(_ context.Context) ([]domain.ImportTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	templates := make([]domain.ImportTemplate, 0, len(s.templates))
	for _, tpl := range s.templates {
		templates = append(templates, tpl)
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates, nil
}

// Get retrieves a template by ID.
func (s *TemplateStore) Get(_ context.Context, id string) (*domain.ImportTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return &tpl, nil
}

// Create stores a new template, assigning an ID when empty.
func (s *TemplateStore) Create(_ context.Context, tpl domain.ImportTemplate) (*domain.ImportTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if _, exists := s.templates[tpl.ID]; exists {
		return nil, fmt.Errorf("template %s: %w", tpl.ID, domain.ErrAlreadyExists)
	}
	now := s.now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	s.templates[tpl.ID] = tpl
	return &tpl, nil
}

// Update applies a partial update to a stored template.
func (s *TemplateStore) Update(_ context.Context, id string, update domain.TemplateUpdate) (*domain.ImportTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	if update.Name != nil {
		tpl.Name = *update.Name
	}
	if update.AccountID != nil {
		tpl.AccountID = *update.AccountID
	}
	if update.FieldMappings != nil {
		tpl.FieldMappings = update.FieldMappings
	}
	if update.Combinations != nil {
		tpl.Combinations = update.Combinations
	}
	tpl.UpdatedAt = s.now()
	s.templates[id] = tpl
	return &tpl, nil
}

// Delete removes a template.
func (s *TemplateStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	delete(s.templates, id)
	return nil
}

// Duplicate copies a template under a new ID with the name suffixed
// " (Copy)".
func (s *TemplateStore) Duplicate(_ context.Context, id string) (*domain.ImportTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	dup := src
	dup.ID = uuid.NewString()
	dup.Name = src.Name + " (Copy)"
	dup.FieldMappings = append([]domain.ImportFieldMapping(nil), src.FieldMappings...)
	dup.Combinations = append([]domain.FieldCombination(nil), src.Combinations...)
	now := s.now()
	dup.CreatedAt = now
	dup.UpdatedAt = now
	s.templates[dup.ID] = dup
	return &dup, nil
}
