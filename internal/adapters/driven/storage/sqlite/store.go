package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tabula-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tabula-cli/internal/core/domain"
	"github.com/custodia-labs/tabula-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the metadata
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.tabula/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tabula", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TemplateStore returns a TemplateStore interface backed by this store.
func (s *Store) TemplateStore() driven.TemplateStore {
	return &templateStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Template Store ====================

// templateStore implements driven.TemplateStore.
type templateStore struct {
	store *Store
}

var _ driven.TemplateStore = (*templateStore)(nil)

const templateColumns = "id, name, account_id, field_mappings, combinations, created_at, updated_at"

// List returns all stored templates, ordered by name.
func (s *templateStore) List(ctx context.Context) ([]domain.ImportTemplate, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+templateColumns+" FROM templates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.ImportTemplate //nolint:prealloc // unknown row count
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

// Get retrieves a template by ID.
func (s *templateStore) Get(ctx context.Context, id string) (*domain.ImportTemplate, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+templateColumns+" FROM templates WHERE id = ?", id)
	tpl, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return tpl, err
}

// Create stores a new template, assigning an ID when empty.
func (s *templateStore) Create(ctx context.Context, tpl domain.ImportTemplate) (*domain.ImportTemplate, error) {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	mappingsJSON, combinationsJSON, err := marshalTemplateBody(tpl)
	if err != nil {
		return nil, err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO templates (id, name, account_id, field_mappings, combinations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tpl.ID, tpl.Name, nullString(tpl.AccountID), mappingsJSON, combinationsJSON,
		tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, fmt.Errorf("template %s: %w", tpl.ID, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("creating template: %w", err)
	}
	return &tpl, nil
}

// Update applies a partial update to a stored template.
func (s *templateStore) Update(ctx context.Context, id string, update domain.TemplateUpdate) (*domain.ImportTemplate, error) {
	tpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
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
	tpl.UpdatedAt = time.Now().UTC()

	mappingsJSON, combinationsJSON, err := marshalTemplateBody(*tpl)
	if err != nil {
		return nil, err
	}

	_, err = s.store.db.ExecContext(ctx, `
		UPDATE templates
		SET name = ?, account_id = ?, field_mappings = ?, combinations = ?, updated_at = ?
		WHERE id = ?
	`, tpl.Name, nullString(tpl.AccountID), mappingsJSON, combinationsJSON, tpl.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	return tpl, nil
}

// Delete removes a template.
func (s *templateStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Duplicate copies a template under a new ID with the name suffixed
// " (Copy)".
func (s *templateStore) Duplicate(ctx context.Context, id string) (*domain.ImportTemplate, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := *src
	dup.ID = uuid.NewString()
	dup.Name = src.Name + " (Copy)"
	return s.Create(ctx, dup)
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*domain.ImportTemplate, error) {
	var tpl domain.ImportTemplate
	var accountID sql.NullString
	var mappingsJSON, combinationsJSON string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&tpl.ID, &tpl.Name, &accountID, &mappingsJSON, &combinationsJSON,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}

	tpl.AccountID = accountID.String
	if err := json.Unmarshal([]byte(mappingsJSON), &tpl.FieldMappings); err != nil {
		return nil, fmt.Errorf("unmarshaling field mappings: %w", err)
	}
	if err := json.Unmarshal([]byte(combinationsJSON), &tpl.Combinations); err != nil {
		return nil, fmt.Errorf("unmarshaling combinations: %w", err)
	}
	if createdAt.Valid {
		tpl.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		tpl.UpdatedAt = updatedAt.Time
	}
	return &tpl, nil
}

func marshalTemplateBody(tpl domain.ImportTemplate) (mappings, combinations string, err error) {
	m, err := json.Marshal(tpl.FieldMappings)
	if err != nil {
		return "", "", fmt.Errorf("marshalling field mappings: %w", err)
	}
	c, err := json.Marshal(tpl.Combinations)
	if err != nil {
		return "", "", fmt.Errorf("marshalling combinations: %w", err)
	}
	return string(m), string(c), nil
}

// nullString converts empty strings to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
