package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/metro-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/metro-cli/internal/core/domain"
	"github.com/custodia-labs/metro-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.metro/data/metro.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".metro", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metro.db")

	// WAL for concurrent readers; foreign keys are per connection, so they go in the DSN.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// StationStore returns a StationStore interface backed by this store.
func (s *Store) StationStore() driven.StationStore {
	return &stationStore{store: s}
}

// LineStore returns a LineStore interface backed by this store.
func (s *Store) LineStore() driven.LineStore {
	return &lineStore{store: s}
}

// FavoriteStore returns a FavoriteStore interface backed by this store.
func (s *Store) FavoriteStore() driven.FavoriteStore {
	return &favoriteStore{store: s}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// schemaVersion returns the highest applied migration.
func (s *Store) schemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// ==================== Station Store ====================

// stationStore implements driven.StationStore.
type stationStore struct {
	store *Store
}

var _ driven.StationStore = (*stationStore)(nil)

// Save stores or updates a station.
func (s *stationStore) Save(ctx context.Context, station domain.Station) error {
	now := time.Now().UTC()
	if station.CreatedAt.IsZero() {
		station.CreatedAt = now
	}
	if station.UpdatedAt.IsZero() {
		station.UpdatedAt = now
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO stations (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at
	`, string(station.ID), station.Name, station.CreatedAt.UTC(), station.UpdatedAt.UTC())

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: station %q", domain.ErrAlreadyExists, station.Name)
	}
	if err != nil {
		return fmt.Errorf("saving station: %w", err)
	}
	return nil
}

// Get retrieves a station by ID.
func (s *stationStore) Get(ctx context.Context, id domain.StationID) (*domain.Station, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM stations WHERE id = ?
	`, string(id))
	return scanStation(row)
}

// GetByName retrieves a station by name.
func (s *stationStore) GetByName(ctx context.Context, name string) (*domain.Station, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM stations WHERE name = ?
	`, name)
	return scanStation(row)
}

func scanStation(row *sql.Row) (*domain.Station, error) {
	var station domain.Station
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&station.ID, &station.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		return nil, fmt.Errorf("scanning station: %w", err)
	}
	station.CreatedAt = createdAt.Time
	station.UpdatedAt = updatedAt.Time
	return &station, nil
}

// Delete removes a station. Stations still referenced by a section are kept.
func (s *stationStore) Delete(ctx context.Context, id domain.StationID) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM stations WHERE id = ?", string(id))
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrStationInUse, id)
	}
	if err != nil {
		return fmt.Errorf("deleting station: %w", err)
	}
	return nil
}

// List returns all stations ordered by name.
func (s *stationStore) List(ctx context.Context) ([]domain.Station, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM stations ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stations: %w", err)
	}
	defer rows.Close()

	var stations []domain.Station //nolint:prealloc // size unknown from query
	for rows.Next() {
		var station domain.Station
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&station.ID, &station.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning station: %w", err)
		}
		station.CreatedAt = createdAt.Time
		station.UpdatedAt = updatedAt.Time
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stations: %w", err)
	}
	return stations, nil
}

// ==================== Line Store ====================

// lineStore implements driven.LineStore.
type lineStore struct {
	store *Store
}

var _ driven.LineStore = (*lineStore)(nil)

// Save stores or updates a line and replaces its sections in one transaction.
func (s *lineStore) Save(ctx context.Context, line *domain.Line) error {
	now := time.Now().UTC()
	createdAt, updatedAt := line.CreatedAt, line.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO lines (id, name, color, surcharge, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			surcharge = excluded.surcharge,
			updated_at = excluded.updated_at
	`, string(line.ID), line.Name, line.Color, line.Surcharge, createdAt.UTC(), updatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: line %q", domain.ErrAlreadyExists, line.Name)
	}
	if err != nil {
		return fmt.Errorf("saving line: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE line_id = ?", string(line.ID)); err != nil {
		return fmt.Errorf("clearing sections: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (line_id, up_station_id, down_station_id, distance, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, section := range line.Sections() {
		_, err := stmt.ExecContext(ctx, string(line.ID), string(section.UpStationID),
			string(section.DownStationID), section.Distance, i)
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: section %s-%s", domain.ErrStationNotFound,
				section.UpStationID, section.DownStationID)
		}
		if err != nil {
			return fmt.Errorf("saving section: %w", err)
		}
	}

	if err := bumpNetworkVersion(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a line by ID.
func (s *lineStore) Get(ctx context.Context, id domain.LineID) (*domain.Line, error) {
	return s.getOne(ctx, "id = ?", string(id))
}

// GetByName retrieves a line by name.
func (s *lineStore) GetByName(ctx context.Context, name string) (*domain.Line, error) {
	return s.getOne(ctx, "name = ?", name)
}

func (s *lineStore) getOne(ctx context.Context, where string, arg any) (*domain.Line, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	lines, err := loadLines(ctx, tx, where, arg)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrLineNotFound
	}
	return lines[0], nil
}

// Delete removes a line; its sections cascade.
func (s *lineStore) Delete(ctx context.Context, id domain.LineID) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, "DELETE FROM lines WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("deleting line: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}
	if err := bumpNetworkVersion(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Version returns the stored network version. It lives in the database so
// that edits made by another process on the same file are seen here too.
func (s *lineStore) Version(ctx context.Context) (uint64, error) {
	var version int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT version FROM network_version WHERE id = 1").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading network version: %w", err)
	}
	return uint64(version), nil
}

func bumpNetworkVersion(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx,
		"UPDATE network_version SET version = version + 1 WHERE id = 1"); err != nil {
		return fmt.Errorf("bumping network version: %w", err)
	}
	return nil
}

// List returns all lines ordered by name. Lines and sections are read in one
// transaction so the snapshot is consistent.
func (s *lineStore) List(ctx context.Context) ([]*domain.Line, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	return loadLines(ctx, tx, "1 = 1")
}

// loadLines reads the matching lines and rebuilds their chains.
func loadLines(ctx context.Context, tx *sql.Tx, where string, args ...any) ([]*domain.Line, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, color, surcharge, created_at, updated_at
		FROM lines WHERE `+where+` ORDER BY name
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lines: %w", err)
	}

	var lines []*domain.Line
	byID := make(map[domain.LineID]*domain.Line)
	for rows.Next() {
		var (
			id, name, color      string
			surcharge            int
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&id, &name, &color, &surcharge, &createdAt, &updatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		line, err := domain.NewLine(domain.LineID(id), name, color, surcharge)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("restoring line %s: %w", id, err)
		}
		line.CreatedAt = createdAt.Time
		line.UpdatedAt = updatedAt.Time
		lines = append(lines, line)
		byID[line.ID] = line
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating lines: %w", err)
	}
	rows.Close()

	if len(lines) == 0 {
		return nil, nil
	}

	sections, err := loadSections(ctx, tx, byID)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if err := line.RestoreSections(sections[line.ID]); err != nil {
			return nil, fmt.Errorf("restoring sections of line %s: %w", line.ID, err)
		}
	}
	return lines, nil
}

func loadSections(
	ctx context.Context,
	tx *sql.Tx,
	byID map[domain.LineID]*domain.Line,
) (map[domain.LineID][]domain.Section, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT line_id, up_station_id, down_station_id, distance
		FROM sections ORDER BY line_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	sections := make(map[domain.LineID][]domain.Section, len(byID))
	for rows.Next() {
		var section domain.Section
		if err := rows.Scan(&section.LineID, &section.UpStationID,
			&section.DownStationID, &section.Distance); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		if _, ok := byID[section.LineID]; !ok {
			continue
		}
		sections[section.LineID] = append(sections[section.LineID], section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}

// ==================== Favorite Store ====================

// favoriteStore implements driven.FavoriteStore.
type favoriteStore struct {
	store *Store
}

var _ driven.FavoriteStore = (*favoriteStore)(nil)

// Save stores a favorite.
func (s *favoriteStore) Save(ctx context.Context, favorite domain.Favorite) error {
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO favorites (id, member_id, source_id, target_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id = excluded.member_id,
			source_id = excluded.source_id,
			target_id = excluded.target_id
	`, favorite.ID, favorite.MemberID, string(favorite.SourceID), string(favorite.TargetID),
		favorite.CreatedAt.UTC())

	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: favorite %s", domain.ErrStationNotFound, favorite.ID)
	}
	if err != nil {
		return fmt.Errorf("saving favorite: %w", err)
	}
	return nil
}

// Get retrieves a favorite by ID.
func (s *favoriteStore) Get(ctx context.Context, id string) (*domain.Favorite, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, member_id, source_id, target_id, created_at FROM favorites WHERE id = ?
	`, id)

	var favorite domain.Favorite
	var createdAt sql.NullTime
	if err := row.Scan(&favorite.ID, &favorite.MemberID, &favorite.SourceID,
		&favorite.TargetID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning favorite: %w", err)
	}
	favorite.CreatedAt = createdAt.Time
	return &favorite, nil
}

// Delete removes a favorite.
func (s *favoriteStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM favorites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	return nil
}

// DeleteByStation removes the favorites touching a station. Deleting the
// station cascades the same rows; this covers callers that order it first.
func (s *favoriteStore) DeleteByStation(ctx context.Context, stationID domain.StationID) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE source_id = ? OR target_id = ?", string(stationID), string(stationID))
	if err != nil {
		return fmt.Errorf("deleting station favorites: %w", err)
	}
	return nil
}

// ListByMember returns a member's favorites, oldest first.
func (s *favoriteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Favorite, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, member_id, source_id, target_id, created_at
		FROM favorites WHERE member_id = ? ORDER BY created_at, id
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	var favorites []domain.Favorite //nolint:prealloc // size unknown from query
	for rows.Next() {
		var favorite domain.Favorite
		var createdAt sql.NullTime
		if err := rows.Scan(&favorite.ID, &favorite.MemberID, &favorite.SourceID,
			&favorite.TargetID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		favorite.CreatedAt = createdAt.Time
		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorites: %w", err)
	}
	return favorites, nil
}
