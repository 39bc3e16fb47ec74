package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"extui/api"
)

// SnapshotCache persists the last successfully fetched installed list and
// market catalog so the panel can render immediately on startup, before
// the async refreshes complete. Each successful fetch overwrites the
// previous snapshot wholesale.
type SnapshotCache struct {
	db *sql.DB
}

const (
	snapshotExtensions = "extensions"
	snapshotMarket     = "market"
)

func NewSnapshotCache(dataDir string) (*SnapshotCache, error) {
	dbPath := filepath.Join(dataDir, "snapshots.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cache := &SnapshotCache{db: db}

	if err := cache.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cache, nil
}

func (sc *SnapshotCache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		kind TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := sc.db.Exec(schema)
	return err
}

func (sc *SnapshotCache) save(kind string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO snapshots (kind, payload, updated_at)
	VALUES (?, ?, ?)
	`

	_, err = sc.db.Exec(query, kind, string(payload), time.Now())
	return err
}

func (sc *SnapshotCache) load(kind string, dest interface{}) (bool, error) {
	query := `SELECT payload FROM snapshots WHERE kind = ?`

	var payload string
	err := sc.db.QueryRow(query, kind).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return true, nil
}

func (sc *SnapshotCache) SaveExtensions(extensions []api.Extension) error {
	return sc.save(snapshotExtensions, extensions)
}

// LoadExtensions returns the cached installed list, or nil if no snapshot
// exists yet.
func (sc *SnapshotCache) LoadExtensions() ([]api.Extension, error) {
	var extensions []api.Extension
	found, err := sc.load(snapshotExtensions, &extensions)
	if err != nil || !found {
		return nil, err
	}
	return extensions, nil
}

func (sc *SnapshotCache) SaveMarket(entries []api.MarketEntry) error {
	return sc.save(snapshotMarket, entries)
}

// LoadMarket returns the cached market catalog, or nil if no snapshot
// exists yet. The Installed flag is derived state and is recomputed by
// reconciliation after loading.
func (sc *SnapshotCache) LoadMarket() ([]api.MarketEntry, error) {
	var entries []api.MarketEntry
	found, err := sc.load(snapshotMarket, &entries)
	if err != nil || !found {
		return nil, err
	}
	return entries, nil
}

func (sc *SnapshotCache) Close() error {
	if sc.db != nil {
		return sc.db.Close()
	}
	return nil
}
