package cache

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

//DB is a SQLite database holding detection sequences for many cache locations
type DB struct {
	conn *sql.DB
}

//OpenDB opens (or creates) the SQLite database at path and applies the schema
func OpenDB(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	if path == ":memory:" {
		dsn = path
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	//a single connection keeps ":memory:" databases shared between calls
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

//Close closes the underlying connection
func (db *DB) Close() error {
	return db.conn.Close()
}

//Store returns the Store for one cache location inside db
func (db *DB) Store(location string) *SQLiteStore {
	return &SQLiteStore{db: db, location: location}
}

//SQLiteStore is a Store backed by one row of the detection_cache table
type SQLiteStore struct {
	db       *DB
	location string
}

func (s *SQLiteStore) Load(key Key) ([]tracking.FrameDetections, error) {
	var payload []byte
	err := s.db.conn.QueryRow(
		`SELECT payload FROM detection_cache WHERE location = ?`, s.location,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("SQLiteStore.Load: '%s': %w", s.location, ErrCacheMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("SQLiteStore.Load: '%s': %w", s.location, err)
	}

	env, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("SQLiteStore.Load: Error decoding '%s', got '%v'", s.location, err)
	}

	frames, err := env.check(key)
	if err != nil {
		return nil, fmt.Errorf("SQLiteStore.Load: '%s' holds %s, want %s: %w", s.location, env.Key, key, err)
	}

	return frames, nil
}

func (s *SQLiteStore) Save(key Key, frames []tracking.FrameDetections) error {
	payload, err := encode(key, frames)
	if err != nil {
		return fmt.Errorf("SQLiteStore.Save: Error encoding, got '%v'", err)
	}

	_, err = s.db.conn.Exec(`
		INSERT INTO detection_cache (location, checksum, frame_count, payload, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(location) DO UPDATE SET
			checksum = excluded.checksum,
			frame_count = excluded.frame_count,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		s.location, key.Checksum, key.FrameCount, payload,
	)
	if err != nil {
		return fmt.Errorf("SQLiteStore.Save: '%s': %w", s.location, err)
	}

	return nil
}

//Locations lists the stored cache locations with the key each was saved under
func (db *DB) Locations() (map[string]Key, error) {
	rows, err := db.conn.Query(`SELECT location, checksum, frame_count FROM detection_cache ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	res := make(map[string]Key)
	for rows.Next() {
		var loc string
		var k Key
		if err := rows.Scan(&loc, &k.Checksum, &k.FrameCount); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		res[loc] = k
	}

	return res, rows.Err()
}
