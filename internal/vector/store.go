package vector

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	sqlitevec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/PauloHFS/bizbloom/internal/vector/migrations"
)

func init() {
	sqlitevec.Auto()
}

const (
	infoModelID   = "model_id"
	infoDimension = "dimension"
)

// Store is the on-disk half of a corpus artifact: one vector per metadata row,
// keyed by row position, plus the model that produced them.
type Store struct {
	db *sql.DB
}

// OpenStore opens the sqlite file at path. Read-only stores are never created.
func OpenStore(path string, readOnly bool) (*Store, error) {
	dsn := "file:" + path
	if readOnly {
		dsn += "?mode=ro"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open index store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to migrate index store: %w", err)
	}
	return nil
}

func (s *Store) Version(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx, "SELECT vec_version()").Scan(&version)
	return version, err
}

// Write replaces the stored vectors. Position i of vectors becomes row i.
func (s *Store) Write(ctx context.Context, cfg Config, vectors []Vector) error {
	for i, v := range vectors {
		if len(v) != cfg.Dimension {
			return fmt.Errorf("%w: position %d has %d, want %d", ErrDimensionMismatch, i, len(v), cfg.Dimension)
		}
	}

	if err := s.Migrate(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM corpus_vectors"); err != nil {
		return fmt.Errorf("failed to clear vectors: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO corpus_vectors (position, embedding) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range vectors {
		blob, err := sqlitevec.SerializeFloat32([]float32(v))
		if err != nil {
			return fmt.Errorf("failed to serialize vector %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, i, blob); err != nil {
			return fmt.Errorf("failed to insert vector %d: %w", i, err)
		}
	}

	info := map[string]string{
		infoModelID:   cfg.ModelID,
		infoDimension: strconv.Itoa(cfg.Dimension),
	}
	for key, value := range info {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO corpus_info (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Info reports the model id and dimension recorded when the store was written.
func (s *Store) Info(ctx context.Context) (Config, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM corpus_info")
	if err != nil {
		return Config{}, fmt.Errorf("failed to read index info: %w", err)
	}
	defer rows.Close()

	var cfg Config
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Config{}, fmt.Errorf("failed to scan index info: %w", err)
		}
		switch key {
		case infoModelID:
			cfg.ModelID = value
		case infoDimension:
			dim, err := strconv.Atoi(value)
			if err != nil {
				return Config{}, fmt.Errorf("invalid stored dimension %q: %w", value, err)
			}
			cfg.Dimension = dim
		}
	}

	return cfg, rows.Err()
}

// ReadAll returns every stored vector ordered by position, decoded from the
// raw float32 blobs so the values are exactly the ones written.
func (s *Store) ReadAll(ctx context.Context) ([]int, []Vector, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, embedding
		FROM corpus_vectors
		ORDER BY position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read vectors: %w", err)
	}
	defer rows.Close()

	var ids []int
	var vectors []Vector
	for rows.Next() {
		var position int
		var blob []byte
		if err := rows.Scan(&position, &blob); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		v, err := deserializeFloat32(blob)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode vector %d: %w", position, err)
		}
		ids = append(ids, position)
		vectors = append(vectors, v)
	}

	return ids, vectors, rows.Err()
}

// deserializeFloat32 is the inverse of sqlitevec.SerializeFloat32: packed
// little-endian IEEE 754 float32 values.
func deserializeFloat32(blob []byte) (Vector, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("%w: blob of %d bytes", ErrCorruptVector, len(blob))
	}
	v := make(Vector, len(blob)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return v, nil
}
