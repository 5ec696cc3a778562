package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ IndexStore = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS annotations (
			decl TEXT,
			position INTEGER,
			class_id TEXT,
			use_site_target TEXT,
			PRIMARY KEY (decl, position)
		);`,
		`CREATE TABLE IF NOT EXISTS arguments (
			decl TEXT,
			position INTEGER,
			name TEXT,
			rendered TEXT,
			PRIMARY KEY (decl, position, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_annotations_class ON annotations(class_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveIndex(ctx context.Context, records []AnnotationRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM arguments`, `DELETE FROM annotations`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	annStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO annotations (decl, position, class_id, use_site_target)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer annStmt.Close()

	argStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO arguments (decl, position, name, rendered)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer argStmt.Close()

	for _, r := range records {
		if _, err := annStmt.ExecContext(ctx, r.Declaration, r.Position, r.ClassId, r.UseSiteTarget); err != nil {
			return fmt.Errorf("saving %s#%d: %w", r.Declaration, r.Position, err)
		}
		for _, a := range r.Arguments {
			if _, err := argStmt.ExecContext(ctx, r.Declaration, r.Position, a.Name, a.Rendered); err != nil {
				return fmt.Errorf("saving %s#%d argument %s: %w", r.Declaration, r.Position, a.Name, err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadIndex(ctx context.Context) ([]AnnotationRecord, error) {
	return s.query(ctx, `
		SELECT decl, position, class_id, use_site_target FROM annotations
		ORDER BY decl, position
	`)
}

func (s *SQLiteStore) FindByClassId(ctx context.Context, classId string) ([]AnnotationRecord, error) {
	return s.query(ctx, `
		SELECT decl, position, class_id, use_site_target FROM annotations
		WHERE class_id = ?
		ORDER BY decl, position
	`, classId)
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]AnnotationRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	var records []AnnotationRecord
	for rows.Next() {
		var r AnnotationRecord
		if err := rows.Scan(&r.Declaration, &r.Position, &r.ClassId, &r.UseSiteTarget); err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range records {
		args, err := s.arguments(ctx, records[i].Declaration, records[i].Position)
		if err != nil {
			return nil, err
		}
		records[i].Arguments = args
	}
	return records, nil
}

func (s *SQLiteStore) arguments(ctx context.Context, decl string, position int) ([]Argument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, rendered FROM arguments
		WHERE decl = ? AND position = ?
		ORDER BY name
	`, decl, position)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var args []Argument
	for rows.Next() {
		var a Argument
		if err := rows.Scan(&a.Name, &a.Rendered); err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, rows.Err()
}
