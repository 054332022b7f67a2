package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"fincalc/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS calculations (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	calculator_type TEXT NOT NULL,
	inputs          TEXT NOT NULL,
	results         TEXT NOT NULL,
	favorite        INTEGER NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_user ON calculations(user_id, created_at);
`

// SQLiteStore implements CalculationRepository and UserRepository on SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the database at dsn.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps :memory: databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// User operations

func (s *SQLiteStore) CreateUser(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.CreatedAt.UTC())
	return mapSQLiteError(err)
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users WHERE `+column+` = ?
	`, value).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapSQLiteError(err)
	}
	return u, nil
}

// Calculation operations

func (s *SQLiteStore) Create(ctx context.Context, c domain.Calculation) error {
	inputs, err := json.Marshal(c.Inputs)
	if err != nil {
		return fmt.Errorf("encode inputs: %w", err)
	}
	results, err := json.Marshal(c.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, user_id, calculator_type, inputs, results, favorite, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.CalculatorType, string(inputs), string(results), c.Favorite,
		c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	return mapSQLiteError(err)
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Calculation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, calculator_type, inputs, results, favorite, created_at, updated_at
		FROM calculations WHERE id = ?
	`, id)
	c, err := scanCalculation(row)
	if err != nil {
		return domain.Calculation{}, mapSQLiteError(err)
	}
	return c, nil
}

func (s *SQLiteStore) List(ctx context.Context, filter domain.CalculationFilter) ([]domain.Calculation, error) {
	query := `SELECT id, user_id, calculator_type, inputs, results, favorite, created_at, updated_at
	          FROM calculations WHERE 1=1`
	args := []any{}

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.CalculatorType != "" {
		query += " AND calculator_type = ?"
		args = append(args, filter.CalculatorType)
	}
	if filter.FavoritesOnly {
		query += " AND favorite = 1"
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SetFavorite(ctx context.Context, id string, favorite bool, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE calculations SET favorite = ?, updated_at = ? WHERE id = ?
	`, favorite, at.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM calculations WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (domain.Calculation, error) {
	var (
		c       domain.Calculation
		inputs  string
		results string
	)
	err := row.Scan(&c.ID, &c.UserID, &c.CalculatorType, &inputs, &results, &c.Favorite, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Calculation{}, err
	}
	if err := json.Unmarshal([]byte(inputs), &c.Inputs); err != nil {
		return domain.Calculation{}, fmt.Errorf("decode inputs of %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(results), &c.Results); err != nil {
		return domain.Calculation{}, fmt.Errorf("decode results of %s: %w", c.ID, err)
	}
	return c, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
	}
	return err
}
