package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mediaUserApp/models"
)

const opTimeout = 3 * time.Second

// AccountRepository is the durable store for accounts. Every method is a
// single statement: it acquires a connection, runs, and releases it before
// returning, including on error paths.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and returns it with its assigned ID.
// A duplicate username yields ErrAlreadyExists and leaves the table untouched.
func (r *AccountRepository) Create(ctx context.Context, username, password string, role models.Role) (*models.Account, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidAccount)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, role)
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, password, role) VALUES (?,?,?)`,
		username, password, role.String())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, storageErr("create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageErr("create", err)
	}
	return &models.Account{ID: id, Username: username, Password: password, Role: role}, nil
}

// FindByCredentials returns the account matching both fields exactly
// (case-sensitive), or nil when there is no match.
func (r *AccountRepository) FindByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	return r.queryOne(ctx, "find by credentials",
		`SELECT id, username, password, role FROM users WHERE username = ? AND password = ?`, username, password)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.queryOne(ctx, "get by id",
		`SELECT id, username, password, role FROM users WHERE id = ?`, id)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.queryOne(ctx, "get by username",
		`SELECT id, username, password, role FROM users WHERE username = ?`, username)
}

// Exists reports whether an account with the username is present.
func (r *AccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ? LIMIT 1`, username).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storageErr("exists", err)
	}
	return true, nil
}

// ListAll returns every account ordered by ID (insertion order, since IDs
// are never reused).
func (r *AccountRepository) ListAll(ctx context.Context) ([]models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, password, role FROM users ORDER BY id`)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()
	out := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, storageErr("list", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", err)
	}
	return out, nil
}

// Delete removes the account with the given ID, or returns ErrNotFound.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) queryOne(ctx context.Context, op, query string, args ...any) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return a, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*models.Account, error) {
	var a models.Account
	var role string
	if err := s.Scan(&a.ID, &a.Username, &a.Password, &role); err != nil {
		return nil, err
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("account %d: %w", a.ID, err)
	}
	a.Role = r
	return &a, nil
}
