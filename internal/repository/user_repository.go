package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/rental-admin/internal/model"
)

// UserRepo reads and updates rows of the `customer` and `staff` tables.  Both
// tables share the directory columns, so every method takes the kind and
// derives the table and key column from it.  Table and column names come
// from model.UserKind only, never from request input.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// List returns users of one kind with the given active flag that match the
// filter, most recently updated first.  Rows updated at the same instant
// keep primary key order.
func (r *UserRepo) List(ctx context.Context, kind model.UserKind, active bool, f NameFilter) ([]model.DirectoryUser, error) {
	cond, args := f.Clause()
	q := fmt.Sprintf(`SELECT %[1]s, first_name, last_name, active, last_update
		FROM %[2]s
		WHERE active = ? AND %[3]s
		ORDER BY last_update DESC, %[1]s ASC`, kind.IDColumn(), kind.Table(), cond)

	rows, err := r.db.QueryContext(ctx, q, append([]any{active}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	out := []model.DirectoryUser{}
	for rows.Next() {
		u, err := scanDirectoryUser(kind, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return out, nil
}

// Get fetches one user by primary key.  It returns ErrNotFound when the id
// does not exist in the kind's table.
func (r *UserRepo) Get(ctx context.Context, kind model.UserKind, id uint64) (model.DirectoryUser, error) {
	q := fmt.Sprintf(`SELECT %[1]s, first_name, last_name, active, last_update
		FROM %[2]s WHERE %[1]s = ? LIMIT 1`, kind.IDColumn(), kind.Table())

	u, err := scanDirectoryUser(kind, r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.DirectoryUser{}, ErrNotFound
	}
	if err != nil {
		return model.DirectoryUser{}, err
	}
	return u, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDirectoryUser reads the shared directory columns of either table and
// projects them into the unified wire shape.
func scanDirectoryUser(kind model.UserKind, s rowScanner) (model.DirectoryUser, error) {
	var (
		id          uint64
		first, last string
		active      bool
		updated     time.Time
	)
	if err := s.Scan(&id, &first, &last, &active, &updated); err != nil {
		return model.DirectoryUser{}, err
	}
	return model.Project(kind, id, first, last, active, updated), nil
}

// SetActive writes the active flag and bumps last_update, so the user moves
// to the top of its new partition.  Concurrent writers are last-write-wins.
func (r *UserRepo) SetActive(ctx context.Context, kind model.UserKind, id uint64, active bool) error {
	q := fmt.Sprintf("UPDATE %s SET active = ?, last_update = CURRENT_TIMESTAMP WHERE %s = ?",
		kind.Table(), kind.IDColumn())
	res, err := r.db.ExecContext(ctx, q, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// database.DSN sets clientFoundRows, so n counts matched rows
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
