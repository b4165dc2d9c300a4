// Package store implements the service repositories on MySQL with raw SQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/storefront-golang/internal/accounts"
	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/orders"
	"github.com/01moynul/storefront-golang/internal/reviews"
	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the store translates.
const (
	errDuplicateEntry   = 1062
	errNoReferencedRow  = 1452
	errNoReferencedRow2 = 1216
)

var (
	_ catalog.ProductRepository  = (*Store)(nil)
	_ catalog.TaxonomyRepository = (*Store)(nil)
	_ orders.Repository          = (*Store)(nil)
	_ reviews.Repository         = (*Store)(nil)
	_ accounts.Repository        = (*Store)(nil)
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store holds the Read/Write connection pool.
type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// classifyWrite maps constraint violations to validation errors. field
// names the unique column a duplicate entry refers to.
func classifyWrite(err error, resource, field string) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDuplicateEntry:
			return apperr.FieldErrors(map[string]string{
				field: fmt.Sprintf("%s with this %s already exists.", resource, field),
			})
		case errNoReferencedRow, errNoReferencedRow2:
			return &apperr.Error{Kind: apperr.KindValidation, Message: "referenced record does not exist", Err: err}
		}
	}
	return err
}

// notFound turns sql.ErrNoRows into apperr NotFound.
func notFound(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return err
}

// expectAffected reports NotFound when an UPDATE or DELETE matched no row.
func expectAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
