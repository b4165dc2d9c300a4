package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// OpenDB opens and verifies the Read/Write connection pool described by cfg.
func OpenDB(ctx context.Context, cfg config.DBConfig, log *zap.Logger) (*sql.DB, error) {
	dsn, err := normalizeDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("Database connection pool established",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime))
	return db, nil
}

// normalizeDSN forces the driver options the store depends on: parsed
// DATETIME columns in UTC, multi-row statements disabled and matched (not
// changed) rows reported by UPDATE.
func normalizeDSN(dsn string) (string, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse DB_DSN_PRIMARY: %w", err)
	}
	parsed.ParseTime = true
	parsed.Loc = time.UTC
	parsed.MultiStatements = false
	parsed.ClientFoundRows = true
	return parsed.FormatDSN(), nil
}
