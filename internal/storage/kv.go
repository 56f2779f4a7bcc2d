// Package storage persists documents in the kv_store table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type Entry struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
	Revision  int64  `json:"revision"`
}

type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("kv key is required")
	}
	return key, nil
}

// Set upserts key and bumps its revision.
func (kv *KV) Set(ctx context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	_, err = kv.db.ExecContext(ctx, `
INSERT INTO kv_store(key, value, updated_at, revision)
VALUES(?, ?, CURRENT_TIMESTAMP, 1)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at, revision=kv_store.revision + 1
`, key, value)
	if err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}
	return nil
}

func (kv *KV) Get(ctx context.Context, key string) (Entry, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return Entry{}, false, err
	}
	e := Entry{Key: key}
	err = kv.db.QueryRowContext(ctx, `SELECT value, updated_at, revision FROM kv_store WHERE key = ?`, key).
		Scan(&e.Value, &e.UpdatedAt, &e.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get kv %q: %w", key, err)
	}
	return e, true, nil
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete kv %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys with their metadata, values left empty.
func (kv *KV) Keys(ctx context.Context) ([]Entry, error) {
	rows, err := kv.db.QueryContext(ctx, `SELECT key, updated_at, revision FROM kv_store ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list kv keys: %w", err)
	}
	defer rows.Close()
	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.UpdatedAt, &e.Revision); err != nil {
			return nil, fmt.Errorf("scan kv key: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kv keys: %w", err)
	}
	return out, nil
}
