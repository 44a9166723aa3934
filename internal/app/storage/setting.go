package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"time"
)

// SettingDelete deletes the setting for a key. Deleting a missing key is not an error.
func (st *Storage) SettingDelete(ctx context.Context, key string) error {
	_, err := st.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?;`, key)
	if err != nil {
		return fmt.Errorf("setting delete %s: %w", key, err)
	}
	return nil
}

// SettingGet decodes the value stored for key into v, which must be a pointer.
// It returns [ErrNotFound] when no value is stored for key.
func (st *Storage) SettingGet(ctx context.Context, key string, v any) error {
	var bb []byte
	err := st.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?;`, key).Scan(&bb)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("setting get %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("setting get %s: %w", key, err)
	}
	if err := gob.NewDecoder(bytes.NewReader(bb)).Decode(v); err != nil {
		return fmt.Errorf("setting get %s: decode: %w", key, err)
	}
	return nil
}

// SettingKeys returns the keys of all stored settings in alphabetical order.
func (st *Storage) SettingKeys(ctx context.Context) ([]string, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT key FROM settings ORDER BY key;`)
	if err != nil {
		return nil, fmt.Errorf("setting keys: %w", err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("setting keys: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("setting keys: %w", err)
	}
	return keys, nil
}

// SettingSet stores value for key. Existing values are overwritten.
func (st *Storage) SettingSet(ctx context.Context, key string, value any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return fmt.Errorf("setting set %s: encode: %w", key, err)
	}
	_, err := st.db.ExecContext(
		ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key,
		buf.Bytes(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting set %s: %w", key, err)
	}
	return nil
}
