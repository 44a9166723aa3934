package settings

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/ErikKalkoken/keybuddy/internal/app/storage"
)

// Store is a persistent key-value store for settings.
type Store interface {
	Bool(key string, fallback bool) (bool, error)
	SetBool(key string, v bool) error
	String(key string, fallback string) (string, error)
	SetString(key string, v string) error
	Delete(key string) error
}

// fyneStore is a Store backed by the preferences of a Fyne app.
type fyneStore struct {
	p fyne.Preferences
}

var _ Store = (*fyneStore)(nil)

// NewFyneStore returns a Store backed by Fyne preferences. It never fails.
func NewFyneStore(p fyne.Preferences) Store {
	return &fyneStore{p: p}
}

func (s *fyneStore) Bool(key string, fallback bool) (bool, error) {
	return s.p.BoolWithFallback(key, fallback), nil
}

func (s *fyneStore) SetBool(key string, v bool) error {
	s.p.SetBool(key, v)
	return nil
}

func (s *fyneStore) String(key string, fallback string) (string, error) {
	return s.p.StringWithFallback(key, fallback), nil
}

func (s *fyneStore) SetString(key string, v string) error {
	s.p.SetString(key, v)
	return nil
}

func (s *fyneStore) Delete(key string) error {
	s.p.RemoveValue(key)
	return nil
}

// dbStore is a Store backed by the local database.
type dbStore struct {
	st *storage.Storage
}

var _ Store = (*dbStore)(nil)

// NewDBStore returns a Store backed by the local database.
func NewDBStore(st *storage.Storage) Store {
	return &dbStore{st: st}
}

func (s *dbStore) Bool(key string, fallback bool) (bool, error) {
	return getWithFallback(s.st, key, fallback)
}

func (s *dbStore) SetBool(key string, v bool) error {
	return s.st.SettingSet(context.Background(), key, v)
}

func (s *dbStore) String(key string, fallback string) (string, error) {
	return getWithFallback(s.st, key, fallback)
}

func (s *dbStore) SetString(key string, v string) error {
	return s.st.SettingSet(context.Background(), key, v)
}

func (s *dbStore) Delete(key string) error {
	return s.st.SettingDelete(context.Background(), key)
}

func getWithFallback[T any](st *storage.Storage, key string, fallback T) (T, error) {
	var v T
	err := st.SettingGet(context.Background(), key, &v)
	if errors.Is(err, storage.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("setting %s: %w", key, err)
	}
	return v, nil
}
