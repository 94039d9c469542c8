// Package store persists console state between runs: the access token,
// the current user/company snapshots and small UI flags. It is the Go
// counterpart of the browser's local storage, backed by a sqlite file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erp/console/logger"
)

// Fixed keys mirrored from the browser client
const (
	KeyAccessToken    = "access_token"
	KeyCurrentUser    = "currentUser"
	KeyCurrentCompany = "currentCompany"
	KeyTourCompleted  = "tour_completed"
)

// entry is one key/value row; values are JSON or plain strings
type entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string
	UpdatedAt time.Time
}

// TableName sets the sqlite table name
func (entry) TableName() string { return "console_state" }

// Store is the sqlite-backed key/value state file
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the state file at path. ":memory:" gives an
// ephemeral store, used by tests.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.MapGormLogLevel("warn")),
	})
	if err != nil {
		return nil, fmt.Errorf("opening state store %q: %w", path, err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating state store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("closing state store: %w", err)
	}
	return db.Close()
}

// Set writes a string value under key
func (s *Store) Set(key, value string) error {
	e := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := s.db.Save(&e).Error; err != nil {
		return fmt.Errorf("saving state key %q: %w", key, err)
	}
	return nil
}

// Get reads the value under key; ok is false when the key is absent
func (s *Store) Get(key string) (value string, ok bool, err error) {
	var e entry
	err = s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading state key %q: %w", key, err)
	}
	return e.Value, true, nil
}

// Delete removes the key; deleting an absent key is not an error
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("deleting state key %q: %w", key, err)
	}
	return nil
}

// SetJSON marshals v and stores it under key
func (s *Store) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding state key %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// GetJSON reads key and unmarshals it into out; ok is false when absent
func (s *Store) GetJSON(key string, out any) (ok bool, err error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decoding state key %q: %w", key, err)
	}
	return true, nil
}

// SetFlag stores a boolean flag
func (s *Store) SetFlag(key string, v bool) error {
	if v {
		return s.Set(key, "true")
	}
	return s.Set(key, "false")
}

// Flag reads a boolean flag, defaulting to false
func (s *Store) Flag(key string) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}
