package cache

import (
	"time"

	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a key-value store with TTL backed by the cache_entries table.
// Entries are visible to every worker process sharing the database, which is
// what the tick engine's duplicate-tick guard requires.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx returns a store bound to an open transaction.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx}
}

// Get returns the value for key if the entry exists and has not expired.
func (s *Store) Get(key string, now time.Time) (string, bool, error) {
	var entry models.CacheEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to read cache entry")
	}
	if !entry.ExpiresAt.After(now) {
		return "", false, nil
	}
	return entry.Value, true, nil
}

// GetStale returns the value for key even if the entry has expired. Used by
// diagnostics that want the last written value regardless of TTL.
func (s *Store) GetStale(key string) (string, bool, error) {
	var entry models.CacheEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to read cache entry")
	}
	return entry.Value, true, nil
}

// Put upserts an entry with the given TTL.
func (s *Store) Put(key, value string, ttl time.Duration, now time.Time) error {
	entry := models.CacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: now.Add(ttl),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write cache entry")
	}
	return nil
}

// Delete removes an entry. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&models.CacheEntry{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete cache entry")
	}
	return nil
}

// PurgeExpired removes entries whose TTL has passed.
func (s *Store) PurgeExpired(now time.Time) error {
	if err := s.db.Where("expires_at <= ?", now).Delete(&models.CacheEntry{}).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to purge cache entries")
	}
	return nil
}
