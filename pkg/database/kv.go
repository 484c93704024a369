package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quiz-portal/pkg/storage"
)

// Entry is one key of a namespace.
type Entry struct {
	Namespace string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kv_entries"
}

// KVStore is a storage.Store backed by the kv_entries table.
type KVStore struct {
	db        *gorm.DB
	namespace string
}

func NewKVStore(db *gorm.DB, namespace string) *KVStore {
	return &KVStore{db: db, namespace: namespace}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var e Entry
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "select %s", key)
	}
	return e.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	e := Entry{Namespace: s.namespace, Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	return errors.Wrapf(err, "upsert %s", key)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		Delete(&Entry{}).Error
	return errors.Wrapf(err, "delete %s", key)
}

func (s *KVStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Where("namespace = ?", s.namespace).
		Delete(&Entry{}).Error
	return errors.Wrapf(err, "clear %s", s.namespace)
}
