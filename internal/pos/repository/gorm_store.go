package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is one serialized record row
type KVRecord struct {
	Key       string `gorm:"column:record_key;primaryKey"`
	Value     []byte `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name
func (KVRecord) TableName() string {
	return "kv_records"
}

// GormStore keeps records in a PostgreSQL table. Atomic locks the rows it
// reads with SELECT ... FOR UPDATE inside one transaction.
type GormStore struct {
	db     *gorm.DB
	prefix string
}

func NewGormStore(db *gorm.DB, prefix string) *GormStore {
	return &GormStore{db: db, prefix: prefix}
}

func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&KVRecord{})
}

func (s *GormStore) key(k string) string {
	return s.prefix + k
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := s.db.WithContext(ctx).Where("record_key = ?", s.key(key)).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", key, err)
	}
	return rec.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(s.db.WithContext(ctx), s.key(key), value)
}

func (s *GormStore) Atomic(ctx context.Context, keys []string, fn AtomicFunc) error {
	full := make([]string, len(keys))
	byFull := make(map[string]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
		byFull[full[i]] = k
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []KVRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("record_key IN ?", full).
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("lock records: %w", err)
		}

		current := make(map[string][]byte, len(rows))
		for _, row := range rows {
			current[byFull[row.Key]] = row.Value
		}

		changed, err := fn(current)
		if err != nil {
			return err
		}

		for k, v := range changed {
			if err := upsert(tx, s.key(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsert(db *gorm.DB, key string, value []byte) error {
	rec := KVRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save record %s: %w", key, err)
	}
	return nil
}
