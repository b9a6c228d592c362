package gormrepo

import (
	"context"
	"errors"
	"time"

	"idletycoon/internal/adapter/repo/gorm/model"
	"idletycoon/internal/app/ports"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSaveStore(db *gorm.DB) SaveStore {
	return SaveStore{db: db, now: time.Now}
}

func (r SaveStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row model.SaveRecord
	err := r.db.WithContext(ctx).
		Where(&model.SaveRecord{SaveKey: key}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return []byte(row.Payload), nil
}

func (r SaveStore) Put(ctx context.Context, key string, payload []byte) error {
	row := model.SaveRecord{
		SaveKey:   key,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: r.now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "save_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

var _ ports.SaveStore = SaveStore{}
