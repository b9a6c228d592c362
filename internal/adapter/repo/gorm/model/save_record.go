package model

import (
	"time"

	"gorm.io/datatypes"
)

const TableNameSaveRecord = "save_records"

type SaveRecord struct {
	SaveKey   string         `gorm:"column:save_key;primaryKey"`
	Payload   datatypes.JSON `gorm:"column:payload;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
}

func (*SaveRecord) TableName() string {
	return TableNameSaveRecord
}
