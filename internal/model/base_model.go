package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 落库模型的公共字段
// 这些模型只在进程内部使用, 不参与 API 序列化
type BaseModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
