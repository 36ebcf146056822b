package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ScanLog Foto 扫描调用日志
// 每次 AI 识别都记一条, 识别失败也记 (方便排查成本和失败率)
type ScanLog struct {
	BaseModel

	// 调用信息
	ModelName  string `gorm:"size:64;comment:模型名称"`
	ImageBytes int    `gorm:"default:0;comment:图片大小(字节)"`
	MimeType   string `gorm:"size:64;comment:图片类型"`

	// 识别结果
	FeldNamen pq.StringArray `gorm:"type:text[];comment:识别出的字段名"`
	RawResult datatypes.JSON `gorm:"comment:模型原始返回"`

	// 性能与状态
	DurationMs int64  `gorm:"comment:耗时(毫秒)"`
	Status     string `gorm:"size:32;index;default:success;comment:状态(success/failed)"`
	ErrorMsg   string `gorm:"size:1024;comment:错误信息"`
}

func (ScanLog) TableName() string {
	return "scan_logs"
}

// ==================== 状态常量 ====================

const (
	ScanStatusSuccess = "success"
	ScanStatusFailed  = "failed"
)
