package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"marktplatz_dev_v1/internal/model"
)

// ==================== 仓储接口 ====================

// ScanLogRepository Foto 扫描日志仓储接口
type ScanLogRepository interface {
	Create(ctx context.Context, log *model.ScanLog) error
	GetByID(ctx context.Context, id int64) (*model.ScanLog, error)
	ListRecent(ctx context.Context, limit int) ([]model.ScanLog, error)

	// 统计查询
	GetUsage(ctx context.Context, startTime, endTime time.Time) (*ScanUsageStats, error)
}

// ==================== 统计结构 ====================

// ScanUsageStats 扫描用量统计
type ScanUsageStats struct {
	TotalScans    int64   `json:"total_scans"`
	SuccessCount  int64   `json:"success_count"`
	FailedCount   int64   `json:"failed_count"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
	TotalBytes    int64   `json:"total_bytes"`
}

// ==================== 仓储实现 ====================

type scanLogRepo struct {
	db *gorm.DB
}

// NewScanLogRepository 创建扫描日志仓储
func NewScanLogRepository(db *gorm.DB) ScanLogRepository {
	return &scanLogRepo{db: db}
}

func (r *scanLogRepo) Create(ctx context.Context, log *model.ScanLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *scanLogRepo) GetByID(ctx context.Context, id int64) (*model.ScanLog, error) {
	var log model.ScanLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *scanLogRepo) ListRecent(ctx context.Context, limit int) ([]model.ScanLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var logs []model.ScanLog
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *scanLogRepo) GetUsage(ctx context.Context, startTime, endTime time.Time) (*ScanUsageStats, error) {
	var stats ScanUsageStats

	query := r.db.WithContext(ctx).Model(&model.ScanLog{})
	if !startTime.IsZero() {
		query = query.Where("created_at >= ?", startTime)
	}
	if !endTime.IsZero() {
		query = query.Where("created_at <= ?", endTime)
	}

	err := query.Select(`
		COUNT(*) as total_scans,
		SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END) as success_count,
		SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END) as failed_count,
		COALESCE(AVG(duration_ms), 0) as avg_duration_ms,
		COALESCE(SUM(image_bytes), 0) as total_bytes
	`).Scan(&stats).Error

	return &stats, err
}
