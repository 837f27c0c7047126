package repository

import (
	"context"

	"github.com/wfunc/rgs-engine/internal/models"
	"gorm.io/gorm"
)

// SpinLogRepository 转轮审计日志仓储接口（只追加）
type SpinLogRepository interface {
	BaseRepository
	Append(ctx context.Context, log *models.SpinLog) error
	FindByUser(ctx context.Context, userID uint, limit int) ([]*models.SpinLog, error)
}

// spinLogRepo 审计日志仓储实现
type spinLogRepo struct {
	*BaseRepo
}

// NewSpinLogRepository 创建审计日志仓储
func NewSpinLogRepository(db *gorm.DB) SpinLogRepository {
	return &spinLogRepo{BaseRepo: &BaseRepo{db: db}}
}

// Append 追加一条审计记录
func (r *spinLogRepo) Append(ctx context.Context, log *models.SpinLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByUser 查询玩家最近的审计记录
func (r *spinLogRepo) FindByUser(ctx context.Context, userID uint, limit int) ([]*models.SpinLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var logs []*models.SpinLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Find(&logs).Error
	return logs, err
}
