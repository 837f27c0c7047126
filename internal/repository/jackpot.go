package repository

import (
	"context"

	"github.com/wfunc/rgs-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JackpotRepository JP奖池仓储接口
type JackpotRepository interface {
	BaseRepository
	Create(ctx context.Context, jackpot *models.Jackpot) error
	FindByGameID(ctx context.Context, gameID string) ([]*models.Jackpot, error)
	// LockForUpdate 在事务内锁定某游戏的全部奖池行
	LockForUpdate(tx *gorm.DB, gameID string) ([]*models.Jackpot, error)
	SaveBalance(tx *gorm.DB, jackpot *models.Jackpot) error
}

// jackpotRepo JP奖池仓储实现
type jackpotRepo struct {
	*BaseRepo
}

// NewJackpotRepository 创建JP奖池仓储
func NewJackpotRepository(db *gorm.DB) JackpotRepository {
	return &jackpotRepo{BaseRepo: &BaseRepo{db: db}}
}

// Create 创建奖池
func (r *jackpotRepo) Create(ctx context.Context, jackpot *models.Jackpot) error {
	return r.db.WithContext(ctx).Create(jackpot).Error
}

// FindByGameID 查找某游戏的全部奖池
func (r *jackpotRepo) FindByGameID(ctx context.Context, gameID string) ([]*models.Jackpot, error) {
	var jackpots []*models.Jackpot
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Order("id").Find(&jackpots).Error
	return jackpots, err
}

// LockForUpdate 在事务内锁定某游戏的全部奖池行
func (r *jackpotRepo) LockForUpdate(tx *gorm.DB, gameID string) ([]*models.Jackpot, error) {
	var jackpots []*models.Jackpot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("game_id = ?", gameID).Order("id").Find(&jackpots).Error
	return jackpots, err
}

// SaveBalance 持久化奖池余额与归属
func (r *jackpotRepo) SaveBalance(tx *gorm.DB, jackpot *models.Jackpot) error {
	return tx.Model(jackpot).Updates(map[string]interface{}{
		"balance": jackpot.Balance,
		"user_id": jackpot.UserID,
	}).Error
}
