package repository

import (
	"context"
	"errors"

	apperrors "github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameRepository 游戏记录仓储接口
// 银行浮存是按游戏共享的资源，读改写必须走 LockForUpdate + SaveBanks，
// 丢失更新属于资金完整性缺陷
type GameRepository interface {
	BaseRepository
	Create(ctx context.Context, game *models.Game) error
	FindByGameID(ctx context.Context, gameID string) (*models.Game, error)
	LockForUpdate(tx *gorm.DB, gameID string) (*models.Game, error)
	SaveBanks(tx *gorm.DB, game *models.Game) error
}

// gameRepo 游戏记录仓储实现
type gameRepo struct {
	*BaseRepo
}

// NewGameRepository 创建游戏记录仓储
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepo{BaseRepo: &BaseRepo{db: db}}
}

// Create 创建游戏记录
func (r *gameRepo) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// FindByGameID 根据游戏标识查找
func (r *gameRepo) FindByGameID(ctx context.Context, gameID string) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "游戏不存在")
		}
		return nil, err
	}
	return &game, nil
}

// LockForUpdate 在事务内对游戏行加排他锁
func (r *gameRepo) LockForUpdate(tx *gorm.DB, gameID string) (*models.Game, error) {
	var game models.Game
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("game_id = ?", gameID).First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// SaveBanks 持久化银行与统计字段
func (r *gameRepo) SaveBanks(tx *gorm.DB, game *models.Game) error {
	return tx.Model(game).Updates(map[string]interface{}{
		"bank":       game.Bank,
		"bank_bonus": game.BankBonus,
		"stat_in":    game.StatIn,
		"stat_out":   game.StatOut,
	}).Error
}

// ShopRepository 商户仓储接口
type ShopRepository interface {
	BaseRepository
	Create(ctx context.Context, shop *models.Shop) error
	FindByID(ctx context.Context, id uint) (*models.Shop, error)
}

// shopRepo 商户仓储实现
type shopRepo struct {
	*BaseRepo
}

// NewShopRepository 创建商户仓储
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepo{BaseRepo: &BaseRepo{db: db}}
}

// Create 创建商户
func (r *shopRepo) Create(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// FindByID 根据ID查找商户
func (r *shopRepo) FindByID(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).First(&shop, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "商户不存在")
		}
		return nil, err
	}
	return &shop, nil
}
