package repository

import (
	"context"
	"errors"

	apperrors "github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 玩家账户仓储接口
type UserRepository interface {
	BaseRepository
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// LockForUpdate 在事务内对账户行加排他锁，防止同会话并发请求双花
	LockForUpdate(tx *gorm.DB, id uint) (*models.User, error)
	// SaveBalances 持久化账本层计算好的余额字段
	SaveBalances(tx *gorm.DB, user *models.User) error
}

// userRepo 玩家账户仓储实现
type userRepo struct {
	*BaseRepo
}

// NewUserRepository 创建玩家账户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{BaseRepo: &BaseRepo{db: db}}
}

// Create 创建账户
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID 根据ID查找账户
func (r *userRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "账户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername 根据用户名查找账户
func (r *userRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "账户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// LockForUpdate 在事务内对账户行加排他锁
func (r *userRepo) LockForUpdate(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveBalances 持久化余额字段
func (r *userRepo) SaveBalances(tx *gorm.DB, user *models.User) error {
	return tx.Model(user).Updates(map[string]interface{}{
		"balance":       user.Balance,
		"count_balance": user.CountBalance,
		"address":       user.Address,
	}).Error
}
