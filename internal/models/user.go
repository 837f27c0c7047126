package models

import "time"

// User 玩家账户表
// Balance 按面额缩放存储（货币最小单位），只允许账本层修改
type User struct {
	BaseModel
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	ShopID       uint       `gorm:"index;not null" json:"shop_id"`
	Balance      float64    `gorm:"default:0" json:"balance"`       // 主余额
	CountBalance float64    `gorm:"default:0" json:"count_balance"` // 购币子余额
	Address      float64    `gorm:"default:0" json:"address"`       // 次级信用池
	Denomination float64    `gorm:"default:0.01" json:"denomination"`
	Status       string     `gorm:"size:20;default:'active'" json:"status"` // active, banned
	IsBlocked    bool       `gorm:"default:false" json:"is_blocked"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// CanPlay 账户是否允许下注
func (u *User) CanPlay() bool {
	return u.Status == "active" && !u.IsBlocked
}
