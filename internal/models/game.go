package models

// Game 游戏记录表（每个游戏实例一行）
// 银行浮存按 normal/bonus 两种状态分开记账，只允许账本层在事务内修改
type Game struct {
	BaseModel
	GameID        string  `gorm:"uniqueIndex;size:100;not null" json:"game_id"` // 游戏标识，如 golden_pyramid
	ShopID        uint    `gorm:"index;not null" json:"shop_id"`
	Name          string  `gorm:"size:100" json:"name"`
	Bank          float64 `gorm:"default:0" json:"bank"`       // 主状态银行
	BankBonus     float64 `gorm:"default:0" json:"bank_bonus"` // 免费游戏银行
	StatIn        float64 `gorm:"default:0" json:"stat_in"`    // 累计投注
	StatOut       float64 `gorm:"default:0" json:"stat_out"`   // 累计派彩
	MaxWin        float64 `gorm:"default:0" json:"max_win"`    // 单次赢分上限（0为不限）
	Denominations string  `gorm:"size:255;default:'0.01'" json:"denominations"`
	View          bool    `gorm:"default:true" json:"view"`
}

// BankFor 按游戏状态取银行余额
func (g *Game) BankFor(state string) float64 {
	if state == "bonus" {
		return g.BankBonus
	}
	return g.Bank
}

// AddBank 按游戏状态累加银行余额
func (g *Game) AddBank(state string, delta float64) {
	if state == "bonus" {
		g.BankBonus += delta
		return
	}
	g.Bank += delta
}

// Shop 商户记录表
type Shop struct {
	BaseModel
	Name      string  `gorm:"size:100;not null" json:"name"`
	Percent   float64 `gorm:"default:90" json:"percent"` // 配置返还率
	Currency  string  `gorm:"size:10;default:'USD'" json:"currency"`
	MaxWin    float64 `gorm:"default:0" json:"max_win"`
	IsBlocked bool    `gorm:"default:false" json:"is_blocked"`
}

// Jackpot JP奖池表（同一游戏的所有玩家共享）
type Jackpot struct {
	BaseModel
	ShopID       uint    `gorm:"index;not null" json:"shop_id"`
	GameID       string  `gorm:"index;size:100" json:"game_id"`
	Balance      float64 `gorm:"default:0" json:"balance"`
	Percent      float64 `gorm:"default:1" json:"percent"`         // 每注抽成百分比
	StartBalance float64 `gorm:"default:100" json:"start_balance"` // 补种底值
	PaySum       float64 `gorm:"default:0.6" json:"pay_sum"`       // 派彩启动比例（余额占比）
	UserID       *uint   `gorm:"index" json:"user_id,omitempty"`   // 锁定玩家（可空）
}
