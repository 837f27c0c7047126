package slot

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/metrics"
	"github.com/wfunc/rgs-engine/internal/models"
)

// FormatFloat 金额保留规则：小数位数超过4位时四舍五入到2位，
// 3-4位时向下截断到2位，2位以内原样返回。
func FormatFloat(v float64) float64 {
	raw := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(raw, '.')
	if dot < 0 {
		return v
	}
	frac := len(raw) - dot - 1
	d := decimal.NewFromFloat(v)
	switch {
	case frac > 4:
		d = d.Round(2)
	case frac >= 3:
		d = d.RoundDown(2)
	default:
		return v
	}
	out, _ := d.Float64()
	return out
}

// Ledger 单次请求内的账务视图。余额、银行以信用点对外，底层以货币单位存储，
// 换算系数为玩家面值。所有写入先校验不变量，违例返回致命错误且不落账。
type Ledger struct {
	user     *models.User
	game     *models.Game
	shop     *models.Shop
	jackpots []*models.Jackpot

	bonusCarve float64 // 银行份额中划入免费游戏银行的比例
	betRemains float64 // 本次投注未被购币余额覆盖的货币金额
	log        *zap.Logger
}

// NewLedger 创建账务视图，入参为本事务内已锁定的行
func NewLedger(user *models.User, game *models.Game, shop *models.Shop, jackpots []*models.Jackpot, bonusCarve float64, log *zap.Logger) *Ledger {
	return &Ledger{
		user:       user,
		game:       game,
		shop:       shop,
		jackpots:   jackpots,
		bonusCarve: bonusCarve,
		log:        log,
	}
}

// Denomination 玩家面值
func (l *Ledger) Denomination() float64 {
	return l.user.Denomination
}

// GetBalance 玩家余额（信用点）
func (l *Ledger) GetBalance() float64 {
	return FormatFloat(l.user.Balance / l.user.Denomination)
}

// GetCountBalance 购币余额（货币单位）
func (l *Ledger) GetCountBalance() float64 {
	return l.user.CountBalance
}

// GetBank 指定状态的银行余额（信用点）
func (l *Ledger) GetBank(state string) float64 {
	return FormatFloat(l.game.BankFor(state) / l.user.Denomination)
}

// Percent 商户目标返还率
func (l *Ledger) Percent() float64 {
	return l.shop.Percent
}

// ObservedRTP 实际返还率百分比，无投注记录时为0
func (l *Ledger) ObservedRTP() float64 {
	if l.game.StatIn <= 0 {
		return 0
	}
	return l.game.StatOut / l.game.StatIn * 100
}

// MaxWin 单次最大赢分上限（货币单位），取游戏与商户中较小的非零值
func (l *Ledger) MaxWin() float64 {
	gw, sw := l.game.MaxWin, l.shop.MaxWin
	switch {
	case gw <= 0:
		return sw
	case sw <= 0:
		return gw
	case gw < sw:
		return gw
	}
	return sw
}

// AddStats 累计投注与派彩统计（信用点入参，按货币单位记账）
func (l *Ledger) AddStats(in, out float64) {
	l.game.StatIn = FormatFloat(l.game.StatIn + in*l.user.Denomination)
	l.game.StatOut = FormatFloat(l.game.StatOut + out*l.user.Denomination)
}

// BetRemains 本次投注未被购币余额覆盖的部分（货币单位）
func (l *Ledger) BetRemains() float64 {
	return l.betRemains
}

// SetBalance 按信用点增减玩家余额。投注扣款时先消耗购币余额，
// 不足部分从次级池扣除并记入betRemains。余额不足返回致命错误，不做任何落账。
func (l *Ledger) SetBalance(delta float64, event SlotEvent) error {
	scaled := FormatFloat(delta * l.user.Denomination)
	if l.user.Balance+scaled < 0 {
		metrics.LedgerFailures.WithLabelValues(l.game.GameID, "balance").Inc()
		return errors.Newf(errors.ErrNegativeBalance,
			"账户余额不足: balance=%.2f delta=%.2f user=%d", l.user.Balance, scaled, l.user.ID)
	}
	if scaled < 0 && event == EventBet {
		bet := -scaled
		if l.user.CountBalance >= bet {
			l.user.CountBalance = FormatFloat(l.user.CountBalance - bet)
		} else {
			remain := FormatFloat(bet - l.user.CountBalance)
			l.user.CountBalance = 0
			if l.user.Address >= remain {
				l.user.Address = FormatFloat(l.user.Address - remain)
			} else {
				l.user.Address = 0
			}
			l.betRemains = FormatFloat(l.betRemains + remain)
		}
	}
	l.user.Balance = FormatFloat(l.user.Balance + scaled)
	return nil
}

// SetBank 按信用点增减银行。投注入账时按商户返还率分账，
// betRemains部分不参与分账；免费游戏银行按BonusCarve比例抽成。
// 出账导致银行为负时返回致命错误。
func (l *Ledger) SetBank(state string, delta float64, event SlotEvent) error {
	scaled := FormatFloat(delta * l.user.Denomination)
	if event == EventBet && scaled > 0 {
		countable := FormatFloat(scaled - l.betRemains)
		if countable < 0 {
			countable = 0
		}
		l.betRemains = 0
		share := FormatFloat(countable * l.shop.Percent / 100)
		if l.bonusCarve > 0 {
			carve := FormatFloat(share * l.bonusCarve / 100)
			l.game.AddBank(BankBonus, carve)
			share = FormatFloat(share - carve)
		}
		l.game.AddBank(state, share)
		return nil
	}
	if l.game.BankFor(state)+scaled < 0 {
		metrics.LedgerFailures.WithLabelValues(l.game.GameID, "bank").Inc()
		return errors.Newf(errors.ErrNegativeBank,
			"银行余额不足: state=%q bank=%.2f delta=%.2f game=%s",
			state, l.game.BankFor(state), scaled, l.game.GameID)
	}
	l.game.AddBank(state, scaled)
	return nil
}

// AwardCurrency 直接以货币单位给玩家加款（奖池派彩用）
func (l *Ledger) AwardCurrency(amount float64) {
	l.user.Balance = FormatFloat(l.user.Balance + amount)
}

// Snapshot 用于内部错误日志的账务快照
func (l *Ledger) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"user_id":       l.user.ID,
		"game_id":       l.game.GameID,
		"balance":       l.user.Balance,
		"count_balance": l.user.CountBalance,
		"bank":          l.game.Bank,
		"bank_bonus":    l.game.BankBonus,
		"stat_in":       l.game.StatIn,
		"stat_out":      l.game.StatOut,
	}
}
