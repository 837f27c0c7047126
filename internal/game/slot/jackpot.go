package slot

import (
	"math"

	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/metrics"
	"github.com/wfunc/rgs-engine/internal/models"
)

// 奖池派彩抽签概率 1/jackpotPayChance，余额达到派彩线后每次投注参与抽签
const jackpotPayChance = 200

// JackpotHit 单个奖池的派彩结果
type JackpotHit struct {
	JackpotID uint    `json:"jackpot_id"`
	Amount    float64 `json:"amount"` // 货币单位
}

// JackpotPool 累积奖池。每次主游戏投注按比例注水，余额越线后按
// 启发式抽签派彩；派彩后余额过低时回种。奖池可锁定给特定玩家。
type JackpotPool struct {
	led *Ledger
	rng RandomGenerator
	log *zap.Logger
}

// NewJackpotPool 创建奖池处理器
func NewJackpotPool(led *Ledger, rng RandomGenerator, log *zap.Logger) *JackpotPool {
	return &JackpotPool{led: led, rng: rng, log: log}
}

// Contribute 主游戏投注时注水并判定派彩。betTotal为信用点。
// 注水基数取购币余额与投注额中较小者，防止信用投注抬高奖池。
func (p *JackpotPool) Contribute(betTotal float64) ([]*JackpotHit, error) {
	var hits []*JackpotHit
	betCurrency := betTotal * p.led.Denomination()
	for _, jp := range p.led.jackpots {
		base := math.Min(p.led.user.CountBalance, betCurrency)
		if base > 0 && jp.Percent > 0 {
			jp.Balance = FormatFloat(jp.Balance + FormatFloat(base/100*jp.Percent))
		}

		hit, err := p.tryPay(jp)
		if err != nil {
			return nil, err
		}
		if hit != nil {
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

// tryPay 派彩启发式：余额达到种子额后按固定概率抽签，
// 派彩额为当前余额的PaySum比例
func (p *JackpotPool) tryPay(jp *models.Jackpot) (*JackpotHit, error) {
	if jp.Balance < jp.StartBalance || jp.PaySum <= 0 {
		return nil, nil
	}
	if jp.UserID != nil && *jp.UserID != p.led.user.ID {
		// 已锁定给其他玩家
		return nil, nil
	}
	if p.rng.Intn(jackpotPayChance) != 0 {
		return nil, nil
	}

	payout := FormatFloat(jp.Balance * jp.PaySum)
	if payout <= 0 {
		return nil, nil
	}
	if jp.Balance-payout < 0 {
		metrics.LedgerFailures.WithLabelValues(p.led.game.GameID, "jackpot").Inc()
		return nil, errors.Newf(errors.ErrNegativeJackpot,
			"奖池余额不足: id=%d balance=%.2f payout=%.2f", jp.ID, jp.Balance, payout)
	}

	jp.Balance = FormatFloat(jp.Balance - payout)
	jp.UserID = nil
	p.led.AwardCurrency(payout)

	// 派彩后余额过低时回种
	if jp.Balance < 0.5*jp.StartBalance {
		jp.Balance = FormatFloat(jp.Balance + jp.StartBalance)
	}

	p.log.Info("奖池派彩",
		zap.Uint("jackpot_id", jp.ID),
		zap.Uint("user_id", p.led.user.ID),
		zap.Float64("payout", payout),
		zap.Float64("balance", jp.Balance))
	return &JackpotHit{JackpotID: jp.ID, Amount: payout}, nil
}
