package slot

import (
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/errors"
)

// GambleResult 一次比倍的结果
type GambleResult struct {
	Win         float64 `json:"win"`          // 比倍后的待定赢分（信用点）
	Won         bool    `json:"won"`          // 本步是否猜中
	Refused     bool    `json:"refused"`      // 因承受能力被拒绝（按输处理）
	Steps       int     `json:"steps"`        // 已比倍步数
	CanContinue bool    `json:"can_continue"` // 是否还能继续比倍
}

// GambleRound 比倍玩法：1/WinGamble概率猜中则待定赢分翻倍，
// 猜错清零。翻倍后超出单局上限或免费游戏银行付不起时直接拒绝并按输处理。
type GambleRound struct {
	cfg *GameConfig
	rng RandomGenerator
	log *zap.Logger
}

// NewGambleRound 创建比倍处理器
func NewGambleRound(cfg *GameConfig, rng RandomGenerator, log *zap.Logger) *GambleRound {
	return &GambleRound{cfg: cfg, rng: rng, log: log}
}

// Resolve 执行一步比倍。pending为当前待定赢分（信用点），steps为已用步数。
// 待定赢分为零或步数用尽时返回校验错误，由调用方原样上抛。
func (g *GambleRound) Resolve(led *Ledger, pending float64, steps int) (*GambleResult, error) {
	if pending <= 0 {
		return nil, errors.New(errors.ErrGambleRefused, "没有可比倍的赢分")
	}
	if steps >= g.cfg.MaxGambleSteps {
		return nil, errors.New(errors.ErrGambleRefused, "比倍次数已用完")
	}

	doubled := pending * 2
	maxWin := led.MaxWin()
	if maxWin > 0 && doubled*led.Denomination() > maxWin {
		return &GambleResult{Refused: true, Steps: steps + 1}, nil
	}
	if led.GetBank(BankBonus) < doubled {
		return &GambleResult{Refused: true, Steps: steps + 1}, nil
	}

	steps++
	if g.rng.Intn(g.cfg.WinGamble) == 0 {
		return &GambleResult{
			Win:         FormatFloat(doubled),
			Won:         true,
			Steps:       steps,
			CanContinue: steps < g.cfg.MaxGambleSteps,
		}, nil
	}
	return &GambleResult{Steps: steps}, nil
}
