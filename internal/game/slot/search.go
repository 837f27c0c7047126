package slot

import (
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/metrics"
)

const (
	// SearchHardCap 搜索循环的硬上限
	SearchHardCap = 2000
	// SearchAbortAt 提前放弃阈值，达到即判定配置异常
	SearchAbortAt = 1500
)

// SearchParams 单次搜索的输入
type SearchParams struct {
	Ctx      *SpinContext
	WinType  WinType
	WinLimit float64 // 赢分上限（信用点），通常为对应银行余额
	MaxWin   float64 // 单局赢分上限（货币单位），0为不限
	BonusMpl float64 // 免费游戏倍数，主游戏传1
	Holds    map[int][]string
	HardCap  int // 迭代硬上限，0取SearchHardCap
	AbortAt  int // 放弃阈值，0取SearchAbortAt
}

// OutcomeSearch 生成-评分-接受的搜索循环。随机生成盘面直至命中
// 符合类别与上限的结果；达到放弃阈值说明银行或配置无法支撑该类别，
// 返回搜索耗尽错误且不落任何账。
type OutcomeSearch struct {
	cfg   *GameConfig
	rng   RandomGenerator
	reels *ReelWindow
	eval  *WinEvaluator
	log   *zap.Logger
}

// NewOutcomeSearch 创建搜索器
func NewOutcomeSearch(cfg *GameConfig, rng RandomGenerator, log *zap.Logger) *OutcomeSearch {
	return &OutcomeSearch{
		cfg:   cfg,
		rng:   rng,
		reels: NewReelWindow(cfg, rng),
		eval:  NewWinEvaluator(cfg),
		log:   log,
	}
}

// Run 执行搜索。winLimit在银行余额低于上限时就地降级。
func (s *OutcomeSearch) Run(led *Ledger, p *SearchParams) (*SearchOutcome, error) {
	winLimit := p.WinLimit
	state := BankStateFor(p.Ctx.Event)
	if p.WinType == WinTypeBonus {
		state = BankBonus
	}

	minWin := 0.0
	if p.WinType == WinTypeWin && s.cfg.IncreaseRTP {
		minWin = s.drawMinimumWin(led, p, state)
	}

	hardCap := p.HardCap
	if hardCap <= 0 {
		hardCap = SearchHardCap
	}
	abortAt := p.AbortAt
	if abortAt <= 0 || abortAt > hardCap {
		abortAt = SearchAbortAt
	}
	for i := 1; i <= abortAt && i <= hardCap; i++ {
		var w Window
		if p.WinType == WinTypeBonus {
			max := s.reels.MaxScatterReels(p.Ctx.Event)
			want := s.cfg.ScatterTrigger
			if max > want {
				want += s.rng.Intn(max - want + 1)
			}
			w = s.reels.SpinWithScatters(p.Ctx.Event, want, p.Holds)
		} else {
			w = s.reels.Spin(p.Ctx.Event, p.Holds)
		}

		res := s.eval.Evaluate(w, p.Ctx.BetPerLine, p.Ctx.Lines, p.BonusMpl)
		total := res.TotalWin
		triggered := s.cfg.HasBonus && res.ScatterCount >= s.cfg.ScatterTrigger

		if p.MaxWin > 0 && total*led.Denomination() > p.MaxWin {
			continue
		}

		switch p.WinType {
		case WinTypeNone:
			if total == 0 && !triggered {
				metrics.SearchIterations.WithLabelValues(p.Ctx.GameID, string(p.WinType)).Observe(float64(i))
				return &SearchOutcome{Window: w, Result: res, WinType: p.WinType, WinLimit: winLimit, Iterations: i}, nil
			}
		case WinTypeWin:
			if triggered || total <= 0 {
				continue
			}
			if minWin > 0 && total < minWin*p.Ctx.BetTotal() {
				continue
			}
			if bank := led.GetBank(state); bank < winLimit {
				winLimit = bank
			}
			if total <= winLimit {
				metrics.SearchIterations.WithLabelValues(p.Ctx.GameID, string(p.WinType)).Observe(float64(i))
				return &SearchOutcome{Window: w, Result: res, TotalWin: total, WinType: p.WinType, WinLimit: winLimit, Iterations: i}, nil
			}
		case WinTypeBonus:
			if !triggered {
				continue
			}
			if bank := led.GetBank(state); bank < winLimit {
				winLimit = bank
			}
			if total <= winLimit {
				metrics.SearchIterations.WithLabelValues(p.Ctx.GameID, string(p.WinType)).Observe(float64(i))
				return &SearchOutcome{Window: w, Result: res, TotalWin: total, WinType: p.WinType, WinLimit: winLimit, Iterations: i}, nil
			}
		}
	}

	metrics.SearchExhausted.WithLabelValues(p.Ctx.GameID).Inc()
	s.log.Error("结果搜索耗尽",
		zap.String("game_id", p.Ctx.GameID),
		zap.Uint("user_id", p.Ctx.UserID),
		zap.String("win_type", string(p.WinType)),
		zap.Float64("win_limit", winLimit),
		zap.Int("iterations", abortAt))
	return nil, errors.Newf(errors.ErrSearchExhausted,
		"结果搜索耗尽: game=%s type=%s limit=%.2f", p.Ctx.GameID, p.WinType, winLimit)
}

// drawMinimumWin 从洗牌后的非零赔率中抽一个最低赢分倍数，
// 超出银行承受能力时直接放弃下限（返回0），不重抽
func (s *OutcomeSearch) drawMinimumWin(led *Ledger, p *SearchParams, state string) float64 {
	pays := s.cfg.NonZeroPays()
	if len(pays) == 0 {
		return 0
	}
	s.rng.Shuffle(len(pays), func(i, j int) {
		pays[i], pays[j] = pays[j], pays[i]
	})
	if v := pays[0]; v*p.Ctx.BetTotal() <= led.GetBank(state) {
		return v
	}
	return 0
}
