package slot

import (
	"go.uber.org/zap"
)

// OutcomeDecision 本局的类别决定与生效上限
type OutcomeDecision struct {
	WinType  WinType
	WinLimit float64 // 接受结果的上限（信用点），即当前银行
	MaxWin   float64 // 货币单位赢分上限，强制小奖窗口内被钳制
}

// OutcomeSelector 返还率控制器。按商户返还率区间抽取结果类别，
// 并用滑动观测窗口在实际返还率落后时强制一段低赢分区间拉回。
type OutcomeSelector struct {
	cfg  *GameConfig
	rng  RandomGenerator
	flow *Flow
	log  *zap.Logger
}

// NewOutcomeSelector 创建控制器
func NewOutcomeSelector(cfg *GameConfig, rng RandomGenerator, flow *Flow, log *zap.Logger) *OutcomeSelector {
	return &OutcomeSelector{cfg: cfg, rng: rng, flow: flow, log: log}
}

// SelectOutcome 决定本局结果类别。免费游戏/重转不参与抽取，
// 其类别由流程状态决定，调用方不经过本方法。
func (s *OutcomeSelector) SelectOutcome(led *Ledger, ctx *SpinContext) *OutcomeDecision {
	bonusGame := ctx.Event == EventFreeSpin || ctx.Event == EventBonus || ctx.Event == EventRespin
	percent := led.Percent()
	bonusChance, spinChance := s.cfg.Chances(ctx.Lines, bonusGame, percent)

	maxWin := led.MaxWin()
	limit := s.controlWindow(led, ctx)
	if limit > 0 {
		// 强制小奖期内提高中奖频率并钳制单局上限，用密集小奖拉回返还率
		bonusChance /= 4
		spinChance /= 2
		if bonusChance < 1 {
			bonusChance = 1
		}
		if spinChance < 1 {
			spinChance = 1
		}
		clamp := FormatFloat(limit * ctx.BetTotal() * led.Denomination())
		if maxWin <= 0 || clamp < maxWin {
			maxWin = clamp
		}
	}

	winType := WinTypeNone
	if spinChance > 0 && s.rng.Intn(spinChance) == 0 {
		winType = WinTypeWin
	}
	if s.cfg.HasBonus && bonusChance > 0 && s.rng.Intn(bonusChance) == 0 && s.bonusAffordable(led, ctx) {
		winType = WinTypeBonus
	}

	// 保底：余额见底时提高出奖概率，只在主游戏生效
	if winType == WinTypeNone && ctx.Event == EventBet &&
		led.GetBalance() <= 2 && s.rng.Intn(10) == 0 {
		winType = WinTypeWin
	}

	state := BankStateFor(ctx.Event)
	if winType == WinTypeBonus {
		state = BankBonus
	}
	return &OutcomeDecision{
		WinType:  winType,
		WinLimit: led.GetBank(state),
		MaxWin:   maxWin,
	}
}

// bonusAffordable 免费游戏一致性闸门：理论平均赢分不得使累计派彩
// 超过累计投注，且免费游戏银行必须付得起
func (s *OutcomeSelector) bonusAffordable(led *Ledger, ctx *SpinContext) bool {
	avg := s.cfg.CheckBonusWin() * ctx.BetTotal()
	if avg <= 0 {
		return false
	}
	if led.game.StatOut+avg*led.Denomination() > led.game.StatIn {
		return false
	}
	return led.GetBank(BankBonus) >= avg
}

// controlWindow 维护观测窗口与强制小奖标记，返回当前生效的小奖倍数（0为未生效）
func (s *OutcomeSelector) controlWindow(led *Ledger, ctx *SpinContext) float64 {
	if ctx.Event != EventBet || s.cfg.RTPControlWindow <= 0 {
		return s.flow.Float(fieldSpinWinLimit, 0)
	}

	count := s.flow.Int(fieldRtpControlCount, s.cfg.RTPControlWindow)
	limit := s.flow.Float(fieldSpinWinLimit, 0)
	observed := led.ObservedRTP()

	count--
	if count <= 0 {
		if limit <= 0 && observed > 0 && observed < led.Percent() {
			span := s.cfg.ForcedWinCeil - s.cfg.ForcedWinFloor
			limit = float64(s.cfg.ForcedWinFloor + s.rng.Intn(span+1))
			s.log.Info("启用强制小奖窗口",
				zap.String("game_id", ctx.GameID),
				zap.Uint("user_id", ctx.UserID),
				zap.Float64("observed_rtp", observed),
				zap.Float64("limit", limit))
		}
		count = s.cfg.RTPControlWindow
	}
	if limit > 0 && observed >= led.Percent()-1 {
		s.log.Info("返还率恢复，解除强制小奖",
			zap.String("game_id", ctx.GameID),
			zap.Uint("user_id", ctx.UserID),
			zap.Float64("observed_rtp", observed))
		limit = 0
		count = s.cfg.RTPControlWindow
	}

	s.flow.SetInt(fieldRtpControlCount, count)
	s.flow.SetFloat(fieldSpinWinLimit, limit)
	return limit
}
