package slot

import (
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/errors"
)

// BonusState 免费游戏状态
type BonusState string

const (
	BonusIdle       BonusState = "idle"
	BonusTriggered  BonusState = "triggered"   // 已触发未开始
	BonusInProgress BonusState = "in_progress" // 进行中
)

// BonusStateMachine 免费游戏流程。所有计数存于会话流程字段，
// 过期后自动回到空闲态。状态由计数推导，不单独存储。
type BonusStateMachine struct {
	cfg  *GameConfig
	flow *Flow
	log  *zap.Logger
}

// NewBonusStateMachine 创建免费游戏状态机
func NewBonusStateMachine(cfg *GameConfig, flow *Flow, log *zap.Logger) *BonusStateMachine {
	return &BonusStateMachine{cfg: cfg, flow: flow, log: log}
}

// State 当前状态
func (m *BonusStateMachine) State() BonusState {
	total := m.flow.Int(fieldFreeGames, 0)
	if total <= 0 {
		return BonusIdle
	}
	if m.flow.Int(fieldCurrentFreeGame, 0) <= 0 {
		return BonusTriggered
	}
	return BonusInProgress
}

// FreeGames 本轮免费游戏总数
func (m *BonusStateMachine) FreeGames() int {
	return m.flow.Int(fieldFreeGames, 0)
}

// CurrentFreeGame 已完成的免费游戏数
func (m *BonusStateMachine) CurrentFreeGame() int {
	return m.flow.Int(fieldCurrentFreeGame, 0)
}

// Remaining 剩余免费游戏数
func (m *BonusStateMachine) Remaining() int {
	r := m.FreeGames() - m.CurrentFreeGame()
	if r < 0 {
		return 0
	}
	return r
}

// BonusWin 本轮免费游戏累计赢分
func (m *BonusStateMachine) BonusWin() float64 {
	return m.flow.Float(fieldBonusWin, 0)
}

// freeGamesFor 按scatter数查免费次数
func (m *BonusStateMachine) freeGamesFor(scatters int) int {
	if scatters >= len(m.cfg.FreeSpinTable) {
		scatters = len(m.cfg.FreeSpinTable) - 1
	}
	if scatters < 0 {
		return 0
	}
	return m.cfg.FreeSpinTable[scatters]
}

// HandleBaseSpin 主游戏结算后处理触发。触发时初始化计数并记录触发时赢分，
// 返回是否进入免费游戏。
func (m *BonusStateMachine) HandleBaseSpin(res *WinResult) bool {
	if !m.cfg.HasBonus || res.ScatterCount < m.cfg.ScatterTrigger {
		return false
	}
	games := m.freeGamesFor(res.ScatterCount)
	if games <= 0 {
		return false
	}
	m.flow.SetInt(fieldFreeGames, games)
	m.flow.SetInt(fieldCurrentFreeGame, 0)
	m.flow.SetFloat(fieldBonusWin, 0)
	m.flow.SetFloat(fieldFreeStartWin, res.TotalWin)
	m.flow.SetFloat(fieldTotalWin, res.TotalWin)
	m.log.Info("触发免费游戏",
		zap.Int("scatters", res.ScatterCount),
		zap.Int("free_games", games))
	return true
}

// Begin 校验并进入下一局免费游戏，空闲态调用返回状态错误
func (m *BonusStateMachine) Begin() error {
	if m.Remaining() <= 0 {
		return errors.New(errors.ErrBonusState, "当前没有可用的免费游戏")
	}
	return nil
}

// Settle 免费游戏结算：累计赢分、处理再触发，全部打完后复位并返回true
func (m *BonusStateMachine) Settle(res *WinResult) (done bool) {
	current := m.CurrentFreeGame() + 1
	m.flow.SetInt(fieldCurrentFreeGame, current)
	m.flow.SetFloat(fieldBonusWin, FormatFloat(m.BonusWin()+res.TotalWin))
	m.flow.SetFloat(fieldTotalWin, FormatFloat(m.flow.Float(fieldTotalWin, 0)+res.TotalWin))

	if res.ScatterCount >= m.cfg.ScatterTrigger {
		extra := m.freeGamesFor(res.ScatterCount)
		if extra > 0 {
			m.flow.SetInt(fieldFreeGames, m.FreeGames()+extra)
			m.log.Info("免费游戏再触发",
				zap.Int("scatters", res.ScatterCount),
				zap.Int("extra", extra))
		}
	}

	if m.Remaining() <= 0 {
		m.flow.SetInt(fieldFreeGames, 0)
		m.flow.SetInt(fieldCurrentFreeGame, 0)
		m.flow.SetHolds(nil)
		return true
	}
	return false
}

// Holds 当前持留轴
func (m *BonusStateMachine) Holds() map[int][]string {
	return m.flow.Holds()
}

// HandleRespinTrigger 主游戏落wild后持留整轴并授予一次重转
func (m *BonusStateMachine) HandleRespinTrigger(w Window) bool {
	if !m.cfg.StickyWildRespin {
		return false
	}
	if len(m.flow.Holds()) > 0 {
		// 上一轮重转被放弃，残留持留作废
		m.flow.SetHolds(nil)
	}
	holds := m.wildReels(w, nil)
	if len(holds) == 0 {
		return false
	}
	m.flow.SetHolds(holds)
	m.log.Info("wild持留重转", zap.Int("held_reels", len(holds)))
	return true
}

// HandleRespinOutcome 重转结算：非持留轴落下新wild则并入持留并授予再次重转，
// 已持留的轴不参与判定以免无限连锁；没有新wild时清空持留。
// 返回是否授予再次重转。
func (m *BonusStateMachine) HandleRespinOutcome(w Window) bool {
	held := m.flow.Holds()
	if !m.cfg.StickyWildRespin || len(held) == 0 {
		m.flow.SetHolds(nil)
		return false
	}
	extra := m.wildReels(w, held)
	if len(extra) == 0 {
		m.flow.SetHolds(nil)
		return false
	}
	for reel, col := range extra {
		held[reel] = col
	}
	m.flow.SetHolds(held)
	m.log.Info("重转连锁", zap.Int("new_reels", len(extra)), zap.Int("held_reels", len(held)))
	return true
}

// wildReels 收集含wild的轴及其整列符号，exclude中的轴跳过
func (m *BonusStateMachine) wildReels(w Window, exclude map[int][]string) map[int][]string {
	holds := make(map[int][]string)
	for reel := range w {
		if _, ok := exclude[reel]; ok {
			continue
		}
		for _, sym := range w[reel] {
			if sym == m.cfg.WildSymbol {
				holds[reel] = append([]string(nil), w[reel]...)
				break
			}
		}
	}
	return holds
}
