package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/errors"
)

func TestBonus_触发流程(t *testing.T) {
	cfg := goldenPyramid()
	m := NewBonusStateMachine(cfg, testFlow(), zap.NewNop())

	assert.Equal(t, BonusIdle, m.State())

	triggered := m.HandleBaseSpin(&WinResult{ScatterCount: 3, TotalWin: 40})
	require.True(t, triggered)
	assert.Equal(t, BonusTriggered, m.State())
	assert.Equal(t, cfg.FreeSpinTable[3], m.FreeGames())
	assert.Zero(t, m.CurrentFreeGame())
	assert.Zero(t, m.BonusWin())
}

func TestBonus_未达触发线不进入(t *testing.T) {
	cfg := goldenPyramid()
	m := NewBonusStateMachine(cfg, testFlow(), zap.NewNop())

	assert.False(t, m.HandleBaseSpin(&WinResult{ScatterCount: 2, TotalWin: 10}))
	assert.Equal(t, BonusIdle, m.State())
}

func TestBonus_空闲态拒绝免费游戏(t *testing.T) {
	m := NewBonusStateMachine(goldenPyramid(), testFlow(), zap.NewNop())

	err := m.Begin()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBonusState))
}

func TestBonus_逐局结算与复位(t *testing.T) {
	cfg := goldenPyramid()
	m := NewBonusStateMachine(cfg, testFlow(), zap.NewNop())
	require.True(t, m.HandleBaseSpin(&WinResult{ScatterCount: 3}))

	total := m.FreeGames()
	var win float64
	for i := 1; i <= total; i++ {
		require.NoError(t, m.Begin())
		done := m.Settle(&WinResult{TotalWin: 2})
		win += 2
		// 每局恰好推进1，且永不越界
		assert.LessOrEqual(t, m.CurrentFreeGame(), m.FreeGames())
		if i < total {
			assert.False(t, done)
			assert.Equal(t, i, m.CurrentFreeGame())
			assert.Equal(t, BonusInProgress, m.State())
		} else {
			assert.True(t, done)
		}
	}

	assert.Equal(t, BonusIdle, m.State())
	assert.Equal(t, win, m.BonusWin())
}

func TestBonus_再触发追加次数(t *testing.T) {
	cfg := goldenPyramid()
	m := NewBonusStateMachine(cfg, testFlow(), zap.NewNop())
	require.True(t, m.HandleBaseSpin(&WinResult{ScatterCount: 3}))
	base := m.FreeGames()

	require.NoError(t, m.Begin())
	done := m.Settle(&WinResult{TotalWin: 5, ScatterCount: 3})

	assert.False(t, done)
	assert.Equal(t, base+cfg.FreeSpinTable[3], m.FreeGames())
	assert.Equal(t, 1, m.CurrentFreeGame())
}

func TestBonus_Wild持留重转(t *testing.T) {
	cfg := goldenPyramid()
	m := NewBonusStateMachine(cfg, testFlow(), zap.NewNop())

	w := blankWindow(5, 3)
	w[1][2] = "WILD"
	w[3][0] = "WILD"

	require.True(t, m.HandleRespinTrigger(w))
	holds := m.Holds()
	require.Len(t, holds, 2)
	assert.Equal(t, w[1], holds[1])
	assert.Equal(t, w[3], holds[3])

	// 重转落出的窗口没有新wild，持留清空
	assert.False(t, m.HandleRespinOutcome(blankWindow(5, 3)))
	assert.Empty(t, m.Holds())
}

func TestBonus_重转连锁(t *testing.T) {
	cfg := goldenPyramid()
	m := NewBonusStateMachine(cfg, testFlow(), zap.NewNop())

	w := blankWindow(5, 3)
	w[1][2] = "WILD"
	require.True(t, m.HandleRespinTrigger(w))
	require.Len(t, m.Holds(), 1)

	// 重转时非持留轴落下新wild：并入持留并授予再次重转
	chain := blankWindow(5, 3)
	chain[1] = append([]string(nil), m.Holds()[1]...)
	chain[4][1] = "WILD"
	require.True(t, m.HandleRespinOutcome(chain))
	holds := m.Holds()
	require.Len(t, holds, 2)
	assert.Equal(t, chain[4], holds[4])

	// 仅持留轴上有wild不算新触发，连锁终止
	last := blankWindow(5, 3)
	last[1] = append([]string(nil), holds[1]...)
	last[4] = append([]string(nil), holds[4]...)
	assert.False(t, m.HandleRespinOutcome(last))
	assert.Empty(t, m.Holds())
}

func TestBonus_无Wild不授予重转(t *testing.T) {
	m := NewBonusStateMachine(goldenPyramid(), testFlow(), zap.NewNop())
	assert.False(t, m.HandleRespinTrigger(blankWindow(5, 3)))
	assert.Empty(t, m.Holds())
}
