package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/rgs-engine/internal/session"
)

func TestFlow_键名布局(t *testing.T) {
	store := session.NewMemoryStore()
	flow := NewFlow(store, "golden_pyramid", 7, 0)

	flow.SetInt(fieldFreeGames, 10)

	// 键为"<玩家>:<游戏ID><字段名>"
	assert.True(t, store.Has("7:golden_pyramidFreeGames"))
	assert.Equal(t, 10, flow.Int(fieldFreeGames, 0))
}

func TestFlow_缺省值(t *testing.T) {
	flow := testFlow()
	assert.Equal(t, 100, flow.Int(fieldRtpControlCount, 100))
	assert.Zero(t, flow.Float(fieldSpinWinLimit, 0))
	assert.Nil(t, flow.Holds())
}

func TestFlow_持留轴读写(t *testing.T) {
	flow := testFlow()
	holds := map[int][]string{1: {"WILD", "NINE", "KING"}, 3: {"TEN", "WILD", "ACE"}}

	flow.SetHolds(holds)
	assert.Equal(t, holds, flow.Holds())

	flow.SetHolds(nil)
	assert.Nil(t, flow.Holds())
}

func TestFlow_过期视为新会话(t *testing.T) {
	store := session.NewMemoryStore()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	flow := NewFlow(store, "golden_pyramid", 7, time.Hour)
	flow.SetInt(fieldFreeGames, 15)
	flow.SetFloat(fieldBonusWin, 42.5)
	require.Equal(t, 15, flow.Int(fieldFreeGames, 0))

	now = now.Add(2 * time.Hour)
	assert.Zero(t, flow.Int(fieldFreeGames, 0))
	assert.Zero(t, flow.Float(fieldBonusWin, 0))
}

func TestFlow_比倍状态读写(t *testing.T) {
	flow := testFlow()

	win, steps := flow.PendingGamble()
	assert.Zero(t, win)
	assert.Zero(t, steps)

	flow.SetPendingGamble(24, 2)
	win, steps = flow.PendingGamble()
	assert.Equal(t, 24.0, win)
	assert.Equal(t, 2, steps)
}
