package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/errors"
)

func TestGamble_零赢分拒绝(t *testing.T) {
	g := NewGambleRound(goldenPyramid(), NewRandomGenerator(), zap.NewNop())
	led := testLedger(100, 100, 0, 1000)

	_, err := g.Resolve(led, 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrGambleRefused))
}

func TestGamble_步数用尽拒绝(t *testing.T) {
	cfg := goldenPyramid()
	g := NewGambleRound(cfg, NewRandomGenerator(), zap.NewNop())
	led := testLedger(100, 100, 0, 1000)

	_, err := g.Resolve(led, 10, cfg.MaxGambleSteps)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrGambleRefused))
}

func TestGamble_免费银行不足按输处理(t *testing.T) {
	g := NewGambleRound(goldenPyramid(), NewRandomGenerator(), zap.NewNop())
	led := testLedger(100, 100, 0, 10) // 免费银行10，翻倍需12

	res, err := g.Resolve(led, 6, 0)
	require.NoError(t, err)
	assert.True(t, res.Refused)
	assert.Zero(t, res.Win)
}

func TestGamble_超出最大赢分按输处理(t *testing.T) {
	led := testLedger(100, 100, 0, 1000)
	led.game.MaxWin = 10

	g := NewGambleRound(goldenPyramid(), NewRandomGenerator(), zap.NewNop())
	res, err := g.Resolve(led, 6, 0) // 翻倍12 > 上限10
	require.NoError(t, err)
	assert.True(t, res.Refused)
}

func TestGamble_猜中翻倍(t *testing.T) {
	led := testLedger(100, 100, 0, 1000)
	g := NewGambleRound(goldenPyramid(), &stubRand{ints: []int{0}}, zap.NewNop())

	res, err := g.Resolve(led, 6, 0)
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 12.0, res.Win)
	assert.Equal(t, 1, res.Steps)
	assert.True(t, res.CanContinue)
}

func TestGamble_猜错清零(t *testing.T) {
	led := testLedger(100, 100, 0, 1000)
	g := NewGambleRound(goldenPyramid(), &stubRand{ints: []int{1}}, zap.NewNop())

	res, err := g.Resolve(led, 6, 0)
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.Zero(t, res.Win)
}

func TestGamble_长期期望为公平(t *testing.T) {
	cfg := goldenPyramid() // 胜率1/2，赢则翻倍
	led := testLedger(100, 100, 0, 1e12)
	g := NewGambleRound(cfg, NewRandomGenerator(), zap.NewNop())

	const trials = 50000
	const pending = 10.0
	var paid float64
	for i := 0; i < trials; i++ {
		res, err := g.Resolve(led, pending, 0)
		require.NoError(t, err)
		paid += res.Win
	}

	// 平均派彩/投入 → 1
	ratio := paid / (pending * trials)
	assert.InDelta(t, 1.0, ratio, 0.05)
}
