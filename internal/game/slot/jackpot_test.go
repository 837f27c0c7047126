package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/models"
)

func jackpotLedger(jp *models.Jackpot) *Ledger {
	led := testLedger(100, 50, 0, 0)
	led.jackpots = []*models.Jackpot{jp}
	return led
}

func TestJackpot_注水比例(t *testing.T) {
	jp := &models.Jackpot{Balance: 0, Percent: 2, StartBalance: 1000, PaySum: 0.6}
	led := jackpotLedger(jp)
	pool := NewJackpotPool(led, NewRandomGenerator(), zap.NewNop())

	// 注水基数取 min(购币余额50, 投注10) = 10
	hits, err := pool.Contribute(10)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 0.2, jp.Balance)
}

func TestJackpot_未达种子额不派彩(t *testing.T) {
	jp := &models.Jackpot{Balance: 500, Percent: 1, StartBalance: 1000, PaySum: 0.6}
	led := jackpotLedger(jp)
	// 全零随机源：抽签必中，但余额未达种子额
	pool := NewJackpotPool(led, &stubRand{ints: []int{0}}, zap.NewNop())

	hits, err := pool.Contribute(10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestJackpot_派彩与回种(t *testing.T) {
	jp := &models.Jackpot{Balance: 1000, Percent: 0, StartBalance: 800, PaySum: 0.6}
	led := jackpotLedger(jp)
	balanceBefore := led.user.Balance
	pool := NewJackpotPool(led, &stubRand{ints: []int{0}}, zap.NewNop())

	hits, err := pool.Contribute(10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	// 派彩600，余额400 ≥ 0.5×800 不回种
	assert.Equal(t, 600.0, hits[0].Amount)
	assert.Equal(t, 400.0, jp.Balance)
	assert.Equal(t, balanceBefore+600, led.user.Balance)
	assert.GreaterOrEqual(t, jp.Balance, 0.0)
}

func TestJackpot_派彩后过低回种(t *testing.T) {
	jp := &models.Jackpot{Balance: 1000, Percent: 0, StartBalance: 1000, PaySum: 0.6}
	led := jackpotLedger(jp)
	pool := NewJackpotPool(led, &stubRand{ints: []int{0}}, zap.NewNop())

	hits, err := pool.Contribute(10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	// 派彩600后余额400 < 0.5×1000，回种+1000
	assert.Equal(t, 1400.0, jp.Balance)
}

func TestJackpot_锁定玩家不派给他人(t *testing.T) {
	owner := uint(99)
	jp := &models.Jackpot{Balance: 1000, Percent: 0, StartBalance: 800, PaySum: 0.6, UserID: &owner}
	led := jackpotLedger(jp)
	led.user.ID = 7
	pool := NewJackpotPool(led, &stubRand{ints: []int{0}}, zap.NewNop())

	hits, err := pool.Contribute(10)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 1000.0, jp.Balance)
}
