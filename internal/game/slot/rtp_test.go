package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSelectOutcome_观测窗口启用强制小奖(t *testing.T) {
	cfg := goldenPyramid()
	cfg.RTPControlWindow = 1 // 每次调用都到达窗口末尾
	flow := testFlow()
	led := testLedger(1000, 1000, 500, 0)
	led.game.StatIn = 1000
	led.game.StatOut = 100 // 实际返还率10%，远低于目标90%

	rng := &stubRand{ints: []int{0}}
	sel := NewOutcomeSelector(cfg, rng, flow, zap.NewNop())
	ctx := &SpinContext{GameID: "golden_pyramid", BetPerLine: 1, Lines: 10, Event: EventBet}

	decision := sel.SelectOutcome(led, ctx)

	// 强制小奖标记已写入，倍数取下界25
	assert.Equal(t, 25.0, flow.Float(fieldSpinWinLimit, 0))
	// 单局上限被钳制为 25×总投注
	assert.Equal(t, 250.0, decision.MaxWin)
	require.NotEqual(t, WinTypeBonus, decision.WinType) // 免费银行为0，闸门不放行
}

// recordingRand 记录每次Intn的上界，抽签本身永不命中
type recordingRand struct {
	bounds []int
}

func (r *recordingRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	return n - 1
}

func (r *recordingRand) Shuffle(n int, swap func(i, j int)) {}

func TestSelectOutcome_强制小奖期提高中奖频率(t *testing.T) {
	cfg := goldenPyramid()
	ctx := &SpinContext{GameID: "golden_pyramid", BetPerLine: 1, Lines: 10, Event: EventBet}

	draw := func(armed bool) []int {
		flow := testFlow()
		flow.SetInt(fieldRtpControlCount, 50) // 观测窗口未到末尾
		if armed {
			flow.SetFloat(fieldSpinWinLimit, 25)
		}
		led := testLedger(1000, 1000, 500, 10000)
		led.game.StatIn = 1000
		led.game.StatOut = 100 // 返还率10%，强制标记保持
		rng := &recordingRand{}
		NewOutcomeSelector(cfg, rng, flow, zap.NewNop()).SelectOutcome(led, ctx)
		return rng.bounds
	}

	normal := draw(false)
	forced := draw(true)
	require.Len(t, normal, 2)
	require.Len(t, forced, 2)
	// 强制小奖期抽签分母必须变小：小奖更频繁才能把返还率拉回目标
	assert.Less(t, forced[0], normal[0])
	assert.Less(t, forced[1], normal[1])
}

func TestSelectOutcome_返还率恢复解除强制(t *testing.T) {
	cfg := goldenPyramid()
	flow := testFlow()
	flow.SetFloat(fieldSpinWinLimit, 30)
	flow.SetInt(fieldRtpControlCount, 50)
	led := testLedger(1000, 1000, 500, 0)
	led.game.StatIn = 1000
	led.game.StatOut = 895 // 89.5% ≥ 90-1

	sel := NewOutcomeSelector(cfg, &stubRand{ints: []int{5}}, flow, zap.NewNop())
	ctx := &SpinContext{GameID: "golden_pyramid", BetPerLine: 1, Lines: 10, Event: EventBet}

	sel.SelectOutcome(led, ctx)

	assert.Zero(t, flow.Float(fieldSpinWinLimit, 0))
	assert.Equal(t, cfg.RTPControlWindow, flow.Int(fieldRtpControlCount, 0))
}

func TestSelectOutcome_免费游戏一致性闸门(t *testing.T) {
	cfg := goldenPyramid()
	flow := testFlow()
	led := testLedger(1000, 1000, 500, 10000)
	led.game.StatIn = 1000000
	led.game.StatOut = 100

	// 全零随机源：bonus与win抽签都命中
	sel := NewOutcomeSelector(cfg, &stubRand{ints: []int{0}}, flow, zap.NewNop())
	ctx := &SpinContext{GameID: "golden_pyramid", BetPerLine: 1, Lines: 10, Event: EventBet}

	decision := sel.SelectOutcome(led, ctx)
	// 免费银行充足且累计投注远高于派彩，放行bonus
	assert.Equal(t, WinTypeBonus, decision.WinType)
	assert.Equal(t, led.GetBank(BankBonus), decision.WinLimit)

	// 免费银行清零后同样的抽签退回win
	led2 := testLedger(1000, 1000, 500, 0)
	led2.game.StatIn = 1000000
	led2.game.StatOut = 100
	flow2 := testFlow()
	sel2 := NewOutcomeSelector(cfg, &stubRand{ints: []int{0}}, flow2, zap.NewNop())
	decision2 := sel2.SelectOutcome(led2, ctx)
	assert.Equal(t, WinTypeWin, decision2.WinType)
}

func TestSelectOutcome_保底出奖(t *testing.T) {
	cfg := goldenPyramid()
	cfg.RTPControlWindow = 0
	flow := testFlow()
	led := testLedger(2, 2, 500, 0) // 余额仅2个信用点

	// 抽签全不中（返回大值），保底掷骰命中
	rng := &stubRand{ints: []int{5, 5, 0}}
	sel := NewOutcomeSelector(cfg, rng, flow, zap.NewNop())
	ctx := &SpinContext{GameID: "golden_pyramid", BetPerLine: 1, Lines: 1, Event: EventBet}

	decision := sel.SelectOutcome(led, ctx)
	assert.Equal(t, WinTypeWin, decision.WinType)
}

func TestChances_按选线与返还率分档(t *testing.T) {
	cfg := goldenPyramid()

	bonus, spin := cfg.Chances(10, false, 90)
	assert.Equal(t, 250, bonus)
	assert.Equal(t, 7, spin)

	bonus, spin = cfg.Chances(2, false, 5)
	assert.Equal(t, 1000, bonus)
	assert.Equal(t, 40, spin)

	bonus, spin = cfg.Chances(10, true, 25)
	assert.Equal(t, 650, bonus)
	assert.Equal(t, 4, spin)
}
