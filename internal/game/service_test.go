package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/game/slot"
	"github.com/wfunc/rgs-engine/internal/models"
	"github.com/wfunc/rgs-engine/internal/repository"
	"github.com/wfunc/rgs-engine/internal/session"
)

type serviceFixture struct {
	db    *gorm.DB
	svc   *Service
	store session.Store
	user  *models.User
	game  *models.Game
}

// newServiceFixture 建立内存数据库与会话存储的完整服务
func newServiceFixture(t *testing.T, balance float64) *serviceFixture {
	t.Helper()
	db := repository.SetupTestDB()
	t.Cleanup(func() { repository.CleanupTestDB(db) })

	shop := &models.Shop{Name: "测试商户", Percent: 90}
	require.NoError(t, db.Create(shop).Error)

	user := &models.User{
		Username:     "player",
		ShopID:       shop.ID,
		Balance:      balance,
		CountBalance: balance,
		Denomination: 1,
		Status:       "active",
	}
	require.NoError(t, db.Create(user).Error)

	game := &models.Game{
		GameID:        "golden_pyramid",
		ShopID:        shop.ID,
		Bank:          100000,
		BankBonus:     10000,
		Denominations: "1",
	}
	require.NoError(t, db.Create(game).Error)

	store := session.NewMemoryStore()
	svc := NewService(db, store, time.Hour)
	return &serviceFixture{db: db, svc: svc, store: store, user: user, game: game}
}

func (f *serviceFixture) reloadUser(t *testing.T) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, f.db.First(&user, f.user.ID).Error)
	return &user
}

func (f *serviceFixture) reloadGame(t *testing.T) *models.Game {
	t.Helper()
	var game models.Game
	require.NoError(t, f.db.Where("game_id = ?", f.game.GameID).First(&game).Error)
	return &game
}

func TestSpin_余额不足拒绝且不落库(t *testing.T) {
	f := newServiceFixture(t, 5)

	_, err := f.svc.Spin(context.Background(), f.user.ID, &SpinRequest{
		GameID: "golden_pyramid", Bet: 1, Lines: 10, Event: "bet",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidBalance, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "invalid balance")

	user := f.reloadUser(t)
	assert.Equal(t, 5.0, user.Balance)
	game := f.reloadGame(t)
	assert.Equal(t, 0.0, game.StatIn)
}

func TestSpin_参数校验(t *testing.T) {
	f := newServiceFixture(t, 100)
	ctx := context.Background()

	_, err := f.svc.Spin(ctx, f.user.ID, &SpinRequest{GameID: "no_such_game", Bet: 1, Lines: 10, Event: "bet"})
	assert.Equal(t, apperrors.ErrNotFound, apperrors.GetCode(err))

	_, err = f.svc.Spin(ctx, f.user.ID, &SpinRequest{GameID: "golden_pyramid", Bet: 1, Lines: 10, Event: "split"})
	assert.Equal(t, apperrors.ErrInvalidEvent, apperrors.GetCode(err))

	_, err = f.svc.Spin(ctx, f.user.ID, &SpinRequest{GameID: "golden_pyramid", Bet: 1, Lines: 99, Event: "bet"})
	assert.Equal(t, apperrors.ErrInvalidLines, apperrors.GetCode(err))

	_, err = f.svc.Spin(ctx, f.user.ID, &SpinRequest{GameID: "golden_pyramid", Bet: -1, Lines: 10, Event: "bet"})
	assert.Equal(t, apperrors.ErrInvalidBet, apperrors.GetCode(err))
}

func TestSpin_冻结账户拒绝(t *testing.T) {
	f := newServiceFixture(t, 100)
	require.NoError(t, f.db.Model(f.user).Update("is_blocked", true).Error)

	_, err := f.svc.Spin(context.Background(), f.user.ID, &SpinRequest{
		GameID: "golden_pyramid", Bet: 1, Lines: 10, Event: "bet",
	})
	assert.Equal(t, apperrors.ErrUserBlocked, apperrors.GetCode(err))
}

func TestSpin_未触发时免费转轮被拒(t *testing.T) {
	f := newServiceFixture(t, 100)

	_, err := f.svc.Spin(context.Background(), f.user.ID, &SpinRequest{
		GameID: "golden_pyramid", Bet: 1, Lines: 10, Event: "freespin",
	})
	assert.Equal(t, apperrors.ErrBonusState, apperrors.GetCode(err))
}

func TestSpin_无持留时重转被拒(t *testing.T) {
	f := newServiceFixture(t, 100)

	_, err := f.svc.Spin(context.Background(), f.user.ID, &SpinRequest{
		GameID: "golden_pyramid", Bet: 1, Lines: 10, Event: "respin",
	})
	assert.Equal(t, apperrors.ErrBonusState, apperrors.GetCode(err))
}

func TestSpin_主游戏记账恒等式(t *testing.T) {
	f := newServiceFixture(t, 1000)

	// 关闭最低赢分下限，保证搜索在迭代上限内必然收敛
	cfg, ok := slot.GetGameConfig("golden_pyramid")
	require.True(t, ok)
	orig := cfg.IncreaseRTP
	cfg.IncreaseRTP = false
	t.Cleanup(func() { cfg.IncreaseRTP = orig })

	resp, err := f.svc.Spin(context.Background(), f.user.ID, &SpinRequest{
		GameID: "golden_pyramid", Bet: 1, Lines: 10, Event: "bet",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.TraceID)
	require.Len(t, resp.Window, 5)
	for _, col := range resp.Window {
		assert.Len(t, col, 3)
	}

	// balance_after = balance_before - bet + win
	assert.InDelta(t, 1000-10+resp.TotalWin, resp.Balance, 1e-9)

	user := f.reloadUser(t)
	assert.InDelta(t, resp.Balance, user.Balance, 1e-9)

	game := f.reloadGame(t)
	assert.Equal(t, 10.0, game.StatIn)
	assert.InDelta(t, resp.TotalWin, game.StatOut, 1e-9)

	// 审计记录已追加
	logs, err := f.svc.History(context.Background(), f.user.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, resp.TraceID, logs[0].TraceID)
	assert.Equal(t, "bet", logs[0].Event)
	assert.Equal(t, 10.0, logs[0].BetTotal)
}

func TestGamble_无待定赢分被拒(t *testing.T) {
	f := newServiceFixture(t, 100)

	_, err := f.svc.Gamble(context.Background(), f.user.ID, "golden_pyramid")
	assert.Equal(t, apperrors.ErrGambleRefused, apperrors.GetCode(err))
}

func TestState_返回余额与奖励计数(t *testing.T) {
	f := newServiceFixture(t, 250)

	state, err := f.svc.State(context.Background(), f.user.ID, "golden_pyramid")
	require.NoError(t, err)
	assert.Equal(t, 250.0, state.Balance)
	assert.Equal(t, 0, state.FreeGames)
	assert.Empty(t, state.Jackpots)
}

func TestSpin_扩展赢分并入结算结果(t *testing.T) {
	cfg, ok := slot.GetGameConfig("jungle_ways")
	require.True(t, ok)

	w := make(slot.Window, 5)
	for i := range w {
		w[i] = make([]string, 3)
	}
	w[0][0] = "JAGUAR"
	w[1][1] = "JAGUAR"

	res := slot.NewWinEvaluator(cfg).Evaluate(w, 1, 30, 1)
	require.Equal(t, 8.0, res.TotalWin)

	outcome := &slot.SearchOutcome{Window: w, Result: res, TotalWin: res.TotalWin, WinLimit: 1000}
	total := applyExpandingWins(cfg, outcome, 1, 30, 1)
	assert.Equal(t, 72.0, total)
	// 结算读取的是搜索结果，扩展部分必须同步进去
	assert.Equal(t, total, outcome.Result.TotalWin)
	require.Len(t, outcome.Result.Lines, 2)

	// 免费游戏累计的就是实际入账金额
	flow := slot.NewFlow(session.NewMemoryStore(), "jungle_ways", 9, time.Hour)
	bonus := slot.NewBonusStateMachine(cfg, flow, zap.NewNop())
	require.True(t, bonus.HandleBaseSpin(&slot.WinResult{ScatterCount: 3}))
	bonus.Settle(outcome.Result)
	assert.Equal(t, 72.0, bonus.BonusWin())

	// 追加后会突破已接受上限时整体放弃
	res2 := slot.NewWinEvaluator(cfg).Evaluate(w, 1, 30, 1)
	outcome2 := &slot.SearchOutcome{Window: w, Result: res2, TotalWin: res2.TotalWin, WinLimit: 20}
	assert.Equal(t, 8.0, applyExpandingWins(cfg, outcome2, 1, 30, 1))
	assert.Equal(t, 8.0, outcome2.Result.TotalWin)
	assert.Len(t, outcome2.Result.Lines, 1)
}

func TestSpin_流程状态提交后才落盘(t *testing.T) {
	f := newServiceFixture(t, 1000)
	key := fmt.Sprintf("%d:golden_pyramidRtpControlCount", f.user.ID)

	// 关闭最低赢分下限，保证搜索在迭代上限内必然收敛
	cfg, ok := slot.GetGameConfig("golden_pyramid")
	require.True(t, ok)
	orig := cfg.IncreaseRTP
	cfg.IncreaseRTP = false
	t.Cleanup(func() { cfg.IncreaseRTP = orig })

	// 被拒的请求不留任何会话痕迹
	_, err := f.svc.Spin(context.Background(), f.user.ID, &SpinRequest{
		GameID: "golden_pyramid", Event: "freespin", Bet: 1, Lines: 10,
	})
	require.Error(t, err)
	assert.False(t, f.store.Has(key))

	// 提交成功后观测窗口计数对共享存储可见
	_, err = f.svc.Spin(context.Background(), f.user.ID, &SpinRequest{
		GameID: "golden_pyramid", Event: "bet", Bet: 1, Lines: 10,
	})
	require.NoError(t, err)
	assert.True(t, f.store.Has(key))
}

func TestGamble_失效待定赢分立即清除(t *testing.T) {
	f := newServiceFixture(t, 10)

	// 直接在共享存储里留下超出余额的待定赢分
	flow := slot.NewFlow(f.store, "golden_pyramid", f.user.ID, time.Hour)
	flow.SetPendingGamble(500, 0)

	_, err := f.svc.Gamble(context.Background(), f.user.ID, "golden_pyramid")
	assert.Equal(t, apperrors.ErrGambleRefused, apperrors.GetCode(err))

	// 失效标记穿过缓冲落盘，重试不会再读到旧赢分
	pending, _ := flow.PendingGamble()
	assert.Zero(t, pending)
}
