package slot

import (
	"go.uber.org/zap"

	"github.com/wfunc/rgs-engine/internal/models"
	"github.com/wfunc/rgs-engine/internal/session"
)

// stubRand 固定返回序列的随机源，序列耗尽后循环
type stubRand struct {
	ints []int
	pos  int
}

func (s *stubRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.pos%len(s.ints)]
	s.pos++
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *stubRand) Shuffle(n int, swap func(i, j int)) {}

func testLedger(balance, countBalance, bank, bankBonus float64) *Ledger {
	user := &models.User{
		Balance:      balance,
		CountBalance: countBalance,
		Denomination: 1,
	}
	game := &models.Game{
		GameID:    "golden_pyramid",
		Bank:      bank,
		BankBonus: bankBonus,
	}
	shop := &models.Shop{Percent: 90}
	return NewLedger(user, game, shop, nil, 5, zap.NewNop())
}

func testFlow() *Flow {
	return NewFlow(session.NewMemoryStore(), "golden_pyramid", 7, 0)
}
