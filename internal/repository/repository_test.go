package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/wfunc/rgs-engine/internal/models"
)

type RepositorySuite struct {
	suite.Suite
	db       *gorm.DB
	users    UserRepository
	games    GameRepository
	shops    ShopRepository
	jackpots JackpotRepository
	spinLogs SpinLogRepository
	ctx      context.Context
}

func (s *RepositorySuite) SetupTest() {
	s.db = SetupTestDB()
	s.users = NewUserRepository(s.db)
	s.games = NewGameRepository(s.db)
	s.shops = NewShopRepository(s.db)
	s.jackpots = NewJackpotRepository(s.db)
	s.spinLogs = NewSpinLogRepository(s.db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) TearDownTest() {
	CleanupTestDB(s.db)
}

func (s *RepositorySuite) TestUser_创建与查询() {
	user := &models.User{Username: "player1", Balance: 100, CountBalance: 100, Denomination: 1, Status: "active"}
	s.Require().NoError(s.users.Create(s.ctx, user))
	s.Require().NotZero(user.ID)

	found, err := s.users.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("player1", found.Username)
	s.Equal(100.0, found.Balance)

	byName, err := s.users.FindByUsername(s.ctx, "player1")
	s.Require().NoError(err)
	s.Equal(user.ID, byName.ID)

	_, err = s.users.FindByID(s.ctx, 9999)
	s.Error(err)
}

func (s *RepositorySuite) TestUser_锁定与保存余额() {
	user := &models.User{Username: "player2", Balance: 100, CountBalance: 80, Address: 20, Denomination: 1}
	s.Require().NoError(s.users.Create(s.ctx, user))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.users.LockForUpdate(tx, user.ID)
		s.Require().NoError(err)

		locked.Balance = 90
		locked.CountBalance = 70
		locked.Address = 15
		return s.users.SaveBalances(tx, locked)
	})
	s.Require().NoError(err)

	found, err := s.users.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(90.0, found.Balance)
	s.Equal(70.0, found.CountBalance)
	s.Equal(15.0, found.Address)
}

func (s *RepositorySuite) TestGame_银行读改写() {
	game := &models.Game{GameID: "golden_pyramid", ShopID: 1, Bank: 1000, BankBonus: 100}
	s.Require().NoError(s.games.Create(s.ctx, game))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.games.LockForUpdate(tx, "golden_pyramid")
		s.Require().NoError(err)

		locked.AddBank("", 10)
		locked.AddBank("bonus", 5)
		locked.StatIn += 10
		return s.games.SaveBanks(tx, locked)
	})
	s.Require().NoError(err)

	found, err := s.games.FindByGameID(s.ctx, "golden_pyramid")
	s.Require().NoError(err)
	s.Equal(1010.0, found.Bank)
	s.Equal(105.0, found.BankBonus)
	s.Equal(10.0, found.StatIn)

	_, err = s.games.FindByGameID(s.ctx, "missing")
	s.Error(err)
}

func (s *RepositorySuite) TestJackpot_按游戏锁定全部奖池() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.jackpots.Create(s.ctx, &models.Jackpot{
			ShopID: 1, GameID: "golden_pyramid", Balance: float64(i * 100), Percent: 1, StartBalance: 500,
		}))
	}
	s.Require().NoError(s.jackpots.Create(s.ctx, &models.Jackpot{
		ShopID: 1, GameID: "jungle_ways", Balance: 50, Percent: 1, StartBalance: 500,
	}))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.jackpots.LockForUpdate(tx, "golden_pyramid")
		s.Require().NoError(err)
		s.Require().Len(locked, 3)
		// 固定按ID升序，保证跨请求加锁顺序一致
		s.Less(locked[0].ID, locked[1].ID)
		s.Less(locked[1].ID, locked[2].ID)

		locked[0].Balance += 7
		return s.jackpots.SaveBalance(tx, locked[0])
	})
	s.Require().NoError(err)

	found, err := s.jackpots.FindByGameID(s.ctx, "golden_pyramid")
	s.Require().NoError(err)
	s.Equal(7.0, found[0].Balance)
}

func (s *RepositorySuite) TestSpinLog_追加与限量查询() {
	for i := 0; i < 30; i++ {
		s.Require().NoError(s.spinLogs.Append(s.ctx, &models.SpinLog{
			UserID: 1, GameID: "golden_pyramid", Event: "bet", BetTotal: 10, Win: float64(i),
		}))
	}

	logs, err := s.spinLogs.FindByUser(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Len(logs, 10)
	// 最新在前
	s.Equal(29.0, logs[0].Win)

	// 非法limit回退默认20
	logs, err = s.spinLogs.FindByUser(s.ctx, 1, -5)
	s.Require().NoError(err)
	s.Len(logs, 20)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}
