package game

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wfunc/rgs-engine/internal/config"
	"github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/game/slot"
	"github.com/wfunc/rgs-engine/internal/logger"
	"github.com/wfunc/rgs-engine/internal/metrics"
	"github.com/wfunc/rgs-engine/internal/models"
	"github.com/wfunc/rgs-engine/internal/repository"
	"github.com/wfunc/rgs-engine/internal/session"
)

// Service 游戏服务，负责单次请求的编排：校验、结果选择、搜索、
// 落账与流程推进全部在一个数据库事务内完成，共享行持行锁。
type Service struct {
	base     *repository.BaseRepo
	users    repository.UserRepository
	games    repository.GameRepository
	shops    repository.ShopRepository
	jackpots repository.JackpotRepository
	spinLogs repository.SpinLogRepository

	sessions   session.Store
	sessionTTL time.Duration
	locks      *keyedLocks
	rng        slot.RandomGenerator
	log        *zap.Logger

	searchHardCap  int
	searchAbortAt  int
	defaultPercent float64
}

// NewService 创建游戏服务
func NewService(db *gorm.DB, store session.Store, sessionTTL time.Duration) *Service {
	hardCap, abortAt := slot.SearchHardCap, slot.SearchAbortAt
	percent := 90.0
	if c := config.Get(); c != nil {
		if c.Game.SearchHardCap > 0 {
			hardCap = c.Game.SearchHardCap
		}
		if c.Game.SearchAbortAt > 0 {
			abortAt = c.Game.SearchAbortAt
		}
		if c.Game.DefaultPercent > 0 {
			percent = c.Game.DefaultPercent
		}
	}
	return &Service{
		base:       repository.NewBaseRepo(db),
		users:      repository.NewUserRepository(db),
		games:      repository.NewGameRepository(db),
		shops:      repository.NewShopRepository(db),
		jackpots:   repository.NewJackpotRepository(db),
		spinLogs:   repository.NewSpinLogRepository(db),
		sessions:   store,
		sessionTTL: sessionTTL,
		locks:      newKeyedLocks(),
		rng:        slot.NewRandomGenerator(),
		log:        logger.GetModuleLogger("game"),

		searchHardCap:  hardCap,
		searchAbortAt:  abortAt,
		defaultPercent: percent,
	}
}

// SetRandomGenerator 替换随机数来源，测试用
func (s *Service) SetRandomGenerator(rng slot.RandomGenerator) {
	s.rng = rng
}

// SpinRequest 转轮请求
type SpinRequest struct {
	GameID string  `json:"game_id" binding:"required"`
	Bet    float64 `json:"bet" binding:"required,gt=0"` // 每线投注（信用点）
	Lines  int     `json:"lines" binding:"required,gt=0"`
	Event  string  `json:"event" binding:"required"`
}

// SpinResponse 转轮响应
type SpinResponse struct {
	TraceID    string             `json:"trace_id"`
	Window     [][]string         `json:"window"`
	WinType    string             `json:"win_type"`
	TotalWin   float64            `json:"total_win"`
	ScatterWin float64            `json:"scatter_win,omitempty"`
	WinLines   []slot.LineWin     `json:"win_lines,omitempty"`
	Balance    float64            `json:"balance"`
	FreeGames  int                `json:"free_games,omitempty"`
	FreePlayed int                `json:"free_played,omitempty"`
	BonusWin   float64            `json:"bonus_win,omitempty"`
	Respin     bool               `json:"respin,omitempty"`
	CanGamble  bool               `json:"can_gamble,omitempty"`
	Jackpots   []*slot.JackpotHit `json:"jackpots,omitempty"`
}

// Spin 处理一次转轮请求（bet/freespin/respin/nudge）
func (s *Service) Spin(ctx context.Context, userID uint, req *SpinRequest) (*SpinResponse, error) {
	cfg, ok := slot.GetGameConfig(req.GameID)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "游戏不存在: %s", req.GameID)
	}
	event := slot.SlotEvent(req.Event)
	if !slot.ValidEvent(event) || event == slot.EventGamble {
		return nil, errors.Newf(errors.ErrInvalidEvent, "事件不支持: %s", req.Event)
	}
	if req.Bet <= 0 {
		return nil, errors.New(errors.ErrInvalidBet)
	}
	if !cfg.ValidLines(req.Lines) {
		return nil, errors.Newf(errors.ErrInvalidLines, "选线数非法: %d", req.Lines)
	}

	unlock := s.locks.Lock(lockKey(userID, req.GameID))
	defer unlock()

	// 流程状态写入先进缓冲，事务提交后才落到会话存储，
	// 回滚时计数与持留不被推进
	buf := session.NewBuffered(s.sessions)
	flow := slot.NewFlow(buf, req.GameID, userID, s.sessionTTL)
	bonus := slot.NewBonusStateMachine(cfg, flow, s.log)
	spinCtx := &slot.SpinContext{
		UserID:     userID,
		GameID:     req.GameID,
		BetPerLine: req.Bet,
		Lines:      req.Lines,
		Event:      event,
	}

	var resp *SpinResponse
	err := s.base.Transaction(ctx, func(tx *gorm.DB) error {
		user, err := s.users.LockForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if !user.CanPlay() {
			return errors.New(errors.ErrUserBlocked)
		}
		game, err := s.games.LockForUpdate(tx, req.GameID)
		if err != nil {
			return err
		}
		if !validDenomination(game.Denominations, user.Denomination) {
			return errors.Newf(errors.ErrInvalidDenomination, "面额不支持: %v", user.Denomination)
		}
		shop, err := s.shops.FindByID(ctx, game.ShopID)
		if err != nil {
			return err
		}
		if shop.IsBlocked {
			return errors.New(errors.ErrShopBlocked)
		}
		if shop.Percent <= 0 {
			shop.Percent = s.defaultPercent
		}
		jackpots, err := s.jackpots.LockForUpdate(tx, req.GameID)
		if err != nil {
			return err
		}

		led := slot.NewLedger(user, game, shop, jackpots, cfg.BonusCarvePercent, s.log)

		switch event {
		case slot.EventBet:
			if led.GetBalance() < spinCtx.BetTotal() {
				return errors.New(errors.ErrInvalidBalance)
			}
		case slot.EventFreeSpin, slot.EventBonus:
			if err := bonus.Begin(); err != nil {
				return err
			}
		case slot.EventRespin, slot.EventNudge:
			if len(bonus.Holds()) == 0 {
				return errors.New(errors.ErrBonusState, "没有可用的持留重转")
			}
		}

		decision := slot.NewOutcomeSelector(cfg, s.rng, flow, s.log).SelectOutcome(led, spinCtx)

		bonusMpl := 1.0
		if slot.BankStateFor(event) == slot.BankBonus && cfg.BonusMultiplier > 0 {
			bonusMpl = cfg.BonusMultiplier
		}
		var holds map[int][]string
		if event == slot.EventRespin || event == slot.EventNudge {
			holds = bonus.Holds()
		}

		outcome, err := slot.NewOutcomeSearch(cfg, s.rng, s.log).Run(led, &slot.SearchParams{
			Ctx:      spinCtx,
			WinType:  decision.WinType,
			WinLimit: decision.WinLimit,
			MaxWin:   decision.MaxWin,
			BonusMpl: bonusMpl,
			Holds:    holds,
			HardCap:  s.searchHardCap,
			AbortAt:  s.searchAbortAt,
		})
		if err != nil {
			logger.LogInternal(err, led.Snapshot())
			return err
		}

		total := outcome.TotalWin
		winLines := outcome.Result.Lines

		// 免费游戏中的整轴扩展符号，额外赢分不得突破已接受的上限
		if (event == slot.EventFreeSpin || event == slot.EventBonus) && len(cfg.ExpandingSymbols) > 0 {
			total = applyExpandingWins(cfg, outcome, req.Bet, req.Lines, bonusMpl)
			winLines = outcome.Result.Lines
		}

		payState := slot.BankStateFor(event)
		if outcome.WinType == slot.WinTypeBonus {
			payState = slot.BankBonus
		}

		var jackpotHits []*slot.JackpotHit
		if event == slot.EventBet {
			if err := led.SetBalance(-spinCtx.BetTotal(), event); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			if err := led.SetBank(slot.BankBase, spinCtx.BetTotal(), event); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			led.AddStats(spinCtx.BetTotal(), 0)
			metrics.BetAmount.WithLabelValues(req.GameID).Add(spinCtx.BetTotal())

			jackpotHits, err = slot.NewJackpotPool(led, s.rng, s.log).Contribute(spinCtx.BetTotal())
			if err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
		}

		if total > 0 {
			if err := led.SetBank(payState, -total, event); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			if err := led.SetBalance(total, event); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			led.AddStats(0, total)
			metrics.WinAmount.WithLabelValues(req.GameID).Add(total)
		}

		// 流程推进
		respin := false
		canGamble := false
		switch event {
		case slot.EventBet:
			triggered := bonus.HandleBaseSpin(outcome.Result)
			if !triggered {
				respin = bonus.HandleRespinTrigger(outcome.Window)
			}
			if total > 0 && !triggered {
				flow.SetPendingGamble(total, 0)
				canGamble = cfg.WinGamble > 1
			} else {
				flow.SetPendingGamble(0, 0)
			}
		case slot.EventFreeSpin, slot.EventBonus:
			bonus.Settle(outcome.Result)
		case slot.EventRespin, slot.EventNudge:
			respin = bonus.HandleRespinOutcome(outcome.Window)
		}

		if err := s.users.SaveBalances(tx, user); err != nil {
			return err
		}
		if err := s.games.SaveBanks(tx, game); err != nil {
			return err
		}
		for _, jp := range jackpots {
			if err := s.jackpots.SaveBalance(tx, jp); err != nil {
				return err
			}
		}

		resp = &SpinResponse{
			TraceID:    uuid.NewString(),
			Window:     outcome.Window,
			WinType:    string(outcome.WinType),
			TotalWin:   total,
			ScatterWin: outcome.Result.ScatterWin,
			WinLines:   winLines,
			Balance:    led.GetBalance(),
			FreeGames:  bonus.FreeGames(),
			FreePlayed: bonus.CurrentFreeGame(),
			BonusWin:   bonus.BonusWin(),
			Respin:     respin,
			CanGamble:  canGamble,
			Jackpots:   jackpotHits,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf.Flush()

	metrics.SpinsTotal.WithLabelValues(req.GameID, string(event), resp.WinType).Inc()
	logger.LogSpin(req.GameID, userID, string(event), spinCtx.BetTotal(), resp.TotalWin, req.Lines)
	s.appendAudit(ctx, userID, resp.TraceID, req, resp)
	return resp, nil
}

// GambleResponse 比倍响应
type GambleResponse struct {
	TraceID     string  `json:"trace_id"`
	Won         bool    `json:"won"`
	Refused     bool    `json:"refused,omitempty"`
	Win         float64 `json:"win"`
	Steps       int     `json:"steps"`
	CanContinue bool    `json:"can_continue"`
	Balance     float64 `json:"balance"`
}

// Gamble 对最近一次主游戏赢分执行一步比倍
func (s *Service) Gamble(ctx context.Context, userID uint, gameID string) (*GambleResponse, error) {
	cfg, ok := slot.GetGameConfig(gameID)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "游戏不存在: %s", gameID)
	}

	unlock := s.locks.Lock(lockKey(userID, gameID))
	defer unlock()

	buf := session.NewBuffered(s.sessions)
	flow := slot.NewFlow(buf, gameID, userID, s.sessionTTL)
	pending, steps := flow.PendingGamble()

	var resp *GambleResponse
	err := s.base.Transaction(ctx, func(tx *gorm.DB) error {
		user, err := s.users.LockForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if !user.CanPlay() {
			return errors.New(errors.ErrUserBlocked)
		}
		game, err := s.games.LockForUpdate(tx, gameID)
		if err != nil {
			return err
		}
		shop, err := s.shops.FindByID(ctx, game.ShopID)
		if err != nil {
			return err
		}

		led := slot.NewLedger(user, game, shop, nil, cfg.BonusCarvePercent, s.log)
		if pending > led.GetBalance() {
			// 赢分已被后续投注消耗，失效标记立即落盘
			flow.SetPendingGamble(0, 0)
			buf.Flush()
			return errors.New(errors.ErrGambleRefused, "待比倍赢分已不可用")
		}

		res, err := slot.NewGambleRound(cfg, s.rng, s.log).Resolve(led, pending, steps)
		if err != nil {
			return err
		}

		if res.Won {
			gain := slot.FormatFloat(res.Win - pending)
			if err := led.SetBank(slot.BankBonus, -gain, slot.EventGamble); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			if err := led.SetBalance(gain, slot.EventGamble); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			led.AddStats(0, gain)
			if res.CanContinue {
				flow.SetPendingGamble(res.Win, res.Steps)
			} else {
				flow.SetPendingGamble(0, 0)
			}
		} else {
			// 输掉或被拒：待定赢分退回免费游戏银行
			if err := led.SetBalance(-pending, slot.EventGamble); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			if err := led.SetBank(slot.BankBonus, pending, slot.EventGamble); err != nil {
				logger.LogInternal(err, led.Snapshot())
				return err
			}
			led.AddStats(0, -pending)
			flow.SetPendingGamble(0, res.Steps)
		}

		if err := s.users.SaveBalances(tx, user); err != nil {
			return err
		}
		if err := s.games.SaveBanks(tx, game); err != nil {
			return err
		}

		resp = &GambleResponse{
			TraceID:     uuid.NewString(),
			Won:         res.Won,
			Refused:     res.Refused,
			Win:         res.Win,
			Steps:       res.Steps,
			CanContinue: res.Won && res.CanContinue,
			Balance:     led.GetBalance(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf.Flush()

	metrics.SpinsTotal.WithLabelValues(gameID, string(slot.EventGamble), gambleWinType(resp.Won)).Inc()
	s.appendAudit(ctx, userID, resp.TraceID, map[string]interface{}{"game_id": gameID, "event": "gamble"}, resp)
	return resp, nil
}

func gambleWinType(won bool) string {
	if won {
		return string(slot.WinTypeWin)
	}
	return string(slot.WinTypeNone)
}

// JackpotState 奖池快照
type JackpotState struct {
	JackpotID uint    `json:"jackpot_id"`
	Balance   float64 `json:"balance"`
	Percent   float64 `json:"percent"`
}

// StateResponse 会话状态快照
type StateResponse struct {
	GameID        string         `json:"game_id"`
	Balance       float64        `json:"balance"`
	Denomination  float64        `json:"denomination"`
	BonusState    string         `json:"bonus_state"`
	FreeGames     int            `json:"free_games"`
	FreePlayed    int            `json:"free_played"`
	BonusWin      float64        `json:"bonus_win"`
	PendingGamble float64        `json:"pending_gamble"`
	GambleSteps   int            `json:"gamble_steps"`
	Jackpots      []JackpotState `json:"jackpots,omitempty"`
}

// State 查询玩家在指定游戏内的会话状态，只读
func (s *Service) State(ctx context.Context, userID uint, gameID string) (*StateResponse, error) {
	cfg, ok := slot.GetGameConfig(gameID)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "游戏不存在: %s", gameID)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.games.FindByGameID(ctx, gameID); err != nil {
		return nil, err
	}
	jackpots, err := s.jackpots.FindByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	flow := slot.NewFlow(s.sessions, gameID, userID, s.sessionTTL)
	bonus := slot.NewBonusStateMachine(cfg, flow, s.log)
	pending, steps := flow.PendingGamble()

	resp := &StateResponse{
		GameID:        gameID,
		Balance:       slot.FormatFloat(user.Balance / user.Denomination),
		Denomination:  user.Denomination,
		BonusState:    string(bonus.State()),
		FreeGames:     bonus.FreeGames(),
		FreePlayed:    bonus.CurrentFreeGame(),
		BonusWin:      bonus.BonusWin(),
		PendingGamble: pending,
		GambleSteps:   steps,
	}
	for _, jp := range jackpots {
		resp.Jackpots = append(resp.Jackpots, JackpotState{
			JackpotID: jp.ID,
			Balance:   jp.Balance,
			Percent:   jp.Percent,
		})
	}
	return resp, nil
}

// History 查询玩家最近的转轮审计记录
func (s *Service) History(ctx context.Context, userID uint, limit int) ([]*models.SpinLog, error) {
	return s.spinLogs.FindByUser(ctx, userID, limit)
}

// appendAudit 事务提交后追加审计日志，失败只记日志不影响响应
func (s *Service) appendAudit(ctx context.Context, userID uint, traceID string, req, resp interface{}) {
	reqRaw, _ := json.Marshal(req)
	respRaw, _ := json.Marshal(resp)

	entry := &models.SpinLog{
		TraceID:  traceID,
		UserID:   userID,
		Request:  string(reqRaw),
		Response: string(respRaw),
	}
	if r, ok := req.(*SpinRequest); ok {
		entry.GameID = r.GameID
		entry.Event = r.Event
		entry.BetTotal = r.Bet * float64(r.Lines)
		entry.Lines = r.Lines
	}
	if r, ok := resp.(*SpinResponse); ok {
		entry.Win = r.TotalWin
	}
	if m, ok := req.(map[string]interface{}); ok {
		if gid, ok := m["game_id"].(string); ok {
			entry.GameID = gid
		}
	}
	if r, ok := resp.(*GambleResponse); ok {
		entry.Event = string(slot.EventGamble)
		entry.Win = r.Win
	}
	if err := s.spinLogs.Append(ctx, entry); err != nil {
		s.log.Error("审计日志写入失败", zap.Error(err), zap.String("trace_id", traceID))
	}
}

// applyExpandingWins 把整轴扩展符号的额外赢分并入搜索结果并返回新总赢分。
// 结果自身被更新，后续的免费游戏结算据此累计实际入账金额；
// 额外赢分会突破已接受上限时整体放弃。
func applyExpandingWins(cfg *slot.GameConfig, outcome *slot.SearchOutcome, betPerLine float64, lines int, bonusMpl float64) float64 {
	extra := slot.NewWinEvaluator(cfg).EvaluateExpanded(outcome.Window, betPerLine, lines, bonusMpl)
	if extra.TotalWin <= 0 || outcome.TotalWin+extra.TotalWin > outcome.WinLimit {
		return outcome.TotalWin
	}
	outcome.Result.Lines = append(outcome.Result.Lines, extra.Lines...)
	outcome.Result.TotalWin = slot.FormatFloat(outcome.Result.TotalWin + extra.TotalWin)
	outcome.TotalWin = outcome.Result.TotalWin
	return outcome.TotalWin
}

// validDenomination 玩家面值必须在游戏支持的面值列表内
func validDenomination(denominations string, denom float64) bool {
	if denom <= 0 {
		return false
	}
	for _, part := range strings.Split(denominations, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			continue
		}
		if v == denom {
			return true
		}
	}
	return false
}
