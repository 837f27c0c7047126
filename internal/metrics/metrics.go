package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 引擎指标（按游戏/事件维度）
var (
	// SpinsTotal 转轮总数
	SpinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rgs_spins_total",
		Help: "Total number of spins processed",
	}, []string{"game_id", "event", "win_type"})

	// SearchIterations 结果搜索迭代次数分布
	SearchIterations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rgs_outcome_search_iterations",
		Help:    "Iterations spent in the outcome search loop",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 1500, 2000},
	}, []string{"game_id", "win_type"})

	// SearchExhausted 搜索耗尽次数
	SearchExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rgs_outcome_search_exhausted_total",
		Help: "Outcome searches that hit the iteration cap",
	}, []string{"game_id"})

	// LedgerFailures 账本负值保护触发次数
	LedgerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rgs_ledger_failures_total",
		Help: "Negative-ledger guard violations",
	}, []string{"game_id", "kind"})

	// BetAmount 投注额
	BetAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rgs_bet_amount_total",
		Help: "Total wagered amount in credits",
	}, []string{"game_id"})

	// WinAmount 派彩额
	WinAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rgs_win_amount_total",
		Help: "Total paid-out amount in credits",
	}, []string{"game_id"})
)
