package slot

import (
	"sync"

	"github.com/wfunc/rgs-engine/internal/errors"
)

// WinChanceBracket 单个返还率区间的中奖概率，概率为1/N
type WinChanceBracket struct {
	MaxPercent float64 // 区间上限（百分比，含）
	Bonus      int     // 免费游戏触发概率 1/Bonus
	Spin       int     // 普通中奖概率 1/Spin
}

// WinChanceField 按选线数分档的概率表
type WinChanceField struct {
	MaxLines  int                // 本档适用的最大选线数（含）
	Base      []WinChanceBracket // 主游戏
	BonusGame []WinChanceBracket // 免费游戏中
}

// GameConfig 单个游戏的数学配置
type GameConfig struct {
	GameID string
	Name   string

	Reels int
	Rows  int

	// 线模式：Lines为各线在每轴上的行号；ways模式下Lines为空
	Lines    [][]int
	WaysMode bool
	WaysBet  int // ways模式下固定的投注线数

	Symbols       []string
	WildSymbol    string
	ScatterSymbol string

	// Paytable 符号 → 按连续个数索引的赔率表，索引即个数
	Paytable map[string][]float64

	ReelStrips      [][]string
	BonusReelStrips [][]string // 免费游戏轮带，为空时沿用主轮带

	HasBonus         bool
	ScatterTrigger   int      // 触发免费游戏所需scatter数
	FreeSpinTable    []int    // 索引为scatter数，值为免费次数
	BonusMultiplier  float64  // 免费游戏赢分倍数
	WildMultiplier   float64  // 含wild连线的额外倍数
	ExpandingSymbols []string // 免费游戏中整轴扩展的符号

	StickyWildRespin bool // 主游戏落wild后持留重转

	BonusCarvePercent float64 // 银行份额中划入免费游戏银行的比例

	IncreaseRTP      bool // 中奖时抬高最小赢分
	RTPControlWindow int  // 返还率观测窗口（次）
	ForcedWinFloor   int  // 强制小奖倍数下限
	ForcedWinCeil    int  // 强制小奖倍数上限

	WinGamble      int // 比倍胜率 1/WinGamble
	MaxGambleSteps int

	WinChances []WinChanceField
}

// Validate 校验配置完整性，启动时调用
func (c *GameConfig) Validate() error {
	if c.GameID == "" || c.Reels <= 0 || c.Rows <= 0 {
		return errors.Newf(errors.ErrGameConfig, "游戏%s基础参数不完整", c.GameID)
	}
	if len(c.ReelStrips) != c.Reels {
		return errors.Newf(errors.ErrGameConfig, "游戏%s轮带数量与轴数不符", c.GameID)
	}
	for i, strip := range c.ReelStrips {
		if len(strip) < c.Rows {
			return errors.Newf(errors.ErrGameConfig, "游戏%s第%d轴轮带过短", c.GameID, i+1)
		}
	}
	if c.WaysMode {
		if c.WaysBet <= 0 {
			return errors.Newf(errors.ErrGameConfig, "游戏%s缺少ways投注线数", c.GameID)
		}
	} else if len(c.Lines) == 0 {
		return errors.Newf(errors.ErrGameConfig, "游戏%s缺少线路定义", c.GameID)
	}
	for _, sym := range c.Symbols {
		if _, ok := c.Paytable[sym]; !ok {
			return errors.Newf(errors.ErrGameConfig, "游戏%s符号%s缺少赔率", c.GameID, sym)
		}
	}
	if c.HasBonus {
		if c.ScatterTrigger <= 0 || len(c.FreeSpinTable) <= c.ScatterTrigger {
			return errors.Newf(errors.ErrGameConfig, "游戏%s免费游戏配置不完整", c.GameID)
		}
	}
	if len(c.WinChances) == 0 {
		return errors.Newf(errors.ErrGameConfig, "游戏%s缺少概率表", c.GameID)
	}
	if c.WinGamble <= 1 {
		return errors.Newf(errors.ErrGameConfig, "游戏%s比倍胜率非法", c.GameID)
	}
	return nil
}

// MaxLines 可选的最大线数
func (c *GameConfig) MaxLines() int {
	if c.WaysMode {
		return c.WaysBet
	}
	return len(c.Lines)
}

// ValidLines 选线数是否合法
func (c *GameConfig) ValidLines(lines int) bool {
	if c.WaysMode {
		return lines == c.WaysBet
	}
	return lines >= 1 && lines <= len(c.Lines)
}

// Chances 按选线数、游戏阶段与当前返还率取中奖概率
func (c *GameConfig) Chances(lines int, bonusGame bool, percent float64) (bonus, spin int) {
	field := c.WinChances[len(c.WinChances)-1]
	for _, f := range c.WinChances {
		if lines <= f.MaxLines {
			field = f
			break
		}
	}
	brackets := field.Base
	if bonusGame {
		brackets = field.BonusGame
	}
	last := brackets[len(brackets)-1]
	for _, b := range brackets {
		if percent <= b.MaxPercent {
			return b.Bonus, b.Spin
		}
	}
	return last.Bonus, last.Spin
}

// CheckBonusWin 各符号最小非零赔率的平均值，用作免费游戏理论平均赢分
func (c *GameConfig) CheckBonusWin() float64 {
	var sum float64
	var n int
	for _, sym := range c.Symbols {
		pays := c.Paytable[sym]
		for _, p := range pays {
			if p > 0 {
				sum += p
				n++
				break
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// NonZeroPays 赔率表中所有非零赔率，用于抽取最低赢分
func (c *GameConfig) NonZeroPays() []float64 {
	var out []float64
	for _, sym := range c.Symbols {
		for _, p := range c.Paytable[sym] {
			if p > 0 {
				out = append(out, p)
			}
		}
	}
	return out
}

// LongestMatch 符号赔率表的最长计分长度。
// 赔率表按连续个数索引，pays[n-1]为n连的赔率。
func (c *GameConfig) LongestMatch(symbol string) int {
	pays, ok := c.Paytable[symbol]
	if !ok {
		return 0
	}
	return len(pays)
}

// PayFor n连的赔率，越界按最长计分长度取值
func (c *GameConfig) PayFor(symbol string, count int) float64 {
	pays, ok := c.Paytable[symbol]
	if !ok || count <= 0 {
		return 0
	}
	if count > len(pays) {
		count = len(pays)
	}
	return pays[count-1]
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*GameConfig)
)

// Register 注册游戏配置，重复注册直接覆盖
func Register(cfg *GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[cfg.GameID] = cfg
	return nil
}

// GetGameConfig 按游戏ID取配置
func GetGameConfig(gameID string) (*GameConfig, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cfg, ok := registry[gameID]
	return cfg, ok
}

// RegisteredGames 所有已注册的游戏ID
func RegisteredGames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	return out
}
