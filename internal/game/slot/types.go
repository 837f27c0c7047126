package slot

import "fmt"

// SlotEvent 游戏事件类型
type SlotEvent string

const (
	EventBet      SlotEvent = "bet"      // 主游戏投注
	EventFreeSpin SlotEvent = "freespin" // 免费游戏
	EventBonus    SlotEvent = "bonus"    // 奖励游戏
	EventRespin   SlotEvent = "respin"   // 持留重转
	EventNudge    SlotEvent = "nudge"    // 推轴
	EventGamble   SlotEvent = "gamble"   // 比倍
)

// ValidEvent 事件是否合法
func ValidEvent(e SlotEvent) bool {
	switch e {
	case EventBet, EventFreeSpin, EventBonus, EventRespin, EventNudge, EventGamble:
		return true
	}
	return false
}

// WinType 结果类别
type WinType string

const (
	WinTypeNone  WinType = "none"
	WinTypeWin   WinType = "win"
	WinTypeBonus WinType = "bonus"
)

// BankState 银行状态
const (
	BankBase  = ""      // 主状态银行
	BankBonus = "bonus" // 免费游戏银行
)

// BankStateFor 事件对应的银行状态
func BankStateFor(event SlotEvent) string {
	switch event {
	case EventFreeSpin, EventBonus, EventRespin, EventNudge:
		return BankBonus
	}
	return BankBase
}

// Position 盘面位置
type Position struct {
	Reel int `json:"reel"`
	Row  int `json:"row"`
}

// Window 可见盘面，[轴][行]
type Window [][]string

// Symbol 读取盘面符号
func (w Window) Symbol(reel, row int) string {
	return w[reel][row]
}

// Clone 复制盘面
func (w Window) Clone() Window {
	out := make(Window, len(w))
	for i, col := range w {
		out[i] = append([]string(nil), col...)
	}
	return out
}

// LineWin 单条线/路的中奖明细
type LineWin struct {
	Line      int        `json:"line"`           // 线号（ways模式为-1）
	Symbol    string     `json:"symbol"`         // 中奖符号
	Count     int        `json:"count"`          // 连续个数
	Ways      int        `json:"ways,omitempty"` // ways组合数（线模式为0）
	Amount    float64    `json:"amount"`         // 赢分（信用点）
	Positions []Position `json:"positions"`
}

// WinResult 盘面评分结果
type WinResult struct {
	TotalWin         float64    `json:"total_win"`
	Lines            []LineWin  `json:"lines"`
	ScatterWin       float64    `json:"scatter_win"`
	ScatterCount     int        `json:"scatter_count"`
	ScatterPositions []Position `json:"scatter_positions,omitempty"`
}

// SpinContext 单次请求上下文，响应后即丢弃
type SpinContext struct {
	UserID     uint
	GameID     string
	BetPerLine float64
	Lines      int
	Event      SlotEvent
}

// BetTotal 总投注额（信用点）
func (c *SpinContext) BetTotal() float64 {
	return c.BetPerLine * float64(c.Lines)
}

// String 用于日志
func (c *SpinContext) String() string {
	return fmt.Sprintf("game=%s user=%d event=%s bet=%.2f lines=%d",
		c.GameID, c.UserID, c.Event, c.BetPerLine, c.Lines)
}

// SearchOutcome 搜索循环接受的最终结果
type SearchOutcome struct {
	Window     Window
	Result     *WinResult
	TotalWin   float64
	WinType    WinType
	WinLimit   float64 // 接受时生效的上限（可能已降级到银行余额）
	Iterations int
}
