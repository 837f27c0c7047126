package slot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/wfunc/rgs-engine/internal/session"
)

// 会话中持久化的流程字段名，键为"<用户ID>:<游戏ID><字段名>"
const (
	fieldRtpControlCount = "RtpControlCount"
	fieldSpinWinLimit    = "SpinWinLimit"
	fieldFreeGames       = "FreeGames"
	fieldCurrentFreeGame = "CurrentFreeGame"
	fieldBonusWin        = "BonusWin"
	fieldTotalWin        = "TotalWin"
	fieldFreeStartWin    = "FreeStartWin"
	fieldGambleWin       = "GambleWin"
	fieldGambleSteps     = "GambleSteps"
	fieldReelHolds       = "ReelHolds"
)

// Flow 单个玩家在单个游戏内跨请求的流程状态，底层为带TTL的会话存储。
// 字段过期后按零值处理，视为新会话。
type Flow struct {
	store  session.Store
	prefix string
	ttl    time.Duration
}

// NewFlow 创建流程状态访问器
func NewFlow(store session.Store, gameID string, userID uint, ttl time.Duration) *Flow {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Flow{
		store:  store,
		prefix: fmt.Sprintf("%d:%s", userID, gameID),
		ttl:    ttl,
	}
}

func (f *Flow) key(field string) string {
	return f.prefix + field
}

func (f *Flow) get(field string) (string, bool) {
	entry, ok := f.store.Get(f.key(field))
	if !ok {
		return "", false
	}
	return entry.Payload, true
}

func (f *Flow) set(field, payload string) {
	f.store.Set(f.key(field), payload, f.ttl)
}

// Int 读整数字段，缺省返回def
func (f *Flow) Int(field string, def int) int {
	raw, ok := f.get(field)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// SetInt 写整数字段并刷新TTL
func (f *Flow) SetInt(field string, v int) {
	f.set(field, strconv.Itoa(v))
}

// Float 读浮点字段，缺省返回def
func (f *Flow) Float(field string, def float64) float64 {
	raw, ok := f.get(field)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// SetFloat 写浮点字段并刷新TTL
func (f *Flow) SetFloat(field string, v float64) {
	f.set(field, strconv.FormatFloat(v, 'f', -1, 64))
}

// PendingGamble 待比倍赢分与已用步数
func (f *Flow) PendingGamble() (win float64, steps int) {
	return f.Float(fieldGambleWin, 0), f.Int(fieldGambleSteps, 0)
}

// SetPendingGamble 写待比倍赢分与步数
func (f *Flow) SetPendingGamble(win float64, steps int) {
	f.SetFloat(fieldGambleWin, win)
	f.SetInt(fieldGambleSteps, steps)
}

// Holds 读持留轴，键为轴号
func (f *Flow) Holds() map[int][]string {
	raw, ok := f.get(fieldReelHolds)
	if !ok || raw == "" {
		return nil
	}
	var holds map[int][]string
	if err := json.Unmarshal([]byte(raw), &holds); err != nil {
		return nil
	}
	if len(holds) == 0 {
		return nil
	}
	return holds
}

// SetHolds 写持留轴，传nil清空
func (f *Flow) SetHolds(holds map[int][]string) {
	if len(holds) == 0 {
		f.set(fieldReelHolds, "")
		return
	}
	raw, err := json.Marshal(holds)
	if err != nil {
		return
	}
	f.set(fieldReelHolds, string(raw))
}
