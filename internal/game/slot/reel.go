package slot

// ReelWindow 按轮带生成可见盘面
type ReelWindow struct {
	cfg *GameConfig
	rng RandomGenerator
}

// NewReelWindow 创建盘面生成器
func NewReelWindow(cfg *GameConfig, rng RandomGenerator) *ReelWindow {
	return &ReelWindow{cfg: cfg, rng: rng}
}

func (r *ReelWindow) strips(event SlotEvent) [][]string {
	if (event == EventFreeSpin || event == EventBonus || event == EventRespin) && len(r.cfg.BonusReelStrips) == len(r.cfg.ReelStrips) {
		return r.cfg.BonusReelStrips
	}
	return r.cfg.ReelStrips
}

func (r *ReelWindow) column(strip []string, offset int) []string {
	col := make([]string, r.cfg.Rows)
	for row := 0; row < r.cfg.Rows; row++ {
		col[row] = strip[(offset+row)%len(strip)]
	}
	return col
}

// Spin 随机生成盘面，held中的轴保持持留符号不转动
func (r *ReelWindow) Spin(event SlotEvent, held map[int][]string) Window {
	strips := r.strips(event)
	w := make(Window, r.cfg.Reels)
	for reel := 0; reel < r.cfg.Reels; reel++ {
		if col, ok := held[reel]; ok {
			w[reel] = append([]string(nil), col...)
			continue
		}
		w[reel] = r.column(strips[reel], r.rng.Intn(len(strips[reel])))
	}
	return w
}

// scatterOffsets 轮带上能让scatter出现在窗口内的所有停轴位置
func (r *ReelWindow) scatterOffsets(strip []string) []int {
	seen := make(map[int]bool)
	var out []int
	for i, sym := range strip {
		if sym != r.cfg.ScatterSymbol {
			continue
		}
		for row := 0; row < r.cfg.Rows; row++ {
			off := ((i-row)%len(strip) + len(strip)) % len(strip)
			if !seen[off] {
				seen[off] = true
				out = append(out, off)
			}
		}
	}
	return out
}

// scatterReels 轮带含scatter且未被持留的轴
func (r *ReelWindow) scatterReels(strips [][]string, held map[int][]string) []int {
	var out []int
	for reel := 0; reel < r.cfg.Reels; reel++ {
		if _, ok := held[reel]; ok {
			continue
		}
		for _, sym := range strips[reel] {
			if sym == r.cfg.ScatterSymbol {
				out = append(out, reel)
				break
			}
		}
	}
	return out
}

// MaxScatterReels 能同时出scatter的最大轴数
func (r *ReelWindow) MaxScatterReels(event SlotEvent) int {
	return len(r.scatterReels(r.strips(event), nil))
}

// SpinWithScatters 生成至少在want个轴上带scatter的盘面
func (r *ReelWindow) SpinWithScatters(event SlotEvent, want int, held map[int][]string) Window {
	strips := r.strips(event)
	eligible := r.scatterReels(strips, held)
	if want > len(eligible) {
		want = len(eligible)
	}
	r.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	forced := make(map[int]bool, want)
	for _, reel := range eligible[:want] {
		forced[reel] = true
	}

	w := make(Window, r.cfg.Reels)
	for reel := 0; reel < r.cfg.Reels; reel++ {
		if col, ok := held[reel]; ok {
			w[reel] = append([]string(nil), col...)
			continue
		}
		if forced[reel] {
			offsets := r.scatterOffsets(strips[reel])
			w[reel] = r.column(strips[reel], offsets[r.rng.Intn(len(offsets))])
			continue
		}
		w[reel] = r.column(strips[reel], r.rng.Intn(len(strips[reel])))
	}
	return w
}
