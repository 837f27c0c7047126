package slot

// WinEvaluator 盘面评分器。线模式按左起连续计分，ways模式按各轴命中数乘积计分，
// scatter全盘计数。所有赢分以信用点计。
type WinEvaluator struct {
	cfg *GameConfig
}

// NewWinEvaluator 创建评分器
func NewWinEvaluator(cfg *GameConfig) *WinEvaluator {
	return &WinEvaluator{cfg: cfg}
}

// Evaluate 对盘面评分。lines为本次投注的选线数，bonusMpl为免费游戏倍数（主游戏传1）
func (e *WinEvaluator) Evaluate(w Window, betPerLine float64, lines int, bonusMpl float64) *WinResult {
	var res *WinResult
	if e.cfg.WaysMode {
		res = e.evaluateWays(w, betPerLine, bonusMpl)
	} else {
		res = e.evaluateLines(w, betPerLine, lines, bonusMpl)
	}
	e.evaluateScatter(w, res, betPerLine, lines, bonusMpl)
	return res
}

// EvaluateExpanded 免费游戏中扩展符号整轴铺满后再评分，返回额外赢分明细
func (e *WinEvaluator) EvaluateExpanded(w Window, betPerLine float64, lines int, bonusMpl float64) *WinResult {
	extra := &WinResult{}
	for _, sym := range e.cfg.ExpandingSymbols {
		expanded := w.Clone()
		found := false
		for reel := range expanded {
			hit := false
			for _, s := range expanded[reel] {
				if s == sym {
					hit = true
					break
				}
			}
			if hit {
				found = true
				for row := range expanded[reel] {
					expanded[reel][row] = sym
				}
			}
		}
		if !found {
			continue
		}
		base := e.Evaluate(w, betPerLine, lines, bonusMpl)
		full := e.Evaluate(expanded, betPerLine, lines, bonusMpl)
		gain := full.TotalWin - base.TotalWin
		if gain > 0 {
			extra.TotalWin += gain
			extra.Lines = append(extra.Lines, LineWin{
				Line:   -1,
				Symbol: sym,
				Amount: gain,
			})
		}
	}
	return extra
}

func (e *WinEvaluator) evaluateLines(w Window, betPerLine float64, lines int, bonusMpl float64) *WinResult {
	res := &WinResult{}
	if lines > len(e.cfg.Lines) {
		lines = len(e.cfg.Lines)
	}
	// 每条线只取赢分最高的符号组合
	for line := 0; line < lines; line++ {
		rows := e.cfg.Lines[line]
		var best LineWin
		for _, sym := range e.cfg.Symbols {
			count := 0
			wilds := 0
			var positions []Position
			for reel := 0; reel < e.cfg.Reels; reel++ {
				cell := w[reel][rows[reel]]
				if cell != sym && cell != e.cfg.WildSymbol {
					break
				}
				if cell == e.cfg.WildSymbol {
					wilds++
				}
				positions = append(positions, Position{Reel: reel, Row: rows[reel]})
				count++
			}
			if count == 0 {
				continue
			}
			if longest := e.cfg.LongestMatch(sym); count > longest {
				count = longest
				positions = positions[:count]
			}
			pay := e.cfg.PayFor(sym, count)
			if pay <= 0 {
				continue
			}
			mpl := 1.0
			if wilds > 0 && sym != e.cfg.WildSymbol {
				if wilds == count {
					// 纯wild组合只按wild自身的赔率计分
					continue
				}
				mpl = e.cfg.WildMultiplier
			}
			amount := pay * betPerLine * mpl * bonusMpl
			if amount > best.Amount {
				best = LineWin{
					Line:      line + 1,
					Symbol:    sym,
					Count:     count,
					Amount:    amount,
					Positions: positions,
				}
			}
		}
		if best.Amount > 0 {
			res.Lines = append(res.Lines, best)
			res.TotalWin += best.Amount
		}
	}
	return res
}

func (e *WinEvaluator) evaluateWays(w Window, betPerLine float64, bonusMpl float64) *WinResult {
	res := &WinResult{}
	for _, sym := range e.cfg.Symbols {
		if sym == e.cfg.WildSymbol {
			continue
		}
		longest := e.cfg.LongestMatch(sym)
		length := 0
		ways := 1
		var positions []Position
		for reel := 0; reel < e.cfg.Reels && reel < longest; reel++ {
			hits := 0
			for row := 0; row < e.cfg.Rows; row++ {
				cell := w[reel][row]
				if cell == sym || cell == e.cfg.WildSymbol {
					hits++
					positions = append(positions, Position{Reel: reel, Row: row})
				}
			}
			if hits == 0 {
				break
			}
			ways *= hits
			length++
		}
		if length == 0 {
			continue
		}
		pay := e.cfg.PayFor(sym, length)
		if pay <= 0 {
			continue
		}
		amount := pay * betPerLine * float64(ways) * bonusMpl
		res.Lines = append(res.Lines, LineWin{
			Line:      -1,
			Symbol:    sym,
			Count:     length,
			Ways:      ways,
			Amount:    amount,
			Positions: positions,
		})
		res.TotalWin += amount
	}
	return res
}

// evaluateScatter scatter不受线路限制，赔付乘以选线数
func (e *WinEvaluator) evaluateScatter(w Window, res *WinResult, betPerLine float64, lines int, bonusMpl float64) {
	if _, ok := e.cfg.Paytable[e.cfg.ScatterSymbol]; !ok {
		return
	}
	count := 0
	var positions []Position
	for reel := range w {
		for row := range w[reel] {
			if w[reel][row] == e.cfg.ScatterSymbol {
				count++
				positions = append(positions, Position{Reel: reel, Row: row})
			}
		}
	}
	res.ScatterCount = count
	res.ScatterPositions = positions
	if pay := e.cfg.PayFor(e.cfg.ScatterSymbol, count); pay > 0 {
		res.ScatterWin = pay * betPerLine * float64(lines) * bonusMpl
		res.TotalWin += res.ScatterWin
	}
}
