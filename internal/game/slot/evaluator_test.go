package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blankWindow 全部填充不计分符号的盘面
func blankWindow(reels, rows int) Window {
	w := make(Window, reels)
	for i := range w {
		w[i] = make([]string, rows)
		for j := range w[i] {
			w[i][j] = "BLANK"
		}
	}
	return w
}

func TestEvaluateLines_基础三连(t *testing.T) {
	cfg := &GameConfig{
		GameID: "test",
		Reels:  5,
		Rows:   3,
		Lines: [][]int{
			{0, 0, 0, 0, 0},
			{1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}, {1, 1, 1, 1, 1},
			{1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}, {1, 1, 1, 1, 1},
			{1, 1, 1, 1, 1}, {1, 1, 1, 1, 1}, {1, 1, 1, 1, 1},
		},
		Symbols:       []string{"SYM_0"},
		WildSymbol:    "WILD",
		ScatterSymbol: "SCATTER",
		Paytable: map[string][]float64{
			"SYM_0": {0, 0, 10, 100, 1000, 5000},
		},
	}
	w := blankWindow(5, 3)
	w[0][0], w[1][0], w[2][0] = "SYM_0", "SYM_0", "SYM_0"

	res := NewWinEvaluator(cfg).Evaluate(w, 1, 10, 1)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, 1, res.Lines[0].Line)
	assert.Equal(t, "SYM_0", res.Lines[0].Symbol)
	assert.Equal(t, 3, res.Lines[0].Count)
	assert.Equal(t, 10.0, res.Lines[0].Amount)
	assert.Equal(t, 10.0, res.TotalWin)
}

func TestEvaluateLines_Wild替换带倍数(t *testing.T) {
	cfg := goldenPyramid()
	w := blankWindow(5, 3)
	// 线2为顶行
	w[0][0], w[1][0], w[2][0] = "KING", "WILD", "KING"

	res := NewWinEvaluator(cfg).Evaluate(w, 1, 2, 1)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "KING", res.Lines[0].Symbol)
	assert.Equal(t, 3, res.Lines[0].Count)
	// KING三连15 × wild倍数2
	assert.Equal(t, 30.0, res.Lines[0].Amount)
}

func TestEvaluateLines_纯Wild按Wild自身赔率(t *testing.T) {
	cfg := goldenPyramid()
	w := blankWindow(5, 3)
	w[0][0], w[1][0], w[2][0] = "WILD", "WILD", "WILD"

	res := NewWinEvaluator(cfg).Evaluate(w, 1, 2, 1)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "WILD", res.Lines[0].Symbol)
	// 纯wild不按被替换符号计分，取wild三连赔率250
	assert.Equal(t, 250.0, res.Lines[0].Amount)
}

func TestEvaluateLines_同线取最高(t *testing.T) {
	cfg := goldenPyramid()
	w := blankWindow(5, 3)
	// WILD,PHARAOH,PHARAOH: PHARAOH三连10×2=20，WILD单独不计分
	w[0][0], w[1][0], w[2][0] = "WILD", "PHARAOH", "PHARAOH"

	res := NewWinEvaluator(cfg).Evaluate(w, 1, 2, 1)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "PHARAOH", res.Lines[0].Symbol)
	assert.Equal(t, 20.0, res.Lines[0].Amount)
}

func TestEvaluateWays_乘积计数(t *testing.T) {
	cfg := jungleWays()
	w := blankWindow(5, 3)
	w[0][0] = "MASK"
	w[1][0] = "MASK"
	w[1][1] = "WILD"
	w[2][0] = "MASK"

	res := NewWinEvaluator(cfg).Evaluate(w, 1, 30, 1)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "MASK", res.Lines[0].Symbol)
	assert.Equal(t, 3, res.Lines[0].Count)
	// 各轴命中数 1×2×1 = 2路，三连赔率40
	assert.Equal(t, 2, res.Lines[0].Ways)
	assert.Equal(t, 80.0, res.Lines[0].Amount)
	assert.Equal(t, 80.0, res.TotalWin)
}

func TestEvaluateScatter_全盘计数乘选线数(t *testing.T) {
	cfg := goldenPyramid()
	w := blankWindow(5, 3)
	w[0][2], w[2][2], w[4][2] = "SCATTER", "SCATTER", "SCATTER"

	res := NewWinEvaluator(cfg).Evaluate(w, 1, 10, 1)

	assert.Equal(t, 3, res.ScatterCount)
	// scatter三连5 × 每线投注1 × 10线
	assert.Equal(t, 50.0, res.ScatterWin)
	assert.Equal(t, 50.0, res.TotalWin)

	// 免费游戏倍数同样作用于scatter
	res = NewWinEvaluator(cfg).Evaluate(w, 1, 10, 2)
	assert.Equal(t, 100.0, res.ScatterWin)
}

func TestEvaluateExpanded_整轴扩展追加赢分(t *testing.T) {
	cfg := jungleWays()
	w := blankWindow(5, 3)
	w[0][0] = "JAGUAR"
	w[1][1] = "JAGUAR"

	eval := NewWinEvaluator(cfg)
	base := eval.Evaluate(w, 1, 30, 1)
	// 基础：1×1路二连，赔率8
	assert.Equal(t, 8.0, base.TotalWin)

	extra := eval.EvaluateExpanded(w, 1, 30, 1)
	// 扩展后两轴铺满：3×3=9路二连72，追加72-8=64
	assert.Equal(t, 64.0, extra.TotalWin)
	require.Len(t, extra.Lines, 1)
	assert.Equal(t, "JAGUAR", extra.Lines[0].Symbol)
}

func TestEvaluate_无命中(t *testing.T) {
	cfg := goldenPyramid()
	res := NewWinEvaluator(cfg).Evaluate(blankWindow(5, 3), 1, 10, 1)
	assert.Zero(t, res.TotalWin)
	assert.Empty(t, res.Lines)
	assert.Zero(t, res.ScatterCount)
}
