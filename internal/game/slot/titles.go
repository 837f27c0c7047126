package slot

// 内置两款游戏：金字塔（10线）与丛林之路（243路）。
// 轮带与赔率表离线调校，RTPControlWindow等运行参数与后台保持一致。

func init() {
	for _, cfg := range []*GameConfig{goldenPyramid(), jungleWays()} {
		if err := Register(cfg); err != nil {
			panic(err)
		}
	}
}

// goldenPyramid 5x3十线游戏，带wild倍数、scatter免费游戏与持留重转
func goldenPyramid() *GameConfig {
	return &GameConfig{
		GameID: "golden_pyramid",
		Name:   "Golden Pyramid",
		Reels:  5,
		Rows:   3,
		Lines: [][]int{
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
			{2, 2, 2, 2, 2},
			{0, 1, 2, 1, 0},
			{2, 1, 0, 1, 2},
			{0, 0, 1, 2, 2},
			{2, 2, 1, 0, 0},
			{1, 0, 0, 0, 1},
			{1, 2, 2, 2, 1},
			{0, 1, 1, 1, 0},
		},
		Symbols: []string{
			"NINE", "TEN", "JACK", "QUEEN", "KING", "ACE",
			"ANKH", "SPHINX", "PHARAOH", "WILD",
		},
		WildSymbol:    "WILD",
		ScatterSymbol: "SCATTER",
		Paytable: map[string][]float64{
			"NINE":    {0, 0, 5, 25, 100},
			"TEN":     {0, 0, 5, 25, 100},
			"JACK":    {0, 0, 10, 50, 125},
			"QUEEN":   {0, 0, 10, 50, 125},
			"KING":    {0, 0, 15, 75, 150},
			"ACE":     {0, 0, 15, 75, 150},
			"ANKH":    {0, 5, 30, 100, 750},
			"SPHINX":  {0, 5, 40, 400, 1250},
			"PHARAOH": {0, 0, 10, 100, 1000},
			"WILD":    {0, 10, 250, 2500, 9000},
			"SCATTER": {0, 2, 5, 20, 100},
		},
		ReelStrips: [][]string{
			{"PHARAOH", "NINE", "KING", "TEN", "JACK", "ANKH", "QUEEN", "NINE", "SPHINX", "TEN", "ACE", "JACK", "SCATTER", "KING", "NINE", "QUEEN", "ANKH", "TEN", "JACK", "WILD", "NINE", "KING", "QUEEN", "TEN", "SPHINX", "ACE", "JACK", "NINE", "ANKH", "TEN", "QUEEN", "KING"},
			{"NINE", "ANKH", "TEN", "KING", "JACK", "QUEEN", "PHARAOH", "NINE", "TEN", "SPHINX", "ACE", "JACK", "KING", "SCATTER", "QUEEN", "NINE", "TEN", "ANKH", "JACK", "KING", "WILD", "QUEEN", "NINE", "TEN", "ACE", "SPHINX", "JACK", "KING", "NINE", "QUEEN", "TEN", "ANKH"},
			{"TEN", "QUEEN", "NINE", "ANKH", "JACK", "KING", "SPHINX", "TEN", "NINE", "ACE", "PHARAOH", "QUEEN", "JACK", "TEN", "SCATTER", "NINE", "KING", "ANKH", "QUEEN", "JACK", "WILD", "TEN", "NINE", "SPHINX", "KING", "ACE", "QUEEN", "JACK", "ANKH", "NINE", "TEN", "KING"},
			{"JACK", "NINE", "ANKH", "QUEEN", "TEN", "KING", "PHARAOH", "NINE", "SPHINX", "JACK", "ACE", "TEN", "QUEEN", "SCATTER", "KING", "NINE", "ANKH", "JACK", "TEN", "WILD", "QUEEN", "NINE", "KING", "SPHINX", "TEN", "ACE", "JACK", "ANKH", "NINE", "QUEEN", "TEN", "KING"},
			{"QUEEN", "TEN", "NINE", "JACK", "ANKH", "KING", "SPHINX", "NINE", "TEN", "PHARAOH", "ACE", "QUEEN", "JACK", "SCATTER", "NINE", "KING", "TEN", "ANKH", "QUEEN", "JACK", "NINE", "TEN", "SPHINX", "KING", "ACE", "JACK", "QUEEN", "ANKH", "NINE", "TEN", "KING", "JACK"},
		},
		BonusReelStrips: [][]string{
			{"PHARAOH", "NINE", "KING", "ANKH", "JACK", "SPHINX", "QUEEN", "NINE", "TEN", "ACE", "SCATTER", "JACK", "KING", "ANKH", "NINE", "QUEEN", "WILD", "TEN", "SPHINX", "JACK", "KING", "NINE", "ANKH", "QUEEN", "TEN", "ACE", "JACK", "PHARAOH", "NINE", "KING", "QUEEN", "TEN"},
			{"ANKH", "NINE", "KING", "SPHINX", "JACK", "QUEEN", "PHARAOH", "TEN", "NINE", "ACE", "JACK", "SCATTER", "KING", "QUEEN", "WILD", "NINE", "TEN", "ANKH", "JACK", "SPHINX", "KING", "QUEEN", "NINE", "TEN", "ACE", "JACK", "PHARAOH", "ANKH", "NINE", "QUEEN", "TEN", "KING"},
			{"SPHINX", "TEN", "NINE", "ANKH", "JACK", "KING", "PHARAOH", "QUEEN", "NINE", "ACE", "TEN", "SCATTER", "JACK", "KING", "WILD", "NINE", "QUEEN", "ANKH", "TEN", "SPHINX", "JACK", "KING", "NINE", "QUEEN", "ACE", "TEN", "PHARAOH", "ANKH", "JACK", "NINE", "QUEEN", "KING"},
			{"PHARAOH", "JACK", "NINE", "ANKH", "QUEEN", "KING", "SPHINX", "TEN", "NINE", "ACE", "JACK", "SCATTER", "QUEEN", "KING", "WILD", "NINE", "TEN", "ANKH", "JACK", "SPHINX", "QUEEN", "KING", "NINE", "TEN", "ACE", "JACK", "PHARAOH", "ANKH", "NINE", "QUEEN", "TEN", "KING"},
			{"SPHINX", "QUEEN", "NINE", "ANKH", "TEN", "KING", "PHARAOH", "JACK", "NINE", "ACE", "QUEEN", "SCATTER", "TEN", "KING", "NINE", "JACK", "ANKH", "QUEEN", "SPHINX", "TEN", "KING", "NINE", "JACK", "ACE", "QUEEN", "TEN", "PHARAOH", "ANKH", "NINE", "KING", "JACK", "TEN"},
		},
		HasBonus:          true,
		ScatterTrigger:    3,
		FreeSpinTable:     []int{0, 0, 0, 10, 15, 20},
		BonusMultiplier:   2,
		WildMultiplier:    2,
		StickyWildRespin:  true,
		BonusCarvePercent: 5,
		IncreaseRTP:       true,
		RTPControlWindow:  100,
		ForcedWinFloor:    25,
		ForcedWinCeil:     50,
		WinGamble:         2,
		MaxGambleSteps:    5,
		WinChances: []WinChanceField{
			{
				MaxLines: 3,
				Base: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 1000, Spin: 40},
					{MaxPercent: 20, Bonus: 800, Spin: 30},
					{MaxPercent: 30, Bonus: 650, Spin: 22},
					{MaxPercent: 1000, Bonus: 500, Spin: 15},
				},
				BonusGame: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 2000, Spin: 12},
					{MaxPercent: 20, Bonus: 1600, Spin: 9},
					{MaxPercent: 30, Bonus: 1300, Spin: 7},
					{MaxPercent: 1000, Bonus: 1000, Spin: 5},
				},
			},
			{
				MaxLines: 7,
				Base: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 700, Spin: 25},
					{MaxPercent: 20, Bonus: 560, Spin: 18},
					{MaxPercent: 30, Bonus: 450, Spin: 13},
					{MaxPercent: 1000, Bonus: 350, Spin: 9},
				},
				BonusGame: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 1400, Spin: 8},
					{MaxPercent: 20, Bonus: 1100, Spin: 6},
					{MaxPercent: 30, Bonus: 900, Spin: 5},
					{MaxPercent: 1000, Bonus: 700, Spin: 4},
				},
			},
			{
				MaxLines: 10,
				Base: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 500, Spin: 18},
					{MaxPercent: 20, Bonus: 400, Spin: 13},
					{MaxPercent: 30, Bonus: 320, Spin: 10},
					{MaxPercent: 1000, Bonus: 250, Spin: 7},
				},
				BonusGame: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 1000, Spin: 6},
					{MaxPercent: 20, Bonus: 800, Spin: 5},
					{MaxPercent: 30, Bonus: 650, Spin: 4},
					{MaxPercent: 1000, Bonus: 500, Spin: 3},
				},
			},
		},
	}
}

// jungleWays 5x3共243路游戏，免费游戏中JAGUAR整轴扩展
func jungleWays() *GameConfig {
	return &GameConfig{
		GameID:   "jungle_ways",
		Name:     "Jungle Ways",
		Reels:    5,
		Rows:     3,
		WaysMode: true,
		WaysBet:  30,
		Symbols: []string{
			"NINE", "TEN", "JACK", "QUEEN", "KING", "ACE",
			"ORCHID", "TOUCAN", "MASK", "JAGUAR",
		},
		WildSymbol:    "WILD",
		ScatterSymbol: "SCATTER",
		Paytable: map[string][]float64{
			"NINE":    {0, 0, 4, 15, 60},
			"TEN":     {0, 0, 4, 15, 60},
			"JACK":    {0, 0, 6, 20, 80},
			"QUEEN":   {0, 0, 6, 20, 80},
			"KING":    {0, 0, 8, 30, 100},
			"ACE":     {0, 0, 8, 30, 100},
			"ORCHID":  {0, 3, 20, 75, 300},
			"TOUCAN":  {0, 4, 25, 100, 400},
			"MASK":    {0, 5, 40, 200, 800},
			"JAGUAR":  {0, 8, 60, 400, 2000},
			"WILD":    {0, 0, 0, 0, 0},
			"SCATTER": {0, 1, 3, 15, 75},
		},
		ReelStrips: [][]string{
			{"JAGUAR", "NINE", "KING", "ORCHID", "JACK", "TOUCAN", "QUEEN", "NINE", "MASK", "TEN", "ACE", "JACK", "SCATTER", "KING", "NINE", "QUEEN", "ORCHID", "TEN", "JACK", "TOUCAN", "NINE", "KING", "QUEEN", "TEN", "MASK", "ACE", "JACK", "NINE", "ORCHID", "TEN", "QUEEN", "KING"},
			{"NINE", "ORCHID", "TEN", "KING", "JACK", "QUEEN", "JAGUAR", "NINE", "TEN", "MASK", "ACE", "JACK", "KING", "SCATTER", "QUEEN", "NINE", "TEN", "TOUCAN", "JACK", "KING", "WILD", "QUEEN", "NINE", "TEN", "ACE", "MASK", "JACK", "KING", "NINE", "QUEEN", "TEN", "ORCHID"},
			{"TEN", "QUEEN", "NINE", "ORCHID", "JACK", "KING", "MASK", "TEN", "NINE", "ACE", "JAGUAR", "QUEEN", "JACK", "TEN", "SCATTER", "NINE", "KING", "TOUCAN", "QUEEN", "JACK", "WILD", "TEN", "NINE", "MASK", "KING", "ACE", "QUEEN", "JACK", "ORCHID", "NINE", "TEN", "KING"},
			{"JACK", "NINE", "TOUCAN", "QUEEN", "TEN", "KING", "JAGUAR", "NINE", "MASK", "JACK", "ACE", "TEN", "QUEEN", "SCATTER", "KING", "NINE", "ORCHID", "JACK", "TEN", "WILD", "QUEEN", "NINE", "KING", "MASK", "TEN", "ACE", "JACK", "TOUCAN", "NINE", "QUEEN", "TEN", "KING"},
			{"QUEEN", "TEN", "NINE", "JACK", "ORCHID", "KING", "MASK", "NINE", "TEN", "JAGUAR", "ACE", "QUEEN", "JACK", "SCATTER", "NINE", "KING", "TEN", "TOUCAN", "QUEEN", "JACK", "WILD", "TEN", "NINE", "MASK", "KING", "ACE", "JACK", "QUEEN", "ORCHID", "NINE", "TEN", "KING"},
		},
		HasBonus:          true,
		ScatterTrigger:    3,
		FreeSpinTable:     []int{0, 0, 0, 8, 12, 20},
		BonusMultiplier:   1,
		WildMultiplier:    1,
		ExpandingSymbols:  []string{"JAGUAR"},
		BonusCarvePercent: 5,
		IncreaseRTP:       true,
		RTPControlWindow:  100,
		ForcedWinFloor:    25,
		ForcedWinCeil:     50,
		WinGamble:         2,
		MaxGambleSteps:    5,
		WinChances: []WinChanceField{
			{
				MaxLines: 30,
				Base: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 450, Spin: 14},
					{MaxPercent: 20, Bonus: 360, Spin: 10},
					{MaxPercent: 30, Bonus: 290, Spin: 8},
					{MaxPercent: 1000, Bonus: 220, Spin: 6},
				},
				BonusGame: []WinChanceBracket{
					{MaxPercent: 10, Bonus: 900, Spin: 5},
					{MaxPercent: 20, Bonus: 720, Spin: 4},
					{MaxPercent: 30, Bonus: 580, Spin: 4},
					{MaxPercent: 1000, Bonus: 450, Spin: 3},
				},
			},
		},
	}
}
