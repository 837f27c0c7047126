package slot

import "math/rand"

// RandomGenerator 随机数来源，可在测试中替换为可控序列
type RandomGenerator interface {
	// Intn 返回[0,n)的随机整数
	Intn(n int) int
	// Shuffle 原地洗牌
	Shuffle(n int, swap func(i, j int))
}

type systemRandom struct{}

// NewRandomGenerator 创建默认随机数生成器
func NewRandomGenerator() RandomGenerator {
	return systemRandom{}
}

func (systemRandom) Intn(n int) int {
	return rand.Intn(n)
}

func (systemRandom) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}
