package mahjong

import "sync"

// kindCounts 按牌种序号计数的手牌向量
type kindCounts [KindCount]int8

func toKindCounts(tiles []Tile) (kindCounts, bool) {
	var c kindCounts
	for _, t := range tiles {
		idx := t.KindIndex()
		if idx < 0 {
			return c, false
		}
		c[idx]++
	}
	return c, true
}

// HuCore 平胡判定核心, 对拆解结果做记忆化
type HuCore struct {
	mu   sync.Mutex
	memo map[kindCounts]bool
}

func NewHuCore() *HuCore {
	return &HuCore{memo: make(map[kindCounts]bool)}
}

var DefaultHuCore = NewHuCore()

// CheckBasicHu 判断tiles(3k+2张)能否拆成k组刻子/顺子加一对将。
// 枚举每个数量>=2的牌种做将, 去掉后递归拆解剩余部分。
func (hc *HuCore) CheckBasicHu(tiles []Tile) bool {
	if len(tiles)%3 != 2 {
		return false
	}
	counts, ok := toKindCounts(tiles)
	if !ok {
		return false
	}

	hc.mu.Lock()
	defer hc.mu.Unlock()
	for k := 0; k < KindCount; k++ {
		if counts[k] < 2 {
			continue
		}
		counts[k] -= 2
		huOK := hc.decompose(&counts)
		counts[k] += 2
		if huOK {
			return true
		}
	}
	return false
}

// decompose 从最小牌种开始, 依次尝试拆刻子和顺子
func (hc *HuCore) decompose(counts *kindCounts) bool {
	first := -1
	for k := 0; k < KindCount; k++ {
		if counts[k] > 0 {
			first = k
			break
		}
	}
	if first < 0 {
		return true
	}

	if ok, hit := hc.memo[*counts]; hit {
		return ok
	}

	res := false
	if counts[first] >= 3 {
		counts[first] -= 3
		res = hc.decompose(counts)
		counts[first] += 3
	}
	if !res && canStartRun(first) && counts[first+1] > 0 && counts[first+2] > 0 {
		counts[first]--
		counts[first+1]--
		counts[first+2]--
		res = hc.decompose(counts)
		counts[first]++
		counts[first+1]++
		counts[first+2]++
	}

	hc.memo[*counts] = res
	return res
}

// canStartRun 数牌且点数<=7才能作为顺子起点
func canStartRun(idx int) bool {
	t := KindFromIndex(idx)
	return t.IsSuit() && t.Point() <= 6
}

// IsHu 包级便捷入口
func IsHu(tiles []Tile) bool {
	return DefaultHuCore.CheckBasicHu(tiles)
}
