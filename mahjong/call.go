package mahjong

import (
	"slices"
)

// CheckCall 枚举全部34种牌, 返回能让hand(3k+1张)成胡的牌种列表。
// 穷举定义, 不做任何启发式剪枝。
func CheckCall(hand []Tile) []Tile {
	if len(hand)%3 != 1 {
		return nil
	}
	waits := make([]Tile, 0)
	for idx := 0; idx < KindCount; idx++ {
		kind := KindFromIndex(idx)
		if countKind(hand, kind) >= SameTileCountByColor[kind.Color()] {
			continue
		}
		if DefaultHuCore.CheckBasicHu(append(slices.Clone(hand), kind)) {
			waits = append(waits, kind)
		}
	}
	return waits
}

// TingChoice 一种打牌选择及其听的牌
type TingChoice struct {
	Discard Tile   `json:"discard"` // 牌种
	Waits   []Tile `json:"waits"`
}

// CheckTing 对hand(3k+2张)的每个牌种试打一张, 剩余牌有听则记录,
// 按听牌数从多到少排序。
func CheckTing(hand []Tile) []TingChoice {
	if len(hand)%3 != 2 {
		return nil
	}
	choices := make([]TingChoice, 0)
	seen := make(map[Tile]struct{})
	for _, t := range hand {
		kind := t.Kind()
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		rest := removeKind(hand, kind, 1)
		if waits := CheckCall(rest); len(waits) > 0 {
			choices = append(choices, TingChoice{Discard: kind, Waits: waits})
		}
	}
	slices.SortStableFunc(choices, func(a, b TingChoice) int {
		return len(b.Waits) - len(a.Waits)
	})
	return choices
}

// CanTing 是否存在听牌打法
func CanTing(hand []Tile) bool {
	return len(CheckTing(hand)) > 0
}

func countKind(tiles []Tile, kind Tile) int {
	count := 0
	for _, t := range tiles {
		if t.SameKind(kind) {
			count++
		}
	}
	return count
}

// removeKind 移除count张同种牌(不区分第几张)
func removeKind(tiles []Tile, kind Tile, count int) []Tile {
	res := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if count > 0 && t.SameKind(kind) {
			count--
			continue
		}
		res = append(res, t)
	}
	return res
}

// pickKind 找出count张同种实体牌
func pickKind(tiles []Tile, kind Tile, count int) []Tile {
	res := make([]Tile, 0, count)
	for _, t := range tiles {
		if len(res) == count {
			break
		}
		if t.SameKind(kind) {
			res = append(res, t)
		}
	}
	return res
}
