package mahjong

import (
	"slices"

	"github.com/kevin-chtw/tw_mj16/utils"
)

// Group 碰出的刻子
type Group struct {
	Tile Tile  `json:"tile"` // 牌种
	From int32 `json:"from"`
}

// KonGroup 杠
type KonGroup struct {
	Tile Tile    `json:"tile"`
	From int32   `json:"from"`
	Type KonType `json:"type"`
}

// ChowGroup 吃出的顺子, LeftTile为顺子最小牌种
type ChowGroup struct {
	ChowTile Tile  `json:"chow_tile"` // 吃进的那张
	LeftTile Tile  `json:"left_tile"`
	From     int32 `json:"from"`
}

// PlayData 一个座位的对局数据
type PlayData struct {
	Seat       int32       `json:"seat"`
	Name       string      `json:"name"`
	Bot        bool        `json:"bot"`
	HandTiles  []Tile      `json:"hand_tiles"`
	Flowers    []Tile      `json:"flowers"`
	OutTiles   []Tile      `json:"out_tiles"`
	ChowGroups []ChowGroup `json:"chow_groups"`
	PonGroups  []Group     `json:"pon_groups"`
	KonGroups  []KonGroup  `json:"kon_groups"`
	Ting       bool        `json:"ting"`
	Score      int64       `json:"score"`
	RoundDelta int64       `json:"round_delta"`
	Streak     int32       `json:"streak"` // 连庄数
}

func NewPlayData(seat int32, name string, bot bool, score int64) *PlayData {
	return &PlayData{
		Seat:       seat,
		Name:       name,
		Bot:        bot,
		HandTiles:  make([]Tile, 0, TileCountInitBanker),
		Flowers:    make([]Tile, 0),
		OutTiles:   make([]Tile, 0),
		ChowGroups: make([]ChowGroup, 0),
		PonGroups:  make([]Group, 0),
		KonGroups:  make([]KonGroup, 0),
		Score:      score,
	}
}

func (p *PlayData) clone() *PlayData {
	c := *p
	c.HandTiles = slices.Clone(p.HandTiles)
	c.Flowers = slices.Clone(p.Flowers)
	c.OutTiles = slices.Clone(p.OutTiles)
	c.ChowGroups = slices.Clone(p.ChowGroups)
	c.PonGroups = slices.Clone(p.PonGroups)
	c.KonGroups = slices.Clone(p.KonGroups)
	return &c
}

func (p *PlayData) PutHandTile(tile Tile) {
	p.HandTiles = append(p.HandTiles, tile)
}

// Discard 按实体牌值出牌
func (p *PlayData) Discard(tile Tile) bool {
	if !slices.Contains(p.HandTiles, tile) {
		return false
	}
	p.HandTiles = utils.RemoveElements(p.HandTiles, tile, 1)
	p.OutTiles = append(p.OutTiles, tile)
	return true
}

// RemoveOutTile 牌被吃碰杠胡后从牌河收回
func (p *PlayData) RemoveOutTile() {
	if len(p.OutTiles) > 0 {
		p.OutTiles = p.OutTiles[:len(p.OutTiles)-1]
	}
}

func (p *PlayData) removeKindTiles(kind Tile, count int) {
	p.HandTiles = removeKind(p.HandTiles, kind, count)
}

func (p *PlayData) canPon(tile Tile) bool {
	return countKind(p.HandTiles, tile) >= 2
}

func (p *PlayData) canKon(tile Tile, konType KonType) bool {
	count := countKind(p.HandTiles, tile)
	switch konType {
	case KonTypeZhi:
		return count >= 3
	case KonTypeAn:
		return count == 4
	case KonTypeBu:
		return count >= 1 && p.HasPon(tile)
	default:
		return false
	}
}

// chowCombos 吃tile的全部搭子组合, 每组为两张牌种, 从小到大
func (p *PlayData) chowCombos(tile Tile) [][]Tile {
	if !tile.IsSuit() {
		return nil
	}
	color, point := tile.Info()
	has := func(pt int) bool {
		return pt >= 0 && pt < PointCountByColor[color] &&
			countKind(p.HandTiles, MakeTile(color, pt)) > 0
	}
	combos := make([][]Tile, 0, 3)
	if has(point-2) && has(point-1) {
		combos = append(combos, []Tile{MakeTile(color, point-2), MakeTile(color, point-1)})
	}
	if has(point-1) && has(point+1) {
		combos = append(combos, []Tile{MakeTile(color, point-1), MakeTile(color, point+1)})
	}
	if has(point+1) && has(point+2) {
		combos = append(combos, []Tile{MakeTile(color, point+1), MakeTile(color, point+2)})
	}
	return combos
}

func (p *PlayData) canChow(tile Tile) bool {
	return len(p.chowCombos(tile)) > 0
}

func (p *PlayData) Pon(tile Tile, from int32) {
	p.removeKindTiles(tile.Kind(), 2)
	p.PonGroups = append(p.PonGroups, Group{Tile: tile.Kind(), From: from})
}

func (p *PlayData) Chow(combo []Tile, curTile Tile, from int32) {
	for _, t := range combo {
		p.removeKindTiles(t.Kind(), 1)
	}
	left := curTile.Kind()
	for _, t := range combo {
		if t.Kind() < left {
			left = t.Kind()
		}
	}
	p.ChowGroups = append(p.ChowGroups, ChowGroup{ChowTile: curTile.Kind(), LeftTile: left, From: from})
}

func (p *PlayData) Kon(tile Tile, from int32, konType KonType) {
	kind := tile.Kind()
	switch konType {
	case KonTypeZhi:
		p.removeKindTiles(kind, 3)
	case KonTypeAn:
		p.removeKindTiles(kind, 4)
	case KonTypeBu:
		p.removeKindTiles(kind, 1)
		p.removePon(kind)
	}
	p.KonGroups = append(p.KonGroups, KonGroup{Tile: kind, From: from, Type: konType})
}

func (p *PlayData) HasPon(tile Tile) bool {
	for _, group := range p.PonGroups {
		if group.Tile == tile.Kind() {
			return true
		}
	}
	return false
}

func (p *PlayData) removePon(kind Tile) Group {
	for i, group := range p.PonGroups {
		if group.Tile == kind {
			p.PonGroups = append(p.PonGroups[:i], p.PonGroups[i+1:]...)
			return group
		}
	}
	return Group{}
}

// anKonKinds 可暗杠的牌种
func (p *PlayData) anKonKinds() []Tile {
	counts := make(map[Tile]int)
	for _, t := range p.HandTiles {
		counts[t.Kind()]++
	}
	kinds := make([]Tile, 0)
	for kind, count := range counts {
		if count == 4 {
			kinds = append(kinds, kind)
		}
	}
	slices.Sort(kinds)
	return kinds
}

// buKonKinds 可补杠的牌种(手里有且碰过)
func (p *PlayData) buKonKinds() []Tile {
	kinds := make([]Tile, 0)
	for _, group := range p.PonGroups {
		if countKind(p.HandTiles, group.Tile) > 0 {
			kinds = append(kinds, group.Tile)
		}
	}
	return kinds
}

// IsMenQing 门清: 除暗杠外没有明牌
func (p *PlayData) IsMenQing() bool {
	if len(p.ChowGroups) > 0 || len(p.PonGroups) > 0 {
		return false
	}
	for _, group := range p.KonGroups {
		if group.Type != KonTypeAn {
			return false
		}
	}
	return true
}

// HasTripletOf 副露或手牌中是否有该牌种的刻子
func (p *PlayData) HasTripletOf(kind Tile) bool {
	for _, group := range p.PonGroups {
		if group.Tile == kind {
			return true
		}
	}
	for _, group := range p.KonGroups {
		if group.Tile == kind {
			return true
		}
	}
	return countKind(p.HandTiles, kind) >= 3
}

// ExposedCount 副露组数
func (p *PlayData) ExposedCount() int {
	return len(p.ChowGroups) + len(p.PonGroups) + len(p.KonGroups)
}

// SortHand 手牌排序供展示
func (p *PlayData) SortHand() {
	slices.Sort(p.HandTiles)
}

// TileCount 该座位占用的总张数(手牌+花牌+牌河+副露)
func (p *PlayData) TileCount() int {
	count := len(p.HandTiles) + len(p.Flowers) + len(p.OutTiles)
	count += len(p.ChowGroups) * 3
	count += len(p.PonGroups) * 3
	count += len(p.KonGroups) * 4
	return count
}
