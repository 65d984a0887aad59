// Package bot 实现按难度分层的出牌与响应决策。
package bot

import (
	"math/rand"

	"github.com/kevin-chtw/tw_mj16/mahjong"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func ParseDifficulty(s string) Difficulty {
	switch s {
	case string(Easy), string(Medium), string(Hard):
		return Difficulty(s)
	default:
		return Medium
	}
}

// BoardView 决策用的牌面信息: 他家是否听牌, 牌墙余量,
// 牌河与副露中每种牌的可见张数(不含任何人的手牌)。
type BoardView struct {
	OpponentTing bool
	WallCount    int
	Visible      map[mahjong.Tile]int
}

// NewBoardView 从seat的视角汇总局面
func NewBoardView(s *mahjong.GameState, seat int32) *BoardView {
	view := &BoardView{
		WallCount: s.Remaining(),
		Visible:   make(map[mahjong.Tile]int),
	}
	for _, p := range s.Players {
		if p.Seat != seat && p.Ting {
			view.OpponentTing = true
		}
		for _, t := range p.OutTiles {
			view.Visible[t.Kind()]++
		}
		for _, g := range p.ChowGroups {
			for i := 0; i < 3; i++ {
				view.Visible[mahjong.MakeTile(g.LeftTile.Color(), g.LeftTile.Point()+i)]++
			}
		}
		for _, g := range p.PonGroups {
			view.Visible[g.Tile] += 3
		}
		for _, g := range p.KonGroups {
			view.Visible[g.Tile] += 4
		}
	}
	return view
}

// AI 一个座位的决策器
type AI struct {
	Level  Difficulty
	Tuning Tuning
}

func New(level Difficulty) *AI {
	return &AI{Level: level, Tuning: DefaultTuning}
}

// DecideDiscard 选一张要打的实体牌。简单难度纯随机;
// 其余难度优先走听牌路线, 否则按启发式评分打价值最低的牌。
func (a *AI) DecideDiscard(s *mahjong.GameState, seat int32) mahjong.Tile {
	hand := s.Players[seat].HandTiles
	if len(hand) == 0 {
		return mahjong.TileNull
	}
	if a.Level == Easy {
		return hand[rand.Intn(len(hand))]
	}

	view := NewBoardView(s, seat)
	if choices := mahjong.CheckTing(hand); len(choices) > 0 {
		return pickTile(hand, a.pickTingDiscard(choices, view))
	}
	return pickTile(hand, a.pickByScore(hand, view))
}

// pickTingDiscard 在能听的打法里选听口最多的一张,
// 危险张让位于安全张。
func (a *AI) pickTingDiscard(choices []mahjong.TingChoice, view *BoardView) mahjong.Tile {
	best := choices[0].Discard
	maxWaits := 0
	bestDangerous := false
	for _, choice := range choices {
		dangerous := a.isDangerous(choice.Discard, view)
		switch {
		case bestDangerous && !dangerous:
			best, maxWaits, bestDangerous = choice.Discard, len(choice.Waits), false
		case !bestDangerous && dangerous:
			continue
		case len(choice.Waits) > maxWaits:
			best, maxWaits, bestDangerous = choice.Discard, len(choice.Waits), dangerous
		}
	}
	return best
}

// isDangerous 他家听牌时见二以下算危险, 残局生张也算
func (a *AI) isDangerous(kind mahjong.Tile, view *BoardView) bool {
	visible := view.Visible[kind.Kind()]
	if view.OpponentTing && visible < 2 {
		return true
	}
	return view.WallCount < 40 && visible == 0
}

// pickByScore 对每种打法评分: 剩余手牌静态分x权重 + 34种进张的
// 期望提升 + 中等难度扰动 - 危险惩罚。近似并列时随机取一。
func (a *AI) pickByScore(hand []mahjong.Tile, view *BoardView) mahjong.Tile {
	counts := kindCounts(hand)
	bestScore := -1e9
	candidates := make([]mahjong.Tile, 0, 4)

	for kind := range counts {
		rest := cloneCounts(counts)
		rest[kind]--
		base := a.evaluate(rest)

		improve := 0.0
		for idx := 0; idx < mahjong.KindCount; idx++ {
			draw := mahjong.KindFromIndex(idx)
			rest[draw]++
			if delta := a.evaluate(rest) - base; delta > 0 {
				improve += delta
			}
			rest[draw]--
		}

		score := base*a.Tuning.StaticWeight + improve
		if a.Level == Medium {
			score += rand.Float64() * a.Tuning.MediumJitter
		}
		score -= a.dangerPenalty(kind, counts[kind], view)

		switch {
		case score > bestScore+a.Tuning.TieEpsilon:
			bestScore = score
			candidates = append(candidates[:0], kind)
		case score > bestScore-a.Tuning.TieEpsilon:
			candidates = append(candidates, kind)
		}
	}
	if len(candidates) == 0 {
		return hand[0].Kind()
	}
	return candidates[rand.Intn(len(candidates))]
}

// dangerPenalty 见张越少惩罚越大; 中张额外放大
func (a *AI) dangerPenalty(kind mahjong.Tile, inHand int, view *BoardView) float64 {
	visible := view.Visible[kind.Kind()] + inHand
	penalty := 0.0
	if view.OpponentTing {
		switch visible {
		case 1:
			penalty = a.Tuning.DangerRaw
		case 2:
			penalty = a.Tuning.DangerSemi
		case 3:
			penalty = a.Tuning.DangerSafe
		}
	} else if view.WallCount < 40 && visible == 1 {
		penalty = a.Tuning.DangerLate
	}
	if kind.IsSuit() && kind.Point() >= 3 && kind.Point() <= 5 {
		penalty *= a.Tuning.MiddleAmplify
	}
	return penalty
}

// evaluate 静态手牌强度: 先取刻子记对子, 再贪心取顺子与搭子,
// 剩下的孤张幺九字牌扣分。
func (a *AI) evaluate(counts map[mahjong.Tile]int) float64 {
	freqs := cloneCounts(counts)
	sets, pairs, partials := 0, 0, 0

	for kind, count := range freqs {
		if count >= 3 {
			sets++
			freqs[kind] = count - 3
		}
		if freqs[kind] == 2 {
			pairs++
		}
	}

	forEachSuit(func(color mahjong.EColor) {
		for p := 0; p <= 6; p++ {
			k1, k2, k3 := mahjong.MakeTile(color, p), mahjong.MakeTile(color, p+1), mahjong.MakeTile(color, p+2)
			for freqs[k1] > 0 && freqs[k2] > 0 && freqs[k3] > 0 {
				sets++
				freqs[k1]--
				freqs[k2]--
				freqs[k3]--
			}
		}
	})
	forEachSuit(func(color mahjong.EColor) {
		for p := 0; p <= 7; p++ {
			k1, k2 := mahjong.MakeTile(color, p), mahjong.MakeTile(color, p+1)
			if freqs[k1] > 0 && freqs[k2] > 0 {
				partials++
				freqs[k1]--
				freqs[k2]--
			}
		}
		for p := 0; p <= 6; p++ {
			k1, k3 := mahjong.MakeTile(color, p), mahjong.MakeTile(color, p+2)
			if freqs[k1] > 0 && freqs[k3] > 0 {
				partials++
				freqs[k1]--
				freqs[k3]--
			}
		}
	})

	score := float64(sets)*a.Tuning.SetScore + float64(pairs)*a.Tuning.PairScore + float64(partials)*a.Tuning.PartialScore
	for kind, count := range freqs {
		if count <= 0 {
			continue
		}
		if kind.IsHonor() {
			score -= a.Tuning.HonorPenalty
		} else if kind.IsTerminal() {
			score -= a.Tuning.TerminalPenalty
		}
	}
	return score
}

// DecideSelf 摸牌后的决断: 能胡就胡, 有杠开杠, 否则出牌。
func (a *AI) DecideSelf(s *mahjong.GameState, seat int32) mahjong.Action {
	ops := s.SelfOperates(seat)
	if ops == nil {
		return mahjong.Action{Seat: seat, Operate: mahjong.OperateNone}
	}
	if ops.HasOperate(mahjong.OperateHu) {
		return mahjong.Action{Seat: seat, Operate: mahjong.OperateHu}
	}
	if ops.HasOperate(mahjong.OperateAnKon) && len(ops.AnKonTiles) > 0 {
		return mahjong.Action{Seat: seat, Operate: mahjong.OperateAnKon, Tile: ops.AnKonTiles[0]}
	}
	if ops.HasOperate(mahjong.OperateBuKon) && len(ops.BuKonTiles) > 0 {
		return mahjong.Action{Seat: seat, Operate: mahjong.OperateBuKon, Tile: ops.BuKonTiles[0]}
	}
	return mahjong.Action{Seat: seat, Operate: mahjong.OperateDiscard, Tile: a.DecideDiscard(s, seat)}
}

// DecideClaim 响应窗口的决断: 有胡必胡, 吃碰过门槛才上手。
func (a *AI) DecideClaim(s *mahjong.GameState, seat int32) mahjong.Action {
	ops := s.WaitOperates(seat)
	if ops == nil {
		return mahjong.Action{Seat: seat, Operate: mahjong.OperatePass}
	}
	if ops.HasOperate(mahjong.OperateHu) {
		return mahjong.Action{Seat: seat, Operate: mahjong.OperateHu}
	}
	hand := s.Players[seat].HandTiles
	tile := s.CurTile
	if ops.HasOperate(mahjong.OperatePon) && a.shouldPon(hand, tile) {
		return mahjong.Action{Seat: seat, Operate: mahjong.OperatePon, Tile: tile}
	}
	if ops.HasOperate(mahjong.OperateChow) {
		if left, ok := a.bestChow(hand, tile, ops.ChowCombos); ok {
			return mahjong.Action{Seat: seat, Operate: mahjong.OperateChow, Tile: tile, Extra: left}
		}
	}
	return mahjong.Action{Seat: seat, Operate: mahjong.OperatePass}
}

// shouldPon 碰掉两张后的价值加上门槛仍要高过原手牌才碰
func (a *AI) shouldPon(hand []mahjong.Tile, tile mahjong.Tile) bool {
	counts := kindCounts(hand)
	base := a.evaluate(counts)
	rest := cloneCounts(counts)
	rest[tile.Kind()] -= 2
	return a.evaluate(rest)+a.Tuning.ClaimThreshold > base
}

// bestChow 在所有搭子组合里挑价值最高的一种, 过门槛才吃。
// 返回所选顺子的最小牌种。
func (a *AI) bestChow(hand []mahjong.Tile, tile mahjong.Tile, combos [][]mahjong.Tile) (mahjong.Tile, bool) {
	counts := kindCounts(hand)
	base := a.evaluate(counts)
	bestScore := base
	bestLeft := mahjong.TileNull
	for _, combo := range combos {
		rest := cloneCounts(counts)
		left := tile.Kind()
		for _, t := range combo {
			rest[t.Kind()]--
			if t.Kind() < left {
				left = t.Kind()
			}
		}
		if score := a.evaluate(rest) + a.Tuning.ClaimThreshold; score > bestScore {
			bestScore = score
			bestLeft = left
		}
	}
	return bestLeft, bestLeft != mahjong.TileNull
}

func kindCounts(tiles []mahjong.Tile) map[mahjong.Tile]int {
	counts := make(map[mahjong.Tile]int, len(tiles))
	for _, t := range tiles {
		counts[t.Kind()]++
	}
	return counts
}

func cloneCounts(counts map[mahjong.Tile]int) map[mahjong.Tile]int {
	c := make(map[mahjong.Tile]int, len(counts))
	for kind, count := range counts {
		c[kind] = count
	}
	return c
}

func forEachSuit(fn func(color mahjong.EColor)) {
	for _, color := range []mahjong.EColor{mahjong.ColorCharacter, mahjong.ColorBamboo, mahjong.ColorDot} {
		fn(color)
	}
}

// pickTile 从手牌里找一张该种类的实体牌
func pickTile(hand []mahjong.Tile, kind mahjong.Tile) mahjong.Tile {
	for _, t := range hand {
		if t.SameKind(kind) {
			return t
		}
	}
	if len(hand) > 0 {
		return hand[0]
	}
	return mahjong.TileNull
}
