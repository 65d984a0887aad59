package mahjong

import (
	"math/rand"
	"slices"

	"github.com/kevin-chtw/tw_mj16/utils"
)

// ClaimWindow 一次出牌或加杠后的响应窗口。
// Pending中只登记有实际操作的座位, 只能过的座位不进窗口。
type ClaimWindow struct {
	From    int32               `json:"from"`    // 出牌者或加杠者
	Tile    Tile                `json:"tile"`    // 实体牌
	RobKon  bool                `json:"rob_kon"` // 抢杠窗口
	Pending map[int32]*Operates `json:"pending"`
	Choices map[int32]Action    `json:"choices"`
}

func (w *ClaimWindow) clone() *ClaimWindow {
	c := &ClaimWindow{
		From:    w.From,
		Tile:    w.Tile,
		RobKon:  w.RobKon,
		Pending: make(map[int32]*Operates, len(w.Pending)),
		Choices: make(map[int32]Action, len(w.Choices)),
	}
	for seat, ops := range w.Pending {
		o := *ops
		o.ChowCombos = slices.Clone(ops.ChowCombos)
		o.AnKonTiles = slices.Clone(ops.AnKonTiles)
		o.BuKonTiles = slices.Clone(ops.BuKonTiles)
		c.Pending[seat] = &o
	}
	for seat, choice := range w.Choices {
		c.Choices[seat] = choice
	}
	return c
}

func (w *ClaimWindow) done() bool {
	return utils.HasSameKeys(w.Choices, w.Pending)
}

// GameState 一局牌的完整状态。所有迁移方法返回新状态,
// 接收者不被修改; 非法操作原样返回接收者。
type GameState struct {
	Rule         *Rule          `json:"rule"`
	Status       EStatus        `json:"status"`
	Dealer       int32          `json:"dealer"`
	DealerStreak int32          `json:"dealer_streak"` // 当前庄家连庄数
	RoundWind    int32          `json:"round_wind"`    // 圈风 0东 1南 2西 3北
	Dice         [3]int32       `json:"dice"`
	Wall         []Tile         `json:"wall"`
	Players      [NP4]*PlayData `json:"players"`
	CurSeat      int32          `json:"cur_seat"`
	LastDrawn    Tile           `json:"last_drawn"` // 当前座位刚摸的牌
	CurTile      Tile           `json:"cur_tile"`   // 最近一张打出的牌
	Window       *ClaimWindow   `json:"window,omitempty"`
	History      []Action       `json:"history"`
	Liuju        bool           `json:"liuju"`
	Winner       int32          `json:"winner"`
	WinType      EWinType       `json:"win_type"`
	PaoSeat      int32          `json:"pao_seat"`
	WinTile      Tile           `json:"win_tile"`
	Robbed       bool           `json:"robbed"` // 抢杠胡
	Result       *TaiResult     `json:"result,omitempty"`
}

func NewGameState(rule *Rule, names [NP4]string, bots [NP4]bool) *GameState {
	s := &GameState{
		Rule:    rule,
		Status:  StatusAwaitingStart,
		Dealer:  SeatNull,
		CurSeat: SeatNull,
		Winner:  SeatNull,
		PaoSeat: SeatNull,
	}
	for seat := int32(0); seat < NP4; seat++ {
		s.Players[seat] = NewPlayData(seat, names[seat], bots[seat], rule.InitScore)
	}
	return s
}

func (s *GameState) Clone() *GameState {
	c := *s
	c.Wall = slices.Clone(s.Wall)
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.History = slices.Clone(s.History)
	if s.Window != nil {
		c.Window = s.Window.clone()
	}
	return &c
}

func (s *GameState) Remaining() int {
	return len(s.Wall)
}

func (s *GameState) Player(seat int32) *PlayData {
	if seat < 0 || seat >= NP4 {
		return nil
	}
	return s.Players[seat]
}

func (s *GameState) record(a Action) {
	s.History = append(s.History, a)
}

// RollDice 掷三颗骰子。首局以点数和定庄: (总点数-1)%4。
func (s *GameState) RollDice() *GameState {
	if s.Status != StatusAwaitingStart {
		return s
	}
	next := s.Clone()
	total := int32(0)
	for i := range next.Dice {
		next.Dice[i] = int32(rand.Intn(6)) + 1
		total += next.Dice[i]
	}
	if next.Dealer == SeatNull {
		next.Dealer = (total - 1) % NP4
	}
	next.CurSeat = next.Dealer
	next.Status = StatusDealing
	return next
}

// Deal 发牌: 从庄家起每人轮流抓四墩共16张, 庄家多抓一张门牌。
// wall为nil时现场洗牌。
func (s *GameState) Deal(wall []Tile) *GameState {
	if s.Status != StatusDealing {
		return s
	}
	next := s.Clone()
	if wall == nil {
		wall = NewWall()
	}
	next.Wall = slices.Clone(wall)
	for pass := 0; pass < 4; pass++ {
		for offset := int32(0); offset < NP4; offset++ {
			p := next.Players[GetNextSeat(next.Dealer, offset, NP4)]
			p.HandTiles = append(p.HandTiles, next.dealTiles(4)...)
		}
	}
	next.Players[next.Dealer].PutHandTile(next.drawFront())
	next.Status = StatusFlowerReplace
	return next
}

// ReplaceFlowers 起手补花: 从庄家起轮流把手中花牌换掉,
// 补到的花再换, 直到一整轮没有人补为止。补完检查天胡。
func (s *GameState) ReplaceFlowers() *GameState {
	if s.Status != StatusFlowerReplace {
		return s
	}
	next := s.Clone()
	changed := true
	for changed {
		changed = false
		for offset := int32(0); offset < NP4; offset++ {
			p := next.Players[GetNextSeat(next.Dealer, offset, NP4)]
			for next.sweepFlowers(p) {
				changed = true
			}
		}
	}
	for _, p := range next.Players {
		p.SortHand()
	}

	dealer := next.Players[next.Dealer]
	if IsHu(dealer.HandTiles) {
		next.CurSeat = next.Dealer
		return next.winZimo(next.Dealer, TileNull)
	}
	next.Status = StatusPlaying
	next.CurSeat = next.Dealer
	next.LastDrawn = TileNull
	return next
}

// sweepFlowers 把p手中的花牌全部移入花牌堆并从牌墙前端补齐,
// 返回是否有花被换出
func (s *GameState) sweepFlowers(p *PlayData) bool {
	moved := 0
	rest := make([]Tile, 0, len(p.HandTiles))
	for _, t := range p.HandTiles {
		if t.IsFlower() {
			p.Flowers = append(p.Flowers, t)
			moved++
		} else {
			rest = append(rest, t)
		}
	}
	if moved == 0 {
		return false
	}
	p.HandTiles = append(rest, s.dealTiles(moved)...)
	return true
}

// Draw 当前座位摸牌。牌墙只剩海底时流局; 摸到花从补牌端换;
// 听牌者摸牌后自动胡或自动打出。
func (s *GameState) Draw() *GameState {
	if s.Status != StatusPlaying || s.CurSeat == SeatNull {
		return s
	}
	p := s.Players[s.CurSeat]
	if len(p.HandTiles)%3 != 1 {
		return s
	}
	if len(s.Wall) <= s.Rule.DeadWall {
		return s.drawExhausted()
	}

	next := s.Clone()
	np := next.Players[next.CurSeat]
	tile := next.drawFront()
	for tile.IsFlower() {
		np.Flowers = append(np.Flowers, tile)
		tile = next.drawBack()
	}
	if tile == TileNull {
		return next.drawExhausted()
	}
	np.PutHandTile(tile)
	next.LastDrawn = tile
	next.record(Action{Seat: next.CurSeat, From: next.CurSeat, Operate: OperateDraw})

	if np.Ting {
		if IsHu(np.HandTiles) {
			return next.winZimo(next.CurSeat, tile)
		}
		return next.discard(next.CurSeat, tile)
	}
	return next
}

// Discard 当前座位打出一张实体牌。听牌者只能打刚摸的那张。
func (s *GameState) Discard(seat int32, tile Tile) *GameState {
	if s.Status != StatusPlaying || seat != s.CurSeat {
		return s
	}
	p := s.Players[seat]
	if len(p.HandTiles)%3 != 2 {
		return s
	}
	if p.Ting && s.LastDrawn.IsValid() && tile != s.LastDrawn {
		return s
	}
	if !slices.Contains(p.HandTiles, tile) {
		return s
	}
	return s.Clone().discard(seat, tile)
}

// discard 在已克隆的状态上执行出牌并打开响应窗口
func (s *GameState) discard(seat int32, tile Tile) *GameState {
	p := s.Players[seat]
	if !p.Discard(tile) {
		return s
	}
	p.SortHand()
	s.CurTile = tile
	s.LastDrawn = TileNull
	s.record(Action{Seat: seat, From: seat, Operate: OperateDiscard, Tile: tile})

	pending := make(map[int32]*Operates)
	for offset := int32(1); offset < NP4; offset++ {
		other := GetNextSeat(seat, offset, NP4)
		if ops := s.waitOperates(other); ops != nil {
			pending[other] = ops
		}
	}
	if len(pending) == 0 {
		s.CurSeat = GetNextSeat(seat, 1, NP4)
		s.Status = StatusPlaying
		return s
	}
	s.Window = &ClaimWindow{
		From:    seat,
		Tile:    tile,
		Pending: pending,
		Choices: make(map[int32]Action),
	}
	s.Status = StatusActionWindow
	return s
}

// waitOperates 座位对刚打出的牌能做的响应, 无操作返回nil
func (s *GameState) waitOperates(seat int32) *Operates {
	ops := NewOperates(OperatePass)
	for _, checker := range waitCheckers {
		checker.Check(s, seat, ops)
	}
	if ops.Value == OperatePass {
		return nil
	}
	return ops
}

// SelfOperates 当前座位摸牌后可做的操作
func (s *GameState) SelfOperates(seat int32) *Operates {
	if s.Status != StatusPlaying || seat != s.CurSeat {
		return nil
	}
	if len(s.Players[seat].HandTiles)%3 != 2 {
		return nil
	}
	ops := NewOperates(OperateDiscard)
	for _, checker := range selfCheckers {
		checker.Check(s, ops)
	}
	return ops
}

// WaitOperates 响应窗口中座位可做的操作
func (s *GameState) WaitOperates(seat int32) *Operates {
	if s.Status != StatusActionWindow || s.Window == nil {
		return nil
	}
	return s.Window.Pending[seat]
}

// Submit 提交一次操作意图。摸牌后的自身操作立即生效;
// 窗口响应先登记, 全员表态后按胡>碰杠>吃的优先级裁决。
func (s *GameState) Submit(seat int32, action Action) *GameState {
	switch s.Status {
	case StatusActionWindow:
		return s.submitClaim(seat, action)
	case StatusPlaying:
		return s.submitSelf(seat, action)
	default:
		return s
	}
}

func (s *GameState) submitSelf(seat int32, action Action) *GameState {
	if seat != s.CurSeat {
		return s
	}
	p := s.Players[seat]
	if len(p.HandTiles)%3 != 2 {
		return s
	}

	switch action.Operate {
	case OperateDiscard:
		return s.Discard(seat, action.Tile)
	case OperateHu:
		if !IsHu(p.HandTiles) {
			return s
		}
		return s.Clone().winZimo(seat, s.LastDrawn)
	case OperateTing:
		return s.declareTing(seat, action.Tile)
	case OperateCancelTing:
		if !p.Ting {
			return s
		}
		next := s.Clone()
		next.Players[seat].Ting = false
		next.record(Action{Seat: seat, From: seat, Operate: OperateCancelTing})
		return next
	case OperateAnKon:
		return s.anKon(seat, action.Tile)
	case OperateBuKon:
		return s.buKon(seat, action.Tile)
	default:
		return s
	}
}

// declareTing 报听并打出一张牌, 此后手牌锁定。
// 未指定打哪张时选听口最多的那张。
func (s *GameState) declareTing(seat int32, tile Tile) *GameState {
	p := s.Players[seat]
	if p.Ting {
		return s
	}
	if !tile.IsValid() {
		choices := CheckTing(p.HandTiles)
		if len(choices) == 0 {
			return s
		}
		tile = pickKind(p.HandTiles, choices[0].Discard, 1)[0]
	}
	if !slices.Contains(p.HandTiles, tile) {
		return s
	}
	rest := removeKind(p.HandTiles, tile.Kind(), 1)
	if len(CheckCall(rest)) == 0 {
		return s
	}
	next := s.Clone()
	next.Players[seat].Ting = true
	next.record(Action{Seat: seat, From: seat, Operate: OperateTing, Tile: tile})
	return next.discard(seat, tile)
}

func (s *GameState) anKon(seat int32, kind Tile) *GameState {
	p := s.Players[seat]
	if p.Ting || !p.canKon(kind, KonTypeAn) {
		return s
	}
	next := s.Clone()
	np := next.Players[seat]
	np.Kon(kind, seat, KonTypeAn)
	next.record(Action{Seat: seat, From: seat, Operate: OperateAnKon, Tile: kind.Kind()})
	return next.afterKonDraw(seat)
}

// buKon 加杠。别家听这张牌时先开抢杠窗口, 全过才成杠。
func (s *GameState) buKon(seat int32, kind Tile) *GameState {
	p := s.Players[seat]
	if p.Ting || !p.canKon(kind, KonTypeBu) {
		return s
	}
	picked := pickKind(p.HandTiles, kind, 1)
	if len(picked) == 0 {
		return s
	}
	tile := picked[0]

	pending := make(map[int32]*Operates)
	for offset := int32(1); offset < NP4; offset++ {
		other := GetNextSeat(seat, offset, NP4)
		op := s.Players[other]
		if DefaultHuCore.CheckBasicHu(append(slices.Clone(op.HandTiles), tile)) {
			pending[other] = NewOperates(OperatePass, OperateHu)
		}
	}

	next := s.Clone()
	if len(pending) == 0 {
		return next.completeBuKon(seat, tile)
	}
	next.CurTile = tile
	next.Window = &ClaimWindow{
		From:    seat,
		Tile:    tile,
		RobKon:  true,
		Pending: pending,
		Choices: make(map[int32]Action),
	}
	next.Status = StatusActionWindow
	return next
}

// completeBuKon 在已克隆的状态上落杠并补牌
func (s *GameState) completeBuKon(seat int32, tile Tile) *GameState {
	p := s.Players[seat]
	p.Kon(tile, seat, KonTypeBu)
	s.record(Action{Seat: seat, From: seat, Operate: OperateBuKon, Tile: tile})
	return s.afterKonDraw(seat)
}

// afterKonDraw 杠后从补牌端摸一张。杠上开花直接胡,
// 补完只剩海底则流局。
func (s *GameState) afterKonDraw(seat int32) *GameState {
	p := s.Players[seat]
	tile := s.drawReplacing(p)
	if tile == TileNull {
		return s.drawExhausted()
	}
	p.PutHandTile(tile)
	s.LastDrawn = tile
	s.Window = nil
	if IsHu(p.HandTiles) {
		return s.winZimo(seat, tile)
	}
	if len(s.Wall) <= s.Rule.DeadWall {
		return s.drawExhausted()
	}
	s.Status = StatusPlaying
	s.CurSeat = seat
	return s
}

func (s *GameState) submitClaim(seat int32, action Action) *GameState {
	if s.Window == nil {
		return s
	}
	ops, ok := s.Window.Pending[seat]
	if !ok {
		return s
	}
	if _, chosen := s.Window.Choices[seat]; chosen {
		return s
	}
	if action.Operate != OperatePass && !ops.HasOperate(action.Operate) {
		return s
	}
	if action.Operate == OperateChow && s.chowComboOf(ops, action.Extra) == nil {
		return s
	}

	next := s.Clone()
	action.Seat = seat
	action.From = next.Window.From
	next.Window.Choices[seat] = action
	if !next.Window.done() {
		return next
	}
	return next.resolveWindow()
}

// chowComboOf 按顺子最小牌种找对应搭子
func (s *GameState) chowComboOf(ops *Operates, left Tile) []Tile {
	tile := s.Window.Tile
	for _, combo := range ops.ChowCombos {
		low := tile.Kind()
		for _, t := range combo {
			if t.Kind() < low {
				low = t.Kind()
			}
		}
		if low == left.Kind() {
			return combo
		}
	}
	return nil
}

// resolveWindow 全员表态后裁决。多家要胡时按出牌者下家起的
// 座位顺序拦胡, 只胡一家。
func (s *GameState) resolveWindow() *GameState {
	w := s.Window
	from := w.From
	tile := w.Tile

	for offset := int32(1); offset < NP4; offset++ {
		seat := GetNextSeat(from, offset, NP4)
		if choice, ok := w.Choices[seat]; ok && choice.Operate == OperateHu {
			if w.RobKon {
				return s.winRobKon(seat, from, tile)
			}
			return s.winPao(seat, from, tile)
		}
	}

	if w.RobKon {
		s.Window = nil
		return s.completeBuKon(from, tile)
	}

	for seat, choice := range w.Choices {
		switch choice.Operate {
		case OperateZhiKon:
			return s.claimZhiKon(seat, from, tile)
		case OperatePon:
			return s.claimPon(seat, from, tile)
		}
	}
	for seat, choice := range w.Choices {
		if choice.Operate == OperateChow {
			return s.claimChow(seat, from, tile, choice.Extra)
		}
	}

	// 全过, 轮到出牌者下家摸牌
	s.Window = nil
	s.Status = StatusPlaying
	s.CurSeat = GetNextSeat(from, 1, NP4)
	s.LastDrawn = TileNull
	return s
}

func (s *GameState) claimPon(seat, from int32, tile Tile) *GameState {
	s.Players[from].RemoveOutTile()
	p := s.Players[seat]
	p.Pon(tile, from)
	s.record(Action{Seat: seat, From: from, Operate: OperatePon, Tile: tile})
	s.Window = nil
	s.Status = StatusPlaying
	s.CurSeat = seat
	s.LastDrawn = TileNull
	return s
}

func (s *GameState) claimZhiKon(seat, from int32, tile Tile) *GameState {
	s.Players[from].RemoveOutTile()
	p := s.Players[seat]
	p.Kon(tile, from, KonTypeZhi)
	s.record(Action{Seat: seat, From: from, Operate: OperateZhiKon, Tile: tile})
	return s.afterKonDraw(seat)
}

func (s *GameState) claimChow(seat, from int32, tile Tile, left Tile) *GameState {
	combo := s.chowComboOf(s.Window.Pending[seat], left)
	if combo == nil {
		s.Window = nil
		s.Status = StatusPlaying
		s.CurSeat = GetNextSeat(from, 1, NP4)
		return s
	}
	s.Players[from].RemoveOutTile()
	p := s.Players[seat]
	p.Chow(combo, tile, from)
	s.record(Action{Seat: seat, From: from, Operate: OperateChow, Tile: tile, Extra: left})
	s.Window = nil
	s.Status = StatusPlaying
	s.CurSeat = seat
	s.LastDrawn = TileNull
	return s
}

// winZimo 自摸(含天胡与杠上开花)
func (s *GameState) winZimo(seat int32, tile Tile) *GameState {
	s.Winner = seat
	s.WinType = WinTypeZimo
	s.PaoSeat = SeatNull
	s.WinTile = tile
	s.Window = nil
	s.record(Action{Seat: seat, From: seat, Operate: OperateHu, Tile: tile})
	return s.settle()
}

// winPao 荣胡, 胡牌那张从牌河收回并入手牌
func (s *GameState) winPao(seat, pao int32, tile Tile) *GameState {
	s.Players[pao].RemoveOutTile()
	s.Players[seat].PutHandTile(tile)
	s.Winner = seat
	s.WinType = WinTypePao
	s.PaoSeat = pao
	s.WinTile = tile
	s.Window = nil
	s.record(Action{Seat: seat, From: pao, Operate: OperateHu, Tile: tile})
	return s.settle()
}

// winRobKon 抢杠胡, 杠牌直接进胡家手牌, 杠不成立
func (s *GameState) winRobKon(seat, pao int32, tile Tile) *GameState {
	s.Players[pao].HandTiles = utils.RemoveAllElement(s.Players[pao].HandTiles, tile)
	s.Players[seat].PutHandTile(tile)
	s.Winner = seat
	s.WinType = WinTypePao
	s.PaoSeat = pao
	s.WinTile = tile
	s.Robbed = true
	s.Window = nil
	s.record(Action{Seat: seat, From: pao, Operate: OperateHu, Tile: tile})
	return s.settle()
}

func (s *GameState) drawExhausted() *GameState {
	next := s.Clone()
	next.Status = StatusDrawExhausted
	next.Liuju = true
	next.Window = nil
	next.LastDrawn = TileNull
	return next
}

// DealerRepeats 庄家是否连庄: 流局或庄家胡牌
func (s *GameState) DealerRepeats() bool {
	return s.Liuju || (s.Status == StatusHu && s.Winner == s.Dealer)
}

// NextDeal 按本局结果开下一局: 连庄则庄家不动连庄数加一,
// 否则下家坐庄, 北风位交庄时圈风进位。
func (s *GameState) NextDeal() *GameState {
	if s.Status != StatusHu && s.Status != StatusDrawExhausted {
		return s
	}
	next := &GameState{
		Rule:      s.Rule,
		Status:    StatusAwaitingStart,
		Dealer:    s.Dealer,
		RoundWind: s.RoundWind,
		CurSeat:   SeatNull,
		Winner:    SeatNull,
		PaoSeat:   SeatNull,
	}
	if s.DealerRepeats() {
		next.DealerStreak = s.DealerStreak + 1
	} else {
		next.Dealer = GetNextSeat(s.Dealer, 1, NP4)
		next.DealerStreak = 0
		if s.Dealer == NP4-1 {
			next.RoundWind = (s.RoundWind + 1) % NP4
		}
	}
	for seat := int32(0); seat < NP4; seat++ {
		old := s.Players[seat]
		p := NewPlayData(seat, old.Name, old.Bot, old.Score)
		if seat == next.Dealer {
			p.Streak = next.DealerStreak
		}
		next.Players[seat] = p
	}
	return next
}
