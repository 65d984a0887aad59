package mahjong

import "slices"

// CheckerSelf 摸牌后自身操作的检查接口
type CheckerSelf interface {
	Check(s *GameState, opt *Operates)
}

// CheckerWait 响应别家出牌的检查接口
type CheckerWait interface {
	Check(s *GameState, seat int32, opt *Operates)
}

type CheckerZimo struct{}    // 自摸检查器
type CheckerSelfKon struct{} // 暗杠加杠检查器
type CheckerTing struct{}    // 听检查器

type CheckerPao struct{}    // 点炮检查器
type CheckerPon struct{}    // 碰牌检查器
type CheckerZhiKon struct{} // 直杠检查器
type CheckerChow struct{}   // 吃牌检查器

var selfCheckers = []CheckerSelf{
	&CheckerZimo{},
	&CheckerSelfKon{},
	&CheckerTing{},
}

var waitCheckers = []CheckerWait{
	&CheckerPao{},
	&CheckerPon{},
	&CheckerZhiKon{},
	&CheckerChow{},
}

func (c *CheckerZimo) Check(s *GameState, opt *Operates) {
	if IsHu(s.Players[s.CurSeat].HandTiles) {
		opt.AddOperate(OperateHu)
	}
}

func (c *CheckerSelfKon) Check(s *GameState, opt *Operates) {
	playData := s.Players[s.CurSeat]
	if playData.Ting {
		return
	}
	if kinds := playData.anKonKinds(); len(kinds) > 0 {
		opt.AddOperate(OperateAnKon)
		opt.AnKonTiles = kinds
	}
	if kinds := playData.buKonKinds(); len(kinds) > 0 {
		opt.AddOperate(OperateBuKon)
		opt.BuKonTiles = kinds
	}
}

func (c *CheckerTing) Check(s *GameState, opt *Operates) {
	playData := s.Players[s.CurSeat]
	if playData.Ting {
		return
	}
	if CanTing(playData.HandTiles) {
		opt.AddOperate(OperateTing)
	}
}

func (c *CheckerPao) Check(s *GameState, seat int32, opt *Operates) {
	playData := s.Players[seat]
	if DefaultHuCore.CheckBasicHu(append(slices.Clone(playData.HandTiles), s.CurTile)) {
		opt.AddOperate(OperateHu)
	}
}

func (c *CheckerPon) Check(s *GameState, seat int32, opt *Operates) {
	playData := s.Players[seat]
	if playData.Ting {
		return
	}
	if playData.canPon(s.CurTile) {
		opt.AddOperate(OperatePon)
	}
}

func (c *CheckerZhiKon) Check(s *GameState, seat int32, opt *Operates) {
	playData := s.Players[seat]
	if playData.Ting {
		return
	}
	if playData.canKon(s.CurTile, KonTypeZhi) {
		opt.AddOperate(OperateZhiKon)
	}
}

func (c *CheckerChow) Check(s *GameState, seat int32, opt *Operates) {
	playData := s.Players[seat]
	if playData.Ting {
		return
	}
	if GetNextSeat(s.CurSeat, 1, NP4) != seat {
		return
	}
	if combos := playData.chowCombos(s.CurTile); len(combos) > 0 {
		opt.AddOperate(OperateChow)
		opt.ChowCombos = combos
	}
}
