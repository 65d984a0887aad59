package mahjong

import (
	"fmt"
)

// TaiDetail 一项台数明细
type TaiDetail struct {
	Name string `json:"name"`
	Tai  int32  `json:"tai"`
}

// TaiResult 一局的算台与分数变动
type TaiResult struct {
	Seat    int32       `json:"seat"` // 胡家
	Tai     int32       `json:"tai"`
	Details []TaiDetail `json:"details"`
	Deltas  [NP4]int64  `json:"deltas"`
}

var windNames = [NP4]string{"东", "南", "西", "北"}

// CalculateTai 算胡家台数。庄家相关台只在庄家胡或放炮给庄家时
// 计入; 闲家自摸对庄家的附加在结算时单独处理。
func (s *GameState) CalculateTai(winner int32) *TaiResult {
	res := &TaiResult{Seat: winner}
	p := s.Players[winner]
	add := func(name string, tai int32) {
		res.Tai += tai
		res.Details = append(res.Details, TaiDetail{Name: name, Tai: tai})
	}

	if winner == s.Dealer {
		add("庄家", 1)
		if s.DealerStreak > 0 {
			add(fmt.Sprintf("连%d拉%d", s.DealerStreak, s.DealerStreak), s.DealerStreak*2)
		}
	} else if s.WinType == WinTypePao && s.PaoSeat == s.Dealer {
		add("胡庄家", 1)
		if s.DealerStreak > 0 {
			add(fmt.Sprintf("拉庄(%d)", s.DealerStreak), s.DealerStreak*2)
		}
	}

	if p.HasTripletOf(MakeTile(ColorWind, int(s.RoundWind))) {
		add(windNames[s.RoundWind]+"风圈", 1)
	}
	seatWind := (winner - s.Dealer + NP4) % NP4
	if p.HasTripletOf(MakeTile(ColorWind, int(seatWind))) {
		add("门风"+windNames[seatWind], 1)
	}

	dragonNames := []string{"红中", "青发", "白板"}
	for point := 0; point < PointCountByColor[ColorDragon]; point++ {
		if p.HasTripletOf(MakeTile(ColorDragon, point)) {
			add(dragonNames[point], 1)
		}
	}

	if s.WinType == WinTypeZimo {
		add("自摸", 1)
	}
	if s.Robbed {
		add("抢杠", 1)
	}
	if p.IsMenQing() {
		add("门清", 1)
	}
	anKon := int32(0)
	for _, group := range p.KonGroups {
		if group.Type == KonTypeAn {
			anKon++
		}
	}
	if anKon > 0 {
		add(fmt.Sprintf("暗杠(%d)", anKon), anKon)
	}
	if s.isPengPeng(p) {
		add("碰碰胡", 4)
	}

	if res.Tai == 0 {
		add("底台", 1)
	}
	return res
}

// isPengPeng 没有吃且手牌每种都是将或刻
func (s *GameState) isPengPeng(p *PlayData) bool {
	if len(p.ChowGroups) > 0 {
		return false
	}
	counts := make(map[Tile]int)
	for _, t := range p.HandTiles {
		counts[t.Kind()]++
	}
	for _, count := range counts {
		if count != 2 && count != 3 && count != 4 {
			return false
		}
	}
	return true
}

// settle 结算分数。荣胡放炮者独付; 自摸三家各付,
// 闲家自摸时庄家那份按连庄数加台。付出=底分+台数x台分。
func (s *GameState) settle() *GameState {
	s.Status = StatusHu
	res := s.CalculateTai(s.Winner)
	base, taiScore := s.Rule.BaseScore, s.Rule.TaiScore

	switch s.WinType {
	case WinTypeZimo:
		streakBonus := int64(s.DealerStreak)*2 + 1
		for seat := int32(0); seat < NP4; seat++ {
			if seat == s.Winner {
				continue
			}
			tai := int64(res.Tai)
			if s.Winner != s.Dealer && seat == s.Dealer {
				tai += streakBonus
			}
			amount := base + tai*taiScore
			res.Deltas[seat] -= amount
			res.Deltas[s.Winner] += amount
		}
	case WinTypePao:
		amount := base + int64(res.Tai)*taiScore
		res.Deltas[s.PaoSeat] -= amount
		res.Deltas[s.Winner] += amount
	}

	for seat := int32(0); seat < NP4; seat++ {
		p := s.Players[seat]
		p.RoundDelta = res.Deltas[seat]
		p.Score += res.Deltas[seat]
	}
	s.Result = res
	return s
}
