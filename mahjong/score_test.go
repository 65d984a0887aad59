package mahjong

import "testing"

func newSettledState() *GameState {
	return NewGameState(NewRule(), testNames, testBots)
}

func hasDetail(res *TaiResult, name string) bool {
	for _, d := range res.Details {
		if d.Name == name {
			return true
		}
	}
	return false
}

func Test_SettleRongFromDealer(t *testing.T) {
	s := newSettledState()
	s.Dealer = 0
	s.Winner = 1
	s.WinType = WinTypePao
	s.PaoSeat = 0
	s.Players[1].HandTiles = NamesToTiles("中,中,中,1万,2万,3万,4万,5万,6万,7万,8万,9万,1条,2条,3条,5筒,5筒")

	s = s.settle()
	res := s.Result
	// 胡庄家+红中+门清 = 3台
	if res.Tai != 3 {
		t.Fatalf("tai = %d, want 3: %+v", res.Tai, res.Details)
	}
	for _, name := range []string{"胡庄家", "红中", "门清"} {
		if !hasDetail(res, name) {
			t.Errorf("missing detail %s", name)
		}
	}
	want := [NP4]int64{-110, 110, 0, 0}
	if res.Deltas != want {
		t.Errorf("deltas = %v, want %v", res.Deltas, want)
	}
	if s.Players[1].Score != s.Rule.InitScore+110 {
		t.Errorf("winner score = %d", s.Players[1].Score)
	}
}

func Test_SettleZimoDealerSurcharge(t *testing.T) {
	s := newSettledState()
	s.Dealer = 0
	s.DealerStreak = 1
	s.Winner = 2
	s.WinType = WinTypeZimo
	s.Players[2].HandTiles = NamesToTiles("中,中,中,1万,2万,3万,4万,5万,6万,7万,8万,9万,1条,2条,3条,5筒,5筒")

	s = s.settle()
	res := s.Result
	// 红中+自摸+门清 = 3台
	if res.Tai != 3 {
		t.Fatalf("tai = %d, want 3: %+v", res.Tai, res.Details)
	}
	// 闲家自摸, 庄家那份加连庄附台 1x2+1=3
	want := [NP4]int64{-170, -110, 390, -110}
	if res.Deltas != want {
		t.Errorf("deltas = %v, want %v", res.Deltas, want)
	}
	var sum int64
	for _, d := range res.Deltas {
		sum += d
	}
	if sum != 0 {
		t.Errorf("deltas not zero-sum: %d", sum)
	}
}

func Test_SettleTaiFloor(t *testing.T) {
	s := newSettledState()
	s.Dealer = 0
	s.Winner = 1
	s.WinType = WinTypePao
	s.PaoSeat = 3
	p := s.Players[1]
	p.HandTiles = NamesToTiles("2万,3万,4万,5条,5条")
	p.ChowGroups = []ChowGroup{{ChowTile: NameToTile("6筒"), LeftTile: NameToTile("5筒"), From: 0}}

	s = s.settle()
	res := s.Result
	if res.Tai != 1 || !hasDetail(res, "底台") {
		t.Fatalf("tai = %d, want floor 1: %+v", res.Tai, res.Details)
	}
	want := [NP4]int64{0, 70, 0, -70}
	if res.Deltas != want {
		t.Errorf("deltas = %v, want %v", res.Deltas, want)
	}
}

func Test_SettleDealerZimoStreak(t *testing.T) {
	s := newSettledState()
	s.Dealer = 0
	s.DealerStreak = 2
	s.Winner = 0
	s.WinType = WinTypeZimo
	s.Players[0].HandTiles = NamesToTiles("1万,2万,3万,5筒,5筒")

	s = s.settle()
	res := s.Result
	// 庄家1+连2拉2=4+自摸1+门清1 = 7台
	if res.Tai != 7 {
		t.Fatalf("tai = %d, want 7: %+v", res.Tai, res.Details)
	}
	if !hasDetail(res, "庄家") || !hasDetail(res, "连2拉2") {
		t.Errorf("dealer streak details missing: %+v", res.Details)
	}
	want := [NP4]int64{570, -190, -190, -190}
	if res.Deltas != want {
		t.Errorf("deltas = %v, want %v", res.Deltas, want)
	}
}

func Test_CalculateTaiTriplets(t *testing.T) {
	s := newSettledState()
	s.Dealer = 0
	s.RoundWind = 0
	s.Winner = 1
	s.WinType = WinTypePao
	s.PaoSeat = 2
	p := s.Players[1]
	p.HandTiles = NamesToTiles("东,东,东,7筒,7筒")
	p.PonGroups = []Group{{Tile: NameToTile("中"), From: 3}}

	res := s.CalculateTai(1)
	// 东风圈+红中+碰碰胡 = 6台, 有碰不算门清
	if res.Tai != 6 {
		t.Fatalf("tai = %d, want 6: %+v", res.Tai, res.Details)
	}
	for _, name := range []string{"东风圈", "红中", "碰碰胡"} {
		if !hasDetail(res, name) {
			t.Errorf("missing detail %s", name)
		}
	}
	if hasDetail(res, "门清") {
		t.Error("pon breaks men qing")
	}
}
