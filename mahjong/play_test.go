package mahjong

import (
	"testing"
)

var testNames = [NP4]string{"甲", "乙", "丙", "丁"}
var testBots = [NP4]bool{}

func totalTiles(s *GameState) int {
	total := s.Remaining()
	for _, p := range s.Players {
		total += p.TileCount()
	}
	return total
}

func Test_DealShape(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s = s.RollDice()
	if s.Status != StatusDealing {
		t.Fatalf("status after dice = %v", s.Status)
	}
	if s.Dealer < 0 || s.Dealer >= NP4 {
		t.Fatalf("dealer = %d", s.Dealer)
	}
	for _, d := range s.Dice {
		if d < 1 || d > 6 {
			t.Errorf("die = %d", d)
		}
	}

	s = s.Deal(nil)
	if s.Status != StatusFlowerReplace {
		t.Fatalf("status after deal = %v", s.Status)
	}
	for seat := int32(0); seat < NP4; seat++ {
		want := TileCountInitNormal
		if seat == s.Dealer {
			want = TileCountInitBanker
		}
		if got := len(s.Players[seat].HandTiles); got != want {
			t.Errorf("seat %d hand = %d, want %d", seat, got, want)
		}
	}
	if s.Remaining() != TotalTileCount-TileCountInitBanker-3*TileCountInitNormal {
		t.Errorf("wall = %d, want 79", s.Remaining())
	}
	if totalTiles(s) != TotalTileCount {
		t.Errorf("total tiles = %d, want %d", totalTiles(s), TotalTileCount)
	}

	// 每张实体牌值唯一
	seen := make(map[Tile]bool)
	count := s.Remaining()
	for _, tile := range s.Wall {
		seen[tile] = true
	}
	for _, p := range s.Players {
		count += len(p.HandTiles)
		for _, tile := range p.HandTiles {
			seen[tile] = true
		}
	}
	if len(seen) != count {
		t.Errorf("duplicate tile identities: %d distinct of %d", len(seen), count)
	}
}

func Test_ReplaceFlowers(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s = s.RollDice().Deal(nil).ReplaceFlowers()

	if s.Status == StatusHu {
		// 天胡, 庄家直接自摸
		if s.Winner != s.Dealer || s.WinType != WinTypeZimo {
			t.Fatalf("heaven win recorded wrong: winner %d type %v", s.Winner, s.WinType)
		}
		return
	}
	if s.Status != StatusPlaying || s.CurSeat != s.Dealer {
		t.Fatalf("status %v curSeat %d dealer %d", s.Status, s.CurSeat, s.Dealer)
	}
	for seat, p := range s.Players {
		for _, tile := range p.HandTiles {
			if tile.IsFlower() {
				t.Errorf("seat %d still holds flower %s", seat, tile.Name())
			}
		}
	}
	if totalTiles(s) != TotalTileCount {
		t.Errorf("total tiles = %d, want %d", totalTiles(s), TotalTileCount)
	}
}

func Test_ClaimPriorityHuOverPon(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s.Status = StatusPlaying
	s.Dealer = 0
	s.CurSeat = 0
	s.Players[0].HandTiles = NamesToTiles("1万,1万")
	s.Players[1].HandTiles = NamesToTiles("1万,1万,2筒,5条")
	s.Players[2].HandTiles = NamesToTiles("2万,3万,7筒,7筒")

	before := totalTiles(s)
	tile := s.Players[0].HandTiles[0]
	s2 := s.Discard(0, tile)
	if s2 == s {
		t.Fatal("discard rejected")
	}
	if s2.Status != StatusActionWindow {
		t.Fatalf("status = %v, want ActionWindow", s2.Status)
	}
	if !s2.WaitOperates(1).HasOperate(OperatePon) {
		t.Error("seat 1 should be offered pon")
	}
	if !s2.WaitOperates(2).HasOperate(OperateHu) {
		t.Error("seat 2 should be offered hu")
	}
	if s2.WaitOperates(3) != nil {
		t.Error("seat 3 has nothing to do")
	}

	s3 := s2.Submit(1, Action{Operate: OperatePon, Tile: tile})
	if s3.Status != StatusActionWindow {
		t.Fatal("window should wait for all answers")
	}
	s4 := s3.Submit(2, Action{Operate: OperateHu})
	if s4.Status != StatusHu {
		t.Fatalf("status = %v, want Hu", s4.Status)
	}
	if s4.Winner != 2 || s4.WinType != WinTypePao || s4.PaoSeat != 0 {
		t.Errorf("winner %d type %v pao %d", s4.Winner, s4.WinType, s4.PaoSeat)
	}
	if len(s4.Players[1].PonGroups) != 0 {
		t.Error("pon must lose to hu")
	}
	if len(s4.Players[0].OutTiles) != 0 {
		t.Error("winning tile should leave the river")
	}
	if len(s4.Players[2].HandTiles) != 5 {
		t.Errorf("winner hand = %d, want 5", len(s4.Players[2].HandTiles))
	}
	if totalTiles(s4) != before {
		t.Errorf("tiles not conserved: %d -> %d", before, totalTiles(s4))
	}
}

func Test_ClaimAllPass(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s.Status = StatusPlaying
	s.Dealer = 0
	s.CurSeat = 0
	s.Players[0].HandTiles = NamesToTiles("1万,1万")
	s.Players[1].HandTiles = NamesToTiles("1万,1万,2筒,5条")

	tile := s.Players[0].HandTiles[0]
	s2 := s.Discard(0, tile).Submit(1, Action{Operate: OperatePass})
	if s2.Status != StatusPlaying || s2.CurSeat != 1 {
		t.Errorf("status %v curSeat %d, want Playing/1", s2.Status, s2.CurSeat)
	}
	if len(s2.Players[0].OutTiles) != 1 {
		t.Error("discard stays in the river after passes")
	}
}

func Test_IllegalIntents(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	if s.Draw() != s {
		t.Error("draw before start must be a no-op")
	}
	s.Status = StatusPlaying
	s.CurSeat = 0
	s.Players[0].HandTiles = NamesToTiles("1万,2筒")

	if s.Discard(1, s.Players[0].HandTiles[0]) != s {
		t.Error("off-turn discard must be a no-op")
	}
	if s.Discard(0, NameToTile("9筒")) != s {
		t.Error("discarding a tile not in hand must be a no-op")
	}
	if s.Submit(0, Action{Operate: OperateHu}) != s {
		t.Error("hu without a winning hand must be a no-op")
	}
	if s.Submit(0, Action{Operate: OperateAnKon, Tile: NameToTile("1万")}) != s {
		t.Error("ankon without four tiles must be a no-op")
	}
}

func Test_TingAutoDiscard(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s.Status = StatusPlaying
	s.Dealer = 0
	s.CurSeat = 0
	s.Players[0].HandTiles = NamesToTiles("1万,2万,3万,7筒")
	s.Players[0].Ting = true
	wall := make([]Tile, 0, 20)
	for _, name := range []string{"9条", "9筒", "1条", "东", "南"} {
		wall = append(wall, MakeTiles(NameToTile(name), 4)...)
	}
	s.Wall = wall

	s2 := s.Draw()
	if s2 == s {
		t.Fatal("draw rejected")
	}
	p := s2.Players[0]
	if len(p.HandTiles) != 4 {
		t.Errorf("hand = %d, want 4 after auto discard", len(p.HandTiles))
	}
	if len(p.OutTiles) != 1 || !p.OutTiles[0].SameKind(NameToTile("9条")) {
		t.Errorf("river = [%s], want the drawn 9条", TilesName(p.OutTiles))
	}
	if s2.CurSeat != 1 || s2.Status != StatusPlaying {
		t.Errorf("status %v curSeat %d, want Playing/1", s2.Status, s2.CurSeat)
	}
}

func Test_TingAutoSelectsDiscard(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s.Status = StatusPlaying
	s.Dealer = 0
	s.CurSeat = 0
	hand := NamesToTiles("1万,2万,3万,5条,5条,6条,7条,8条")
	s.Players[0].HandTiles = hand

	best := CheckTing(hand)[0].Discard
	s2 := s.Submit(0, Action{Operate: OperateTing})
	if s2 == s {
		t.Fatal("ting without a tile should pick one, not reject")
	}
	p := s2.Players[0]
	if !p.Ting {
		t.Fatal("ting flag not set")
	}
	if len(p.OutTiles) != 1 || !p.OutTiles[0].SameKind(best) {
		t.Errorf("discarded %s, want the top ting choice %s", TilesName(p.OutTiles), best.Name())
	}

	// 不能听的手牌连默认选择也没有
	s.Players[0].HandTiles = NamesToTiles("1万,4条,7筒,东,中")
	if s.Submit(0, Action{Operate: OperateTing}) != s {
		t.Error("ting with no ready discard must be a no-op")
	}
}

func Test_TingZimoOnDraw(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s.Status = StatusPlaying
	s.Dealer = 0
	s.CurSeat = 0
	s.Players[0].HandTiles = NamesToTiles("1万,2万,3万,7筒")
	s.Players[0].Ting = true
	wall := MakeTiles(NameToTile("7筒"), 1)
	wall = append(wall, MakeTiles(NameToTile("9条"), 17)...)
	s.Wall = wall

	s2 := s.Draw()
	if s2.Status != StatusHu || s2.Winner != 0 || s2.WinType != WinTypeZimo {
		t.Fatalf("status %v winner %d type %v, want zimo win", s2.Status, s2.Winner, s2.WinType)
	}
}

func Test_RobKong(t *testing.T) {
	build := func() *GameState {
		s := NewGameState(NewRule(), testNames, testBots)
		s.Status = StatusPlaying
		s.Dealer = 0
		s.CurSeat = 0
		s.Players[0].HandTiles = NamesToTiles("5万,3条,4条,5条,9筒")
		s.Players[0].PonGroups = []Group{{Tile: NameToTile("5万"), From: 1}}
		s.Players[2].HandTiles = NamesToTiles("3万,4万,6条,6条")
		wall := make([]Tile, 0, 20)
		for _, name := range []string{"9条", "9筒", "1条", "东", "南"} {
			wall = append(wall, MakeTiles(NameToTile(name), 4)...)
		}
		s.Wall = wall
		return s
	}

	s := build().Submit(0, Action{Operate: OperateBuKon, Tile: NameToTile("5万")})
	if s.Status != StatusActionWindow || s.Window == nil || !s.Window.RobKon {
		t.Fatalf("expected rob-kong window, status %v", s.Status)
	}
	if s.WaitOperates(2) == nil || !s.WaitOperates(2).HasOperate(OperateHu) {
		t.Fatal("seat 2 should be offered the rob")
	}

	t.Run("rob", func(t *testing.T) {
		win := s.Submit(2, Action{Operate: OperateHu})
		if win.Status != StatusHu || win.Winner != 2 || !win.Robbed {
			t.Fatalf("status %v winner %d robbed %v", win.Status, win.Winner, win.Robbed)
		}
		if win.PaoSeat != 0 {
			t.Errorf("pao seat = %d, want 0", win.PaoSeat)
		}
		if len(win.Players[0].KonGroups) != 0 || len(win.Players[0].PonGroups) != 1 {
			t.Error("robbed kong must not complete")
		}
		if len(win.Players[2].HandTiles) != 5 {
			t.Errorf("winner hand = %d, want 5", len(win.Players[2].HandTiles))
		}
		found := false
		for _, d := range win.Result.Details {
			if d.Name == "抢杠" {
				found = true
			}
		}
		if !found {
			t.Error("rob-kong tai missing")
		}
		// 胡庄家+门清+抢杠 = 3台, 110分只从放杠的庄家扣
		want := [NP4]int64{-110, 0, 110, 0}
		if win.Result.Deltas != want {
			t.Errorf("deltas = %v, want %v", win.Result.Deltas, want)
		}
	})

	t.Run("pass", func(t *testing.T) {
		pass := s.Submit(2, Action{Operate: OperatePass})
		p := pass.Players[0]
		if len(p.KonGroups) != 1 || p.KonGroups[0].Type != KonTypeBu {
			t.Fatal("kong should complete after all passes")
		}
		if len(p.PonGroups) != 0 {
			t.Error("pon must upgrade into the kong")
		}
		if len(p.HandTiles) != 5 {
			t.Errorf("hand = %d, want 5 after replacement", len(p.HandTiles))
		}
		if pass.Status != StatusPlaying || pass.CurSeat != 0 {
			t.Errorf("status %v curSeat %d, want Playing/0", pass.Status, pass.CurSeat)
		}
	})
}

func Test_DrawExhausted(t *testing.T) {
	rule := NewRule()
	s := NewGameState(rule, testNames, testBots)
	s.Status = StatusPlaying
	s.Dealer = 2
	s.CurSeat = 0
	s.Players[0].HandTiles = NamesToTiles("1万")
	s.Wall = MakeTiles(NameToTile("9条"), rule.DeadWall)

	s2 := s.Draw()
	if s2.Status != StatusDrawExhausted || !s2.Liuju {
		t.Fatalf("status %v liuju %v", s2.Status, s2.Liuju)
	}
	if !s2.DealerRepeats() {
		t.Error("dealer must repeat on exhausted draw")
	}
	nd := s2.NextDeal()
	if nd.Dealer != 2 || nd.DealerStreak != 1 {
		t.Errorf("dealer %d streak %d, want 2/1", nd.Dealer, nd.DealerStreak)
	}
	if nd.Status != StatusAwaitingStart {
		t.Errorf("status = %v", nd.Status)
	}
}

func Test_NextDealRotation(t *testing.T) {
	s := NewGameState(NewRule(), testNames, testBots)
	s.Status = StatusHu
	s.Dealer = 3
	s.Winner = 1
	s.RoundWind = 0
	s.Players[1].Score = 1200

	nd := s.NextDeal()
	if nd.Dealer != 0 {
		t.Errorf("dealer = %d, want 0", nd.Dealer)
	}
	if nd.RoundWind != 1 {
		t.Errorf("round wind = %d, want 1 after wrap", nd.RoundWind)
	}
	if nd.DealerStreak != 0 {
		t.Errorf("streak = %d, want 0", nd.DealerStreak)
	}
	if nd.Players[1].Score != 1200 {
		t.Error("scores must carry across deals")
	}
	if len(nd.Players[1].HandTiles) != 0 || nd.Players[1].Ting {
		t.Error("per-deal state must reset")
	}
}
