package bot

import (
	"testing"

	"github.com/kevin-chtw/tw_mj16/mahjong"
	"github.com/stretchr/testify/assert"
)

var names = [mahjong.NP4]string{"甲", "乙", "丙", "丁"}

func playingState(t *testing.T) *mahjong.GameState {
	t.Helper()
	s := mahjong.NewGameState(mahjong.NewRule(), names, [mahjong.NP4]bool{})
	s.Status = mahjong.StatusPlaying
	s.CurSeat = 0
	s.Wall = mahjong.NewWall()
	return s
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, Easy, ParseDifficulty("easy"))
	assert.Equal(t, Hard, ParseDifficulty("hard"))
	assert.Equal(t, Medium, ParseDifficulty(""))
	assert.Equal(t, Medium, ParseDifficulty("nightmare"))
}

func TestEvaluateOrdering(t *testing.T) {
	ai := New(Hard)
	shaped := ai.evaluate(kindCounts(mahjong.NamesToTiles("1万,2万,3万,5条,5条")))
	ragged := ai.evaluate(kindCounts(mahjong.NamesToTiles("1万,9万,东,西,中")))
	assert.Greater(t, shaped, ragged, "a set and a pair must outscore isolated terminals and honors")

	pair := ai.evaluate(kindCounts(mahjong.NamesToTiles("5条,5条")))
	partial := ai.evaluate(kindCounts(mahjong.NamesToTiles("5条,6条")))
	assert.Greater(t, pair, partial)
}

func TestDecideDiscardEasy(t *testing.T) {
	s := playingState(t)
	s.Players[0].HandTiles = mahjong.NamesToTiles("1万,4条,7筒,东,中")
	ai := New(Easy)
	for i := 0; i < 10; i++ {
		tile := ai.DecideDiscard(s, 0)
		assert.Contains(t, s.Players[0].HandTiles, tile)
	}
}

func TestDecideDiscardKeepsTing(t *testing.T) {
	s := playingState(t)
	hand := mahjong.NamesToTiles("1万,2万,3万,5条,5条,6条,7条,8条")
	s.Players[0].HandTiles = hand

	choices := mahjong.CheckTing(hand)
	assert.NotEmpty(t, choices)
	valid := make(map[mahjong.Tile]bool)
	for _, c := range choices {
		valid[c.Discard.Kind()] = true
	}

	ai := New(Hard)
	tile := ai.DecideDiscard(s, 0)
	assert.Contains(t, hand, tile)
	assert.True(t, valid[tile.Kind()], "discard %s must keep the hand ready", tile.Name())
}

func TestDecideDiscardAvoidsLoneHonor(t *testing.T) {
	s := playingState(t)
	s.Players[0].HandTiles = mahjong.NamesToTiles("2万,3万,4万,6条,7条,9筒,5筒,白")
	ai := New(Hard)
	tile := ai.DecideDiscard(s, 0)
	assert.True(t, tile.SameKind(mahjong.NameToTile("白")), "got %s", tile.Name())
}

func TestShouldPon(t *testing.T) {
	ai := New(Hard)
	assert.True(t, ai.shouldPon(mahjong.NamesToTiles("5万,5万,1条,9筒"), mahjong.NameToTile("5万")))
	assert.False(t, ai.shouldPon(mahjong.NamesToTiles("5万,5万,5万"), mahjong.NameToTile("5万")),
		"breaking a concealed triplet for a pon is never worth the threshold")
}

func TestDecideSelfHu(t *testing.T) {
	s := playingState(t)
	s.Players[0].HandTiles = mahjong.NamesToTiles("1万,2万,3万,7筒,7筒")
	ai := New(Medium)
	action := ai.DecideSelf(s, 0)
	assert.Equal(t, mahjong.OperateHu, action.Operate)
}

func TestDecideSelfAnKon(t *testing.T) {
	s := playingState(t)
	s.Players[0].HandTiles = append(
		mahjong.MakeTiles(mahjong.NameToTile("9筒"), 4),
		mahjong.NamesToTiles("1万,4条,东,西")...)
	ai := New(Medium)
	action := ai.DecideSelf(s, 0)
	assert.Equal(t, mahjong.OperateAnKon, action.Operate)
	assert.True(t, action.Tile.SameKind(mahjong.NameToTile("9筒")))
}

func TestDecideClaim(t *testing.T) {
	s := playingState(t)
	s.Players[0].HandTiles = mahjong.NamesToTiles("1万,1万")
	s.Players[2].HandTiles = mahjong.NamesToTiles("2万,3万,7筒,7筒")
	s = s.Discard(0, s.Players[0].HandTiles[0])
	assert.Equal(t, mahjong.StatusActionWindow, s.Status)

	ai := New(Medium)
	assert.Equal(t, mahjong.OperateHu, ai.DecideClaim(s, 2).Operate)
	assert.Equal(t, mahjong.OperatePass, ai.DecideClaim(s, 3).Operate)
}
