package mahjong

import (
	"fmt"
	"maps"
	"math/rand"

	"github.com/spf13/viper"
)

// Manual 配牌器: 从yaml文件读取各家起手牌, 拼出一面确定的牌墙,
// 供调试与测试复现指定局面。
type Manual struct {
	vp *viper.Viper
}

func LoadManual(path string) *Manual {
	m := &Manual{vp: viper.New()}
	m.vp.SetConfigType("yaml")
	m.vp.SetConfigFile(path)
	if err := m.vp.ReadInConfig(); err != nil {
		return nil
	}
	return m
}

func (m *Manual) Enabled() bool {
	if m == nil {
		return false
	}
	return m.vp.GetBool("enable")
}

// BuildWall 按发牌次序砌墙: cards[0]是庄家起手, 依逆时针各家一组。
// 不足的张数从洗乱的余牌补齐, 墙头按每轮每家四张交错摆放,
// 使发牌后各家拿到的正是配好的那手牌。配牌超张时报错。
func (m *Manual) BuildWall(playerCount, bankerCount, normalCount int) ([]Tile, error) {
	cards := m.vp.GetStringSlice("cards")
	groups := make([][]Tile, playerCount)
	for i := 0; i < playerCount && i < len(cards); i++ {
		groups[i] = NamesToTiles(cards[i])
	}

	tmp := make(map[Tile]int)
	maps.Copy(tmp, AllTiles())
	for _, g := range groups {
		for _, t := range g {
			tmp[t]--
			if tmp[t] < 0 {
				return nil, fmt.Errorf("tile %s overflow", t.Name())
			}
		}
	}

	var rests []Tile
	for t, count := range tmp {
		if count > 0 {
			rests = append(rests, MakeTiles(t, count)...)
		}
	}
	m.shuffle(rests)

	for i := range groups {
		want := normalCount
		if i == 0 {
			want = bankerCount
		}
		if len(groups[i]) > want {
			return nil, fmt.Errorf("seat %d preset has %d tiles, want at most %d", i, len(groups[i]), want)
		}
		more := want - len(groups[i])
		groups[i] = append(groups[i], rests[:more]...)
		rests = rests[more:]
	}

	out := make([]Tile, 0, TotalTileCount)
	passes := normalCount / 4
	for pass := 0; pass < passes; pass++ {
		for i := range groups {
			out = append(out, groups[i][pass*4:pass*4+4]...)
		}
	}
	for i := range groups {
		out = append(out, groups[i][passes*4:]...)
	}
	out = append(out, rests...)

	// 重新编号copy位, 保证实体牌值唯一
	seen := make(map[Tile]int)
	for i, t := range out {
		kind := t.Kind()
		seen[kind]++
		out[i] = MakeCopyTile(t.Color(), t.Point(), seen[kind])
	}
	return out, nil
}

func (m *Manual) shuffle(s []Tile) {
	for i := len(s) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
