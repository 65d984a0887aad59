package mahjong

import (
	"math/rand"
)

// AllTiles 整副牌的种类与张数(27数牌+4风+3箭各4张, 8花各1张, 共144)
func AllTiles() map[Tile]int {
	tiles := make(map[Tile]int)
	for color := ColorBegin; color < ColorEnd; color++ {
		for point := 0; point < PointCountByColor[color]; point++ {
			tiles[MakeTile(color, point)] = SameTileCountByColor[color]
		}
	}
	return tiles
}

// NewWall 洗出一面新牌墙。同种牌按copy位编号, 保证每张实体牌值唯一。
// 填充与随机化同步进行(插入随机位置)。
func NewWall() []Tile {
	wall := make([]Tile, 0, TotalTileCount)
	for color := ColorBegin; color < ColorEnd; color++ {
		for point := 0; point < PointCountByColor[color]; point++ {
			for copy := 1; copy <= SameTileCountByColor[color]; copy++ {
				wall = append(wall, MakeCopyTile(color, point, copy))
			}
		}
	}

	for i := len(wall) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		wall[i], wall[j] = wall[j], wall[i]
	}
	return wall
}

// drawFront 摸牌端
func (s *GameState) drawFront() Tile {
	if len(s.Wall) == 0 {
		return TileNull
	}
	tile := s.Wall[0]
	s.Wall = s.Wall[1:]
	return tile
}

// drawBack 补牌端(杠与补花)
func (s *GameState) drawBack() Tile {
	if len(s.Wall) == 0 {
		return TileNull
	}
	tile := s.Wall[len(s.Wall)-1]
	s.Wall = s.Wall[:len(s.Wall)-1]
	return tile
}

// dealTiles 从摸牌端连取count张
func (s *GameState) dealTiles(count int) []Tile {
	if count > len(s.Wall) {
		count = len(s.Wall)
	}
	tiles := make([]Tile, count)
	copy(tiles, s.Wall[:count])
	s.Wall = s.Wall[count:]
	return tiles
}

// drawReplacing 从补牌端取一张, 花牌落入花牌堆并继续补
func (s *GameState) drawReplacing(p *PlayData) Tile {
	tile := s.drawBack()
	for tile.IsFlower() {
		p.Flowers = append(p.Flowers, tile)
		tile = s.drawBack()
	}
	return tile
}
