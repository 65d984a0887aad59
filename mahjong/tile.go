package mahjong

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	TileNull   Tile = -1
	TileInf    Tile = MakeTile(ColorEnd, 0)    // 无效牌
	TileZhong  Tile = MakeTile(ColorDragon, 0) // 中
	TileFa     Tile = MakeTile(ColorDragon, 1) // 发
	TileBai    Tile = MakeTile(ColorDragon, 2) // 白
	TileDong   Tile = MakeTile(ColorWind, 0)   // 东
	TileNan    Tile = MakeTile(ColorWind, 1)   // 南
	TileXi     Tile = MakeTile(ColorWind, 2)   // 西
	TileBei    Tile = MakeTile(ColorWind, 3)   // 北
	TileSpring Tile = MakeTile(ColorFlower, 0) // 春
	TileSummer Tile = MakeTile(ColorFlower, 1) // 夏
	TileAutumn Tile = MakeTile(ColorFlower, 2) // 秋
	TileWinter Tile = MakeTile(ColorFlower, 3) // 冬
	TileMei    Tile = MakeTile(ColorFlower, 4) // 梅
	TileLan    Tile = MakeTile(ColorFlower, 5) // 兰
	TileZhu    Tile = MakeTile(ColorFlower, 6) // 竹
	TileJu     Tile = MakeTile(ColorFlower, 7) // 菊
)

// 静态表
var singleTileMap = map[rune]Tile{
	// 风
	'东': TileDong,
	'南': TileNan,
	'西': TileXi,
	'北': TileBei,
	// 箭
	'中': TileZhong,
	'发': TileFa,
	'白': TileBai,
	// 花
	'春': TileSpring,
	'夏': TileSummer,
	'秋': TileAutumn,
	'冬': TileWinter,
	'梅': TileMei,
	'兰': TileLan,
	'竹': TileZhu,
	'菊': TileJu,
}

// 静态表：最后一个 rune -> 颜色
var lastRuneToColor = map[rune]EColor{
	'万': ColorCharacter,
	'条': ColorBamboo,
	'筒': ColorDot,
}

// Tile 按位编码: color<<8 | point<<4 | copy。copy为同种牌第几张(1~4)，
// 一副牌内每张实体牌的编码值唯一，用作出牌等操作的标识。
type Tile int32

func MakeTile(color EColor, point int) Tile {
	return Tile((int(color) << 8) | (point << 4) | 1)
}

// MakeCopyTile 生成指定第几张的实体牌
func MakeCopyTile(color EColor, point, copy int) Tile {
	return Tile((int(color) << 8) | (point << 4) | copy)
}

func (t Tile) Color() EColor {
	return EColor((t >> 8) & 0x0F)
}

func (t Tile) Point() int {
	return int((t >> 4) & 0x0F)
}

func (t Tile) Info() (EColor, int) {
	return t.Color(), t.Point()
}

func (t Tile) Copy() int {
	return int(t & 0x0F)
}

// Kind 抹去copy位, 得到牌种标识(同种四张归一)
func (t Tile) Kind() Tile {
	if !t.IsValid() {
		return t
	}
	return (t &^ 0x0F) | 1
}

// SameKind 是否同种牌(忽略第几张)
func (t Tile) SameKind(o Tile) bool {
	return t.Kind() == o.Kind()
}

// KindIndex 成胡牌种的序号(0~33), 花牌返回-1
func (t Tile) KindIndex() int {
	if !t.IsValid() || t.IsFlower() {
		return -1
	}
	return KindBeginByColor[t.Color()] + t.Point()
}

// KindFromIndex 序号转牌种
func KindFromIndex(idx int) Tile {
	for color := ColorBegin; color < ColorFlower; color++ {
		begin := KindBeginByColor[color]
		if idx < begin+PointCountByColor[color] {
			return MakeTile(color, idx-begin)
		}
	}
	return TileNull
}

func (t Tile) IsValid() bool {
	return t > 0 && t < TileInf
}

func (t Tile) IsSuit() bool { // 数牌
	return t.IsValid() && t.Color() >= ColorCharacter && t.Color() <= ColorDot
}

func (t Tile) IsHonor() bool { // 字牌
	return t.IsValid() && (t.Color() == ColorWind || t.Color() == ColorDragon)
}

func (t Tile) IsWind() bool {
	return t.IsValid() && t.Color() == ColorWind
}

func (t Tile) IsDragon() bool { // 箭牌
	return t.IsValid() && t.Color() == ColorDragon
}

func (t Tile) IsFlower() bool { // 花牌
	return t.IsValid() && t.Color() == ColorFlower
}

// IsTerminal 幺九牌
func (t Tile) IsTerminal() bool {
	return t.IsSuit() && (t.Point() == 0 || t.Point() == 8)
}

func (t Tile) Name() string {
	c, p := t.Info()
	switch c {
	case ColorCharacter:
		return strconv.Itoa(p+1) + "万"
	case ColorBamboo:
		return strconv.Itoa(p+1) + "条"
	case ColorDot:
		return strconv.Itoa(p+1) + "筒"
	case ColorWind:
		names := []string{"东", "南", "西", "北"}
		return names[p]
	case ColorDragon:
		names := []string{"中", "发", "白"}
		return names[p]
	case ColorFlower:
		names := []string{"春", "夏", "秋", "冬", "梅", "兰", "竹", "菊"}
		return names[p]
	default:
		return ""
	}
}

func (t Tile) ToInt32() int32 {
	return int32(t)
}

func TilesName(tiles []Tile) string {
	var tileNames []string
	for _, tile := range tiles {
		tileNames = append(tileNames, tile.Name())
	}
	return strings.Join(tileNames, ", ")
}

func TilesInt32(tiles []Tile) []int32 {
	res := make([]int32, len(tiles))
	for i, t := range tiles {
		res[i] = int32(t)
	}
	return res
}

func Int32Tile(tiles []int32) []Tile {
	res := make([]Tile, len(tiles))
	for i, t := range tiles {
		res[i] = Tile(t)
	}
	return res
}

// NamesToTiles 逗号分隔的牌名转牌种列表, 供测试与配牌文件使用
func NamesToTiles(names string) []Tile {
	parts := strings.Split(names, ",")
	res := make([]Tile, len(parts))
	for i, name := range parts {
		res[i] = NameToTile(strings.TrimSpace(name))
	}
	return res
}

func NameToTile(name string) Tile {
	if name == "" {
		return TileNull
	}

	if r, size := utf8.DecodeRuneInString(name); size == len(name) {
		if t, ok := singleTileMap[r]; ok {
			return t
		}
		return TileNull
	}

	r, size := utf8.DecodeLastRuneInString(name)
	color, ok := lastRuneToColor[r]
	if !ok {
		return TileNull
	}
	prefix := name[:len(name)-size]
	num, err := strconv.Atoi(prefix)
	if err != nil || num < 1 || num > 9 {
		return TileNull
	}
	return MakeTile(color, num-1)
}

func MakeTiles(t Tile, count int) []Tile {
	if count <= 0 {
		return []Tile{}
	}
	res := make([]Tile, count)
	for i := range res {
		res[i] = t
	}
	return res
}
