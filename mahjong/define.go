package mahjong

const (
	SeatNull int32 = -1
)

const (
	NP4 = 4
)

const (
	TileCountInitBanker = 17
	TileCountInitNormal = 16
	TotalTileCount      = 144
)

type EColor int

const (
	ColorUndefined EColor = -1
	ColorCharacter EColor = iota - 1 // 万
	ColorBamboo                      // 条
	ColorDot                         // 筒
	ColorWind                        // 风牌
	ColorDragon                      // 箭牌
	ColorFlower                      // 花牌
	ColorEnd
	ColorBegin = ColorCharacter
)

var PointCountByColor = [ColorEnd]int{9, 9, 9, 4, 3, 8}
var SameTileCountByColor = [ColorEnd]int{4, 4, 4, 4, 4, 1}
var KindBeginByColor = [ColorEnd]int{0, 9, 18, 27, 31, 34}

// KindCount 可成胡的牌种数(27数牌+4风+3箭), 花牌不参与
const KindCount = 34

type EStatus int32

// 骰子与结算不驻留状态: 掷完即进Dealing, 结算并入Hu/DrawExhausted
const (
	StatusAwaitingStart EStatus = iota
	StatusDealing
	StatusFlowerReplace
	StatusPlaying
	StatusActionWindow
	StatusHu
	StatusDrawExhausted
)

var statusNames = map[EStatus]string{
	StatusAwaitingStart: "AwaitingStart",
	StatusDealing:       "Dealing",
	StatusFlowerReplace: "FlowerReplace",
	StatusPlaying:       "Playing",
	StatusActionWindow:  "ActionWindow",
	StatusHu:            "Hu",
	StatusDrawExhausted: "DrawExhausted",
}

func (s EStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

type EWinType int32

const (
	WinTypeNone EWinType = iota
	WinTypeZimo          // 自摸
	WinTypePao           // 点炮(含抢杠)
)

type KonType int32

const (
	KonTypeNone KonType = -1 + iota
	KonTypeZhi          // 直杠(明杠别人打出的牌)
	KonTypeAn           // 暗杠
	KonTypeBu           // 补杠(碰后加杠)
)

type EGroupType int32

const (
	GroupTypeNone EGroupType = iota
	GroupTypeChow
	GroupTypePon
	GroupTypeZhiKon
	GroupTypeAnKon
	GroupTypeBuKon
)

func GetNextSeat(seat, step, seatCount int32) int32 {
	return (seat + step) % seatCount
}

// Action 一次操作记录, From为被响应的座位(自己操作时等于Seat)
type Action struct {
	Seat    int32 `json:"seat"`
	From    int32 `json:"from"`
	Operate int32 `json:"operate"`
	Tile    Tile  `json:"tile"`
	Extra   Tile  `json:"extra"`
}
