package mahjong

const (
	OperateNone       int32 = 0               // 无操作
	OperatePass       int32 = 1 << (iota - 1) // 过  1<<0 = 1
	OperateChow                               // 吃  1<<1 = 2
	OperatePon                                // 碰  1<<2 = 4
	OperateZhiKon                             // 直杠 1<<3 = 8
	OperateAnKon                              // 暗杠 1<<4 = 16
	OperateBuKon                              // 补杠 1<<5 = 32
	OperateTing                               // 听  1<<6 = 64
	OperateCancelTing                         // 取消听 1<<7 = 128
	OperateHu                                 // 胡  1<<8 = 256
	OperateDiscard                            // 出牌 1<<9 = 512
	OperateDraw                               // 摸牌 1<<10 = 1024
)

var OperateNames = map[int32]string{
	OperatePass:       "Pass",
	OperateChow:       "Chow",
	OperatePon:        "Pon",
	OperateZhiKon:     "MingKong",
	OperateAnKon:      "AnKong",
	OperateBuKon:      "JiaKong",
	OperateTing:       "Ting",
	OperateCancelTing: "CancelTing",
	OperateHu:         "Hu",
	OperateDiscard:    "Discard",
	OperateDraw:       "Draw",
}

var OperateIDs = map[string]int32{
	"Pass":       OperatePass,
	"Chow":       OperateChow,
	"Pon":        OperatePon,
	"MingKong":   OperateZhiKon,
	"AnKong":     OperateAnKon,
	"JiaKong":    OperateBuKon,
	"Ting":       OperateTing,
	"CancelTing": OperateCancelTing,
	"Hu":         OperateHu,
	"Discard":    OperateDiscard,
	"Draw":       OperateDraw,
}

// Operates 一个座位当前可做的操作集合
type Operates struct {
	Value      int32
	ChowCombos [][]Tile // 每个组合为搭子两张(牌种)
	AnKonTiles []Tile   // 可暗杠的牌种
	BuKonTiles []Tile   // 可补杠的牌种
}

func NewOperates(ops ...int32) *Operates {
	o := &Operates{}
	for _, op := range ops {
		o.AddOperate(op)
	}
	return o
}

func (o *Operates) AddOperate(op int32) {
	o.Value |= op
}

func (o *Operates) AddOperates(ops *Operates) {
	o.Value |= ops.Value
}

func (o *Operates) RemoveOperate(op int32) {
	o.Value &= ^op
}

func (o *Operates) HasOperate(op int32) bool {
	return (o.Value & op) != 0
}

func (o *Operates) Reset() {
	o.Value = 0
}

func GetOperateName(operate int32) string {
	if name, ok := OperateNames[operate]; ok {
		return name
	}
	return ""
}

func GetOperateID(name string) int32 {
	if id, ok := OperateIDs[name]; ok {
		return id
	}
	return OperateNone
}
