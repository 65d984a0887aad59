package game

import (
	"github.com/google/uuid"
)

const (
	PlayerStatusUnEnter = iota // 玩家状态：未进入
	PlayerStatusEnter          // 玩家状态：进入
	PlayerStatusReady          // 玩家状态：准备
	PlayerStatusPlaying        // 玩家状态：游戏中
)

// Player 表示游戏中的玩家
type Player struct {
	id     string // 玩家唯一ID
	Name   string
	Seat   int32 // 座位号
	Status int   // 玩家状态
	bot    bool
	online bool // 玩家是否在线
}

// NewPlayer 创建新玩家实例
func NewPlayer(id, name string) *Player {
	return &Player{
		id:     id,
		Name:   name,
		Seat:   -1,
		Status: PlayerStatusUnEnter,
		online: true,
	}
}

// NewBotPlayer 创建一个AI玩家补位
func NewBotPlayer(name string) *Player {
	p := NewPlayer(uuid.NewString(), name)
	p.bot = true
	p.Status = PlayerStatusReady
	return p
}

func (p *Player) ID() string {
	return p.id
}

func (p *Player) IsBot() bool {
	return p.bot
}

// SetSeat 设置玩家座位号
func (p *Player) SetSeat(seatNum int32) {
	p.Seat = seatNum
}

func (p *Player) SetOnline(online bool) {
	p.online = online
}

func (p *Player) Online() bool {
	return p.online
}
