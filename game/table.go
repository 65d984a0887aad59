package game

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kevin-chtw/tw_mj16/bot"
	"github.com/kevin-chtw/tw_mj16/mahjong"
)

// Relay 把桌内事件转给宿主。快照原样下发, 不做裁剪。
type Relay interface {
	OnSnapshot(tableID string, snapshot []byte)
	OnDealOver(tableID string, result *mahjong.TaiResult)
}

var botNames = []string{"小眉", "阿杰", "老宋", "霞姐"}

// logger 默认用标准输出, NewTableManager会换成滚动文件
var logger = logrus.StandardLogger()

const (
	settleShowTime = 5 * time.Second  // 结算展示时长
	claimWaitLimit = 15 * time.Second // 真人响应超时
)

// Table 表示一个游戏桌实例
type Table struct {
	id        string
	rule      *mahjong.Rule
	manual    *mahjong.Manual
	relay     Relay
	log       *logrus.Entry
	mu        sync.Mutex // 保护state与座位的对象锁
	players   map[string]*Player
	seats     [mahjong.NP4]*Player
	ais       [mahjong.NP4]*bot.AI
	state     *mahjong.GameState
	dealCount int32
	botAt     time.Time // 机器人行动不早于此
	windowAt  time.Time // 响应窗口打开时间
	overAt    time.Time // 结算展示截止
}

// NewTable 创建新的游戏桌实例
func NewTable(id string, rule *mahjong.Rule, relay Relay) *Table {
	t := &Table{
		id:      id,
		rule:    rule,
		relay:   relay,
		log:     logger.WithField("table", id),
		players: make(map[string]*Player),
	}
	if rule.PresetFile != "" {
		t.manual = mahjong.LoadManual(rule.PresetFile)
		if t.manual == nil {
			t.log.Warn("load preset failed, fallback to shuffle")
		}
	}
	return t
}

func (t *Table) ID() string {
	return t.id
}

// Join 给玩家找一个空位
func (t *Table) Join(player *Player) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.players[player.ID()]; ok {
		return errors.New("player already on table")
	}
	seat := t.freeSeat()
	if seat == mahjong.SeatNull {
		return errors.New("table is full")
	}
	player.SetSeat(seat)
	player.Status = PlayerStatusEnter
	t.players[player.ID()] = player
	t.seats[seat] = player
	t.log.Infof("player %s seated at %d", player.Name, seat)
	return nil
}

// Leave 玩家离桌, 返回桌上剩余真人数量
func (t *Table) Leave(playerID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if player, ok := t.players[playerID]; ok {
		delete(t.players, playerID)
		if player.Seat >= 0 && player.Seat < mahjong.NP4 {
			t.seats[player.Seat] = nil
		}
		t.log.Infof("player %s left", player.Name)
	}
	return t.humanCountLocked()
}

func (t *Table) HumanCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.humanCountLocked()
}

func (t *Table) humanCountLocked() int {
	count := 0
	for _, p := range t.players {
		if !p.IsBot() {
			count++
		}
	}
	return count
}

func (t *Table) freeSeat() int32 {
	for seat := int32(0); seat < mahjong.NP4; seat++ {
		if t.seats[seat] == nil {
			return seat
		}
	}
	return mahjong.SeatNull
}

// Start 空位补上AI后开打第一局
func (t *Table) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != nil {
		return errors.New("game already started")
	}

	var names [mahjong.NP4]string
	var bots [mahjong.NP4]bool
	for seat := int32(0); seat < mahjong.NP4; seat++ {
		if t.seats[seat] == nil {
			botPlayer := NewBotPlayer(botNames[seat])
			botPlayer.SetSeat(seat)
			t.players[botPlayer.ID()] = botPlayer
			t.seats[seat] = botPlayer
		}
		player := t.seats[seat]
		player.Status = PlayerStatusPlaying
		names[seat] = player.Name
		bots[seat] = player.IsBot()
		if player.IsBot() {
			t.ais[seat] = bot.New(bot.ParseDifficulty(t.rule.AILevel))
		}
	}

	t.dealCount = 1
	state := mahjong.NewGameState(t.rule, names, bots)
	next := state.RollDice().Deal(t.buildWall()).ReplaceFlowers()
	t.log.Infof("deal %d started, dealer %d", t.dealCount, next.Dealer)
	t.apply(next)
	return nil
}

// buildWall 配牌文件存在时按预设砌牌, 否则由引擎现场洗牌
func (t *Table) buildWall() []mahjong.Tile {
	if t.manual == nil || !t.manual.Enabled() {
		return nil
	}
	wall, err := t.manual.BuildWall(mahjong.NP4, mahjong.TileCountInitBanker, mahjong.TileCountInitNormal)
	if err != nil {
		t.log.WithError(err).Warn("build preset wall failed")
		return nil
	}
	return wall
}

// HandleAction 处理真人玩家的操作意图
func (t *Table) HandleAction(playerID string, action mahjong.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	player, ok := t.players[playerID]
	if !ok {
		return errors.New("player not on table")
	}
	if t.state == nil {
		return errors.New("game not started")
	}
	next := t.state.Submit(player.Seat, action)
	if next == t.state {
		return errors.New("illegal action")
	}
	t.apply(next)
	return nil
}

// apply 采纳新状态并广播快照
func (t *Table) apply(next *mahjong.GameState) {
	t.state = next
	t.botAt = time.Now().Add(time.Duration(t.rule.ThinkDelayMS) * time.Millisecond)

	switch next.Status {
	case mahjong.StatusActionWindow:
		t.windowAt = time.Now()
	case mahjong.StatusHu, mahjong.StatusDrawExhausted:
		t.overAt = time.Now().Add(settleShowTime)
		if t.relay != nil {
			t.relay.OnDealOver(t.id, next.Result)
		}
	}

	if t.relay != nil {
		if snapshot, err := next.Encode(); err == nil {
			t.relay.OnSnapshot(t.id, snapshot)
		} else {
			t.log.WithError(err).Error("encode snapshot failed")
		}
	}
}

// tick 每秒驱动一次: 自动摸牌, 机器人按思考延迟行动,
// 结算展示结束后开下一局。
func (t *Table) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return
	}

	switch t.state.Status {
	case mahjong.StatusPlaying:
		t.tickPlaying()
	case mahjong.StatusActionWindow:
		t.tickWindow()
	case mahjong.StatusHu, mahjong.StatusDrawExhausted:
		if time.Now().After(t.overAt) {
			t.startNextDeal()
		}
	}
}

func (t *Table) tickPlaying() {
	seat := t.state.CurSeat
	if seat == mahjong.SeatNull {
		return
	}
	hand := t.state.Players[seat].HandTiles
	if len(hand)%3 == 1 {
		if next := t.state.Draw(); next != t.state {
			t.apply(next)
		}
		return
	}
	ai := t.ais[seat]
	if ai == nil || time.Now().Before(t.botAt) {
		return
	}
	action := ai.DecideSelf(t.state, seat)
	if action.Operate == mahjong.OperateNone {
		return
	}
	if next := t.state.Submit(seat, action); next != t.state {
		t.apply(next)
	}
}

func (t *Table) tickWindow() {
	window := t.state.Window
	if window == nil {
		return
	}
	now := time.Now()
	for seat := range window.Pending {
		if _, answered := window.Choices[seat]; answered {
			continue
		}
		ai := t.ais[seat]
		if ai != nil {
			if now.Before(t.botAt) {
				continue
			}
			if next := t.state.Submit(seat, ai.DecideClaim(t.state, seat)); next != t.state {
				t.apply(next)
				return
			}
			continue
		}
		// 真人超时按过处理
		if now.Sub(t.windowAt) > claimWaitLimit {
			pass := mahjong.Action{Seat: seat, Operate: mahjong.OperatePass}
			if next := t.state.Submit(seat, pass); next != t.state {
				t.apply(next)
				return
			}
		}
	}
}

// startNextDeal 连庄换庄由引擎决定, 分数与连庄数随局带过去
func (t *Table) startNextDeal() {
	t.dealCount++
	next := t.state.NextDeal().RollDice().Deal(t.buildWall()).ReplaceFlowers()
	t.log.Infof("deal %d started, dealer %d streak %d", t.dealCount, next.Dealer, next.DealerStreak)
	t.apply(next)
}

// Snapshot 当前局面的JSON快照
func (t *Table) Snapshot() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return nil, errors.New("game not started")
	}
	return t.state.Encode()
}

// State 仅供测试与调试读取当前状态
func (t *Table) State() *mahjong.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
