package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kevin-chtw/tw_mj16/mahjong"
	"github.com/kevin-chtw/tw_mj16/utils"
)

var logOnce sync.Once

// TableManager 管理游戏桌
type TableManager struct {
	mu     sync.RWMutex
	tables map[string]*Table // tableID -> Table
	relay  Relay
	ticker *time.Ticker
	done   chan struct{}
}

// NewTableManager 创建游戏桌管理器, 每秒驱动一次所有桌子
func NewTableManager(relay Relay) *TableManager {
	logOnce.Do(func() {
		logger = utils.Logger(logrus.InfoLevel)
	})
	t := &TableManager{
		tables: make(map[string]*Table),
		relay:  relay,
		ticker: time.NewTicker(time.Second),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.ticker.C:
				t.tick()
			case <-t.done:
				return
			}
		}
	}()

	return t
}

func (t *TableManager) tick() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, table := range t.tables {
		table.tick()
	}
}

// Create 开一桌新房间, 房间号用uuid
func (t *TableManager) Create(rule *mahjong.Rule) *Table {
	table := NewTable(uuid.NewString(), rule, t.relay)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tables[table.ID()] = table
	return table
}

// LoadOrStore 取指定房间, 不存在则建一个
func (t *TableManager) LoadOrStore(tableID string, rule *mahjong.Rule) *Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	if table, ok := t.tables[tableID]; ok {
		return table
	}
	table := NewTable(tableID, rule, t.relay)
	t.tables[tableID] = table
	return table
}

// Get 获取指定房间的游戏桌
func (t *TableManager) Get(tableID string) *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tables[tableID]
}

// Delete 删除指定房间
func (t *TableManager) Delete(tableID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tables, tableID)
}

// RemovePlayer 玩家离开房间, 最后一个真人走后房间销毁
func (t *TableManager) RemovePlayer(tableID, playerID string) {
	table := t.Get(tableID)
	if table == nil {
		return
	}
	if table.Leave(playerID) == 0 {
		t.Delete(tableID)
	}
}

// Stop 停止驱动循环
func (t *TableManager) Stop() {
	t.ticker.Stop()
	close(t.done)
}
