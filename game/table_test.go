package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin-chtw/tw_mj16/mahjong"
)

type fakeRelay struct {
	mu        sync.Mutex
	snapshots int
	results   []*mahjong.TaiResult
}

func (r *fakeRelay) OnSnapshot(tableID string, snapshot []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots++
}

func (r *fakeRelay) OnDealOver(tableID string, result *mahjong.TaiResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *fakeRelay) snapshotCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots
}

func fastRule() *mahjong.Rule {
	rule := mahjong.NewRule()
	rule.ThinkDelayMS = 0
	return rule
}

func TestTableJoinAndStart(t *testing.T) {
	relay := &fakeRelay{}
	table := NewTable("t1", fastRule(), relay)

	human := NewPlayer("u1", "玩家一")
	require.NoError(t, table.Join(human))
	assert.Error(t, table.Join(human), "double join must fail")
	assert.Equal(t, 1, table.HumanCount())

	require.NoError(t, table.Start())
	assert.Error(t, table.Start(), "second start must fail")

	state := table.State()
	require.NotNil(t, state)
	assert.Contains(t, []mahjong.EStatus{mahjong.StatusPlaying, mahjong.StatusHu}, state.Status)
	assert.Greater(t, relay.snapshotCount(), 0)

	// 空位由机器人补齐
	assert.Equal(t, 1, table.HumanCount())
	for seat := int32(1); seat < mahjong.NP4; seat++ {
		assert.True(t, state.Players[seat].Bot, "seat %d should be a bot", seat)
	}

	assert.Error(t, table.Join(NewPlayer("u2", "玩家二")), "table is full after bots seat")
}

func TestTableHandleAction(t *testing.T) {
	table := NewTable("t2", fastRule(), &fakeRelay{})
	human := NewPlayer("u1", "玩家一")
	require.NoError(t, table.Join(human))

	assert.Error(t, table.HandleAction("u1", mahjong.Action{}), "no game yet")
	require.NoError(t, table.Start())

	assert.Error(t, table.HandleAction("ghost", mahjong.Action{Operate: mahjong.OperatePass}))
	assert.Error(t, table.HandleAction("u1", mahjong.Action{Operate: mahjong.OperateHu}),
		"hu out of turn must be rejected")

	snapshot, err := table.Snapshot()
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot)
	decoded, err := mahjong.DecodeGameState(snapshot)
	require.NoError(t, err)
	assert.Equal(t, table.State().Dealer, decoded.Dealer)
}

func TestTableBotsPlayOutDeal(t *testing.T) {
	relay := &fakeRelay{}
	table := NewTable("t3", fastRule(), relay)
	require.NoError(t, table.Start())

	total := func(s *mahjong.GameState) int {
		sum := s.Remaining()
		for _, p := range s.Players {
			sum += p.TileCount()
		}
		return sum
	}

	finished := false
	for i := 0; i < 2000; i++ {
		state := table.State()
		if state.Status == mahjong.StatusHu || state.Status == mahjong.StatusDrawExhausted {
			finished = true
			break
		}
		require.Equal(t, mahjong.TotalTileCount, total(state), "tiles must be conserved at tick %d", i)
		table.tick()
	}
	require.True(t, finished, "bots should finish a deal without stalling")

	state := table.State()
	if state.Status == mahjong.StatusHu {
		require.NotNil(t, state.Result)
		assert.Equal(t, state.Winner, state.Result.Seat)
		var sum int64
		for _, d := range state.Result.Deltas {
			sum += d
		}
		assert.Zero(t, sum, "settlement must be zero-sum")
		assert.Len(t, relay.results, 1)
	} else {
		assert.True(t, state.Liuju)
	}
}

func TestTableManagerLifecycle(t *testing.T) {
	relay := &fakeRelay{}
	mgr := NewTableManager(relay)
	defer mgr.Stop()

	table := mgr.Create(fastRule())
	require.NotNil(t, table)
	assert.Same(t, table, mgr.Get(table.ID()))
	assert.Same(t, table, mgr.LoadOrStore(table.ID(), fastRule()))

	other := mgr.LoadOrStore("room-1", fastRule())
	require.NotNil(t, other)
	assert.Equal(t, "room-1", other.ID())

	human := NewPlayer("u1", "玩家一")
	require.NoError(t, other.Join(human))
	mgr.RemovePlayer("room-1", "u1")
	assert.Nil(t, mgr.Get("room-1"), "empty table is reaped")

	mgr.Delete(table.ID())
	assert.Nil(t, mgr.Get(table.ID()))
}
