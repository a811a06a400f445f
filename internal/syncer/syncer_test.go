package syncer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BananINT/frontend/internal/api"
	"github.com/BananINT/frontend/internal/economy"
	"github.com/BananINT/frontend/internal/game"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// fakeAuthority scripts responses and records calls.
type fakeAuthority struct {
	mu          sync.Mutex
	syncCalls   int
	lastSyncReq api.SyncRequest
	syncRes     *api.SyncResponse
	syncErr     error
	upgradeRes  *api.UpgradeResponse
	upgradeErr  error
	blockSync   chan struct{} // when set, Sync blocks until the channel closes
}

func (f *fakeAuthority) Sync(ctx context.Context, req api.SyncRequest) (*api.SyncResponse, error) {
	f.mu.Lock()
	f.syncCalls++
	f.lastSyncReq = req
	block := f.blockSync
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return f.syncRes, nil
}

func (f *fakeAuthority) Upgrade(ctx context.Context, req api.UpgradeRequest) (*api.UpgradeResponse, error) {
	if f.upgradeErr != nil {
		return nil, f.upgradeErr
	}
	return f.upgradeRes, nil
}

func (f *fakeAuthority) Prestige(ctx context.Context, req api.PrestigeRequest) (*api.PrestigeResponse, error) {
	return &api.PrestigeResponse{OK: true, GoldenBananasGained: 3, GameState: game.State{SessionID: req.SessionID, GoldenBananas: 3, PrestigeCount: 1, BananasPerClick: 1}}, nil
}

func (f *fakeAuthority) BuySkin(ctx context.Context, req api.BuySkinRequest) (*api.BuySkinResponse, error) {
	return &api.BuySkinResponse{OK: true, GameState: game.State{SessionID: req.SessionID, OwnedSkins: []string{req.SkinID}}}, nil
}

func (f *fakeAuthority) ClickEvent(ctx context.Context, req api.ClickEventRequest) (*api.ClickEventResponse, error) {
	return &api.ClickEventResponse{OK: true, Reward: 50}, nil
}

func (f *fakeAuthority) SubmitScore(ctx context.Context, req api.SubmitScoreRequest) (*api.SubmitScoreResponse, error) {
	return &api.SubmitScoreResponse{OK: true, Leaderboard: []api.LeaderboardEntry{{Rank: 1, Name: req.Name}}}, nil
}

func (f *fakeAuthority) Reset(ctx context.Context, req api.ResetRequest) (*api.ResetResponse, error) {
	return &api.ResetResponse{OK: true, GameState: game.State{SessionID: req.SessionID, BananasPerClick: 1}}, nil
}

func (f *fakeAuthority) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.syncCalls
}

func newSyncer(remote Authority, clk *fakeClock, st game.State, upgrades []game.Upgrade) (*Syncer, *game.Engine) {
	engine := game.NewEngine(st, upgrades)
	s := New(engine, remote, clk, DefaultConfig())
	return s, engine
}

func TestAuthoritativeOverwriteWins(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{
		syncRes: &api.SyncResponse{OK: true, GameState: game.State{SessionID: "s", Bananas: 9, TotalBananasEarned: 9, TotalClicks: 9}},
	}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s", BananasPerClick: 1}, nil)

	for i := 0; i < 10; i++ {
		engine.ApplyClick()
	}
	assert.Equal(t, float64(10), engine.Snapshot().Bananas, "optimistic total before reconciliation")

	require.True(t, s.TrySync(context.Background()))

	st := engine.Snapshot()
	assert.Equal(t, float64(9), st.Bananas, "server simulated a missed click; its state wins")
	assert.Equal(t, 0, engine.PendingClicks())
	assert.Equal(t, 10, remote.lastSyncReq.PendingClicks)
	assert.Equal(t, float64(10), remote.lastSyncReq.ClientBananas)
}

func TestStalenessGuardSkipsIdleSync(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{syncRes: &api.SyncResponse{OK: true, GameState: game.State{SessionID: "s"}}}
	s, _ := newSyncer(remote, clk, game.State{SessionID: "s"}, nil)

	require.True(t, s.TrySync(context.Background()))
	assert.Equal(t, 1, remote.calls())

	// Nothing pending and the last success is fresh: skipped.
	clk.Advance(5 * time.Second)
	assert.False(t, s.TrySync(context.Background()))
	assert.Equal(t, 1, remote.calls())

	// Past the staleness floor the periodic trigger goes through again.
	clk.Advance(6 * time.Second)
	assert.True(t, s.TrySync(context.Background()))
	assert.Equal(t, 2, remote.calls())
}

func TestPendingClicksBypassStalenessGuard(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{syncRes: &api.SyncResponse{OK: true, GameState: game.State{SessionID: "s"}}}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s", BananasPerClick: 1}, nil)

	require.True(t, s.TrySync(context.Background()))
	engine.ApplyClick()

	clk.Advance(time.Second)
	assert.True(t, s.TrySync(context.Background()), "pending mutations always justify a sync")
}

func TestSingleOutstandingRequest(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	block := make(chan struct{})
	remote := &fakeAuthority{
		syncRes:   &api.SyncResponse{OK: true, GameState: game.State{SessionID: "s"}},
		blockSync: block,
	}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s", BananasPerClick: 1}, nil)
	engine.ApplyClick()

	done := make(chan bool)
	go func() { done <- s.TrySync(context.Background()) }()

	// Wait for the first attempt to be in flight, then fire a second trigger.
	require.Eventually(t, func() bool { return remote.calls() == 1 }, time.Second, time.Millisecond)
	assert.False(t, s.TrySync(context.Background()), "trigger dropped while a sync is pending")
	assert.Equal(t, 1, remote.calls())

	close(block)
	assert.True(t, <-done)
}

func TestTransportFailureLeavesStateUntouched(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{syncErr: context.DeadlineExceeded}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s", BananasPerClick: 1}, nil)

	for i := 0; i < 3; i++ {
		engine.ApplyClick()
	}
	assert.False(t, s.TrySync(context.Background()))
	assert.Equal(t, 3, engine.PendingClicks(), "pending counter survives a failed attempt")
	assert.Equal(t, float64(3), engine.Snapshot().Bananas)
}

func TestPurchaseAffordabilityPreCheck(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s", Bananas: 5}, []game.Upgrade{
		{ID: "strong-thumbs", Name: "Strong Thumbs", BaseCost: 10, Tier: economy.TierAction},
	})

	err := s.Purchase(context.Background(), "strong-thumbs")
	require.Error(t, err)
	assert.True(t, api.IsRejection(err), "insufficient funds is a business rejection, not a clamp")
	assert.Equal(t, float64(5), engine.Snapshot().Bananas, "state untouched on rejection")
}

func TestPurchaseUnknownUpgrade(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s, _ := newSyncer(&fakeAuthority{}, clk, game.State{SessionID: "s"}, nil)

	err := s.Purchase(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, api.IsRejection(err))
}

func TestPurchaseInstallsServerState(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{
		upgradeRes: &api.UpgradeResponse{
			OK:        true,
			GameState: game.State{SessionID: "s", Bananas: 2, BananasPerClick: 2},
			Upgrades:  []game.Upgrade{{ID: "strong-thumbs", Name: "Strong Thumbs", BaseCost: 10, Tier: economy.TierAction, Owned: 1}},
		},
	}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s", Bananas: 12}, []game.Upgrade{
		{ID: "strong-thumbs", Name: "Strong Thumbs", BaseCost: 10, Tier: economy.TierAction},
	})

	require.NoError(t, s.Purchase(context.Background(), "strong-thumbs"))

	st := engine.Snapshot()
	assert.Equal(t, float64(2), st.Bananas)
	assert.Equal(t, float64(2), st.BananasPerClick)
	u, _ := engine.Upgrade("strong-thumbs")
	assert.Equal(t, 1, u.Owned)
	assert.Equal(t, 0, engine.PendingClicks())
}

func TestPurchaseServerRejectionLeavesStateUntouched(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{upgradeErr: &api.RejectionError{Op: "upgrade", Message: "not enough bananas"}}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s", Bananas: 100}, []game.Upgrade{
		{ID: "strong-thumbs", Name: "Strong Thumbs", BaseCost: 10, Tier: economy.TierAction},
	})

	err := s.Purchase(context.Background(), "strong-thumbs")
	require.Error(t, err)
	assert.Equal(t, float64(100), engine.Snapshot().Bananas)
}

func TestSubmitScoreForcesSyncFirst(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{syncRes: &api.SyncResponse{OK: true, GameState: game.State{SessionID: "s", Bananas: 40}}}
	s, _ := newSyncer(remote, clk, game.State{SessionID: "s"}, nil)

	// A fresh success would normally make the guard skip; submit must not.
	require.True(t, s.TrySync(context.Background()))
	board, err := s.SubmitScore(context.Background(), "Ana")
	require.NoError(t, err)
	assert.Equal(t, 2, remote.calls(), "submission was preceded by a forced sync")
	require.Len(t, board, 1)
	assert.Equal(t, "Ana", board[0].Name)
}

func TestSubmitScoreEmptyNameRejected(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	remote := &fakeAuthority{syncRes: &api.SyncResponse{OK: true, GameState: game.State{SessionID: "s"}}}
	s, _ := newSyncer(remote, clk, game.State{SessionID: "s"}, nil)

	_, err := s.SubmitScore(context.Background(), "")
	require.Error(t, err)
	assert.True(t, api.IsRejection(err))
	assert.Equal(t, 0, remote.calls(), "no traffic for an invalid submission")
}

func TestPrestigeInstallsNewRun(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s, engine := newSyncer(&fakeAuthority{}, clk, game.State{SessionID: "s", Bananas: 1e6}, nil)

	gained, err := s.Prestige(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(3), gained)

	st := engine.Snapshot()
	assert.Equal(t, float64(3), st.GoldenBananas)
	assert.Equal(t, 1, st.PrestigeCount)
}

func TestClickEventCreditsReward(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s, engine := newSyncer(&fakeAuthority{}, clk, game.State{SessionID: "s", Bananas: 10, TotalBananasEarned: 10}, nil)

	reward, err := s.ClickEvent(context.Background(), "banana-rain")
	require.NoError(t, err)
	assert.Equal(t, float64(50), reward)

	st := engine.Snapshot()
	assert.Equal(t, float64(60), st.Bananas)
	assert.Equal(t, float64(60), st.TotalBananasEarned)
}

func TestLastSyncAdvancesOnSuccess(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clk := newFakeClock(start)
	remote := &fakeAuthority{syncRes: &api.SyncResponse{OK: true, GameState: game.State{SessionID: "s"}}}
	s, engine := newSyncer(remote, clk, game.State{SessionID: "s"}, nil)

	require.True(t, s.TrySync(context.Background()))
	assert.Equal(t, start.UnixMilli(), engine.Snapshot().LastSync)
}
