// Package session owns the runtime of one play session: resolving the
// session identity, loading the initial state from the remote authority,
// reconciling offline earnings, throttling clicks, and running the passive
// and sync tickers until teardown.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/BananINT/frontend/internal/api"
	"github.com/BananINT/frontend/internal/clock"
	"github.com/BananINT/frontend/internal/economy"
	"github.com/BananINT/frontend/internal/game"
	"github.com/BananINT/frontend/internal/syncer"
)

// Remote is the full remote-authority surface the session depends on.
// *api.Client satisfies it.
type Remote interface {
	Init(ctx context.Context, sessionID string) (*api.InitResponse, error)
	syncer.Authority
}

// Config carries the session timing knobs.
type Config struct {
	// ClickCooldown is the minimum interval between accepted clicks.
	ClickCooldown time.Duration
	// TickInterval is the passive generation period.
	TickInterval time.Duration
	// Sync tunes the reconciliation protocol.
	Sync syncer.Config
}

// DefaultConfig returns the served game's timing.
func DefaultConfig() Config {
	return Config{
		ClickCooldown: 100 * time.Millisecond,
		TickInterval:  time.Second,
		Sync:          syncer.DefaultConfig(),
	}
}

// OfflineReport describes the catch-up earnings credited at session start.
// The session computes and applies it; how it is shown is the caller's call.
type OfflineReport struct {
	Elapsed time.Duration
	Amount  int64
}

// Session is the one live play session. All state flows through its engine;
// the governor and tickers mutate optimistically, the syncer reconciles.
type Session struct {
	remote   Remote
	identity *Identity
	clk      clock.Clock
	cfg      Config

	engine   *game.Engine
	syncer   *syncer.Syncer
	governor *ClickGovernor

	mu           sync.Mutex
	playerName   string
	leaderboard  []api.LeaderboardEntry
	achievements []api.Achievement
	offline      *OfflineReport

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New resolves the session identity, loads state from the authority (or
// falls back to a blank local state when it is unreachable), and runs the
// offline reconciler once. Call Start to launch the tickers.
func New(ctx context.Context, remote Remote, identity *Identity, clk clock.Clock, cfg Config) (*Session, error) {
	s := &Session{
		remote:   remote,
		identity: identity,
		clk:      clk,
		cfg:      cfg,
	}

	st, upgrades := s.load(ctx)
	s.engine = game.NewEngine(st, upgrades)
	s.syncer = syncer.New(s.engine, remote, clk, cfg.Sync)
	s.governor = NewClickGovernor(cfg.ClickCooldown, clk)

	s.reconcileOffline()
	return s, nil
}

// load performs the init round trip and persists a newly minted identifier.
func (s *Session) load(ctx context.Context) (game.State, []game.Upgrade) {
	id := s.identity.Resolve()
	res, err := s.remote.Init(ctx, id)
	if err != nil {
		// Startup degrades to a blank optimistic state; the periodic sync
		// recovers the ledger once the authority is reachable again.
		log.Printf("init failed, starting with blank local state: %v", err)
		st := game.DefaultState()
		st.SessionID = id
		return st, nil
	}

	if res.SessionID != "" && res.SessionID != id {
		if err := s.identity.Persist(res.SessionID); err != nil {
			log.Printf("failed to persist session id: %v", err)
		}
	}

	st := res.GameState
	st.SessionID = res.SessionID
	if len(st.ActiveEvents) == 0 && len(res.ActiveEvents) > 0 {
		st.ActiveEvents = res.ActiveEvents
	}

	s.mu.Lock()
	s.playerName = res.PlayerName
	if s.playerName == "" {
		s.playerName = s.identity.Name()
	}
	s.leaderboard = res.Leaderboard
	s.achievements = res.Achievements
	s.mu.Unlock()

	return st, res.Upgrades
}

// reconcileOffline credits passive production accrued while no client was
// running. The client is the single computation site: the authority returns
// state as of its recorded sync time without offline accrual, and the next
// reconciliation realigns any divergence.
func (s *Session) reconcileOffline() {
	st := s.engine.Snapshot()
	if st.LastSync == 0 || st.BananasPerSecond <= 0 {
		return
	}

	elapsed := s.clk.Now().Sub(time.UnixMilli(st.LastSync))
	amount := economy.OfflineEarnings(elapsed.Seconds(), st.BananasPerSecond, economy.OfflineMaxWindowSeconds)
	if amount <= 0 {
		return
	}

	s.engine.ApplyOfflineEarnings(float64(amount))

	s.mu.Lock()
	s.offline = &OfflineReport{Elapsed: elapsed, Amount: amount}
	s.mu.Unlock()
}

// Start launches the passive ticker and the periodic sync timer. Both are
// owned by the session and torn down together by Close.
func (s *Session) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)
}

func (s *Session) run(ctx context.Context) {
	defer s.wg.Done()

	passive := time.NewTicker(s.cfg.TickInterval)
	defer passive.Stop()
	periodic := time.NewTicker(s.cfg.Sync.Interval)
	defer periodic.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-passive.C:
			s.engine.ApplyPassiveTick()
		case <-periodic.C:
			s.syncer.TrySync(ctx)
		}
	}
}

// Close cancels the tickers and waits for the scheduler to drain. There is
// no further local teardown; the ledger lives server-side.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Click applies one direct interaction. Attempts inside the cooldown window
// are dropped without error. Reaching the batch threshold fires a sync in
// the background.
func (s *Session) Click(ctx context.Context) bool {
	if !s.governor.Allow() {
		return false
	}

	s.engine.ApplyClick()
	if s.engine.PendingClicks() >= s.cfg.Sync.BatchThreshold {
		go s.syncer.TrySync(ctx)
	}
	return true
}

// State returns a copy of the current optimistic state.
func (s *Session) State() game.State {
	return s.engine.Snapshot()
}

// Upgrades returns the current catalog, cheapest first.
func (s *Session) Upgrades() []game.Upgrade {
	return s.engine.Upgrades()
}

// PendingClicks returns the unacknowledged interaction count.
func (s *Session) PendingClicks() int {
	return s.engine.PendingClicks()
}

// Offline returns the catch-up report from session start, or nil when no
// earnings were credited.
func (s *Session) Offline() *OfflineReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

// PlayerName returns the display name known for this session.
func (s *Session) PlayerName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerName
}

// Achievements returns the unlocked achievements from the init response.
func (s *Session) Achievements() []api.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Achievement(nil), s.achievements...)
}

// Leaderboard returns the freshest ranking seen: the last sync response's
// if any, otherwise the init response's.
func (s *Session) Leaderboard() []api.LeaderboardEntry {
	if board := s.syncer.Leaderboard(); len(board) > 0 {
		return board
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.LeaderboardEntry(nil), s.leaderboard...)
}

// ForceSync reconciles immediately, ignoring the staleness guard.
func (s *Session) ForceSync(ctx context.Context) bool {
	return s.syncer.ForceSync(ctx)
}

// Purchase buys one copy of an upgrade through the syncer.
func (s *Session) Purchase(ctx context.Context, upgradeID string) error {
	return s.syncer.Purchase(ctx, upgradeID)
}

// Prestige trades the run for golden bananas.
func (s *Session) Prestige(ctx context.Context) (float64, error) {
	return s.syncer.Prestige(ctx)
}

// BuySkin purchases a cosmetic.
func (s *Session) BuySkin(ctx context.Context, skinID string) error {
	return s.syncer.BuySkin(ctx, skinID)
}

// ClickEvent claims an active event's reward.
func (s *Session) ClickEvent(ctx context.Context, eventID string) (float64, error) {
	return s.syncer.ClickEvent(ctx, eventID)
}

// SubmitScore persists the display name and submits it with the
// authoritative score.
func (s *Session) SubmitScore(ctx context.Context, name string) ([]api.LeaderboardEntry, error) {
	board, err := s.syncer.SubmitScore(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.identity.SetName(name); err != nil {
		log.Printf("failed to persist display name: %v", err)
	}
	s.mu.Lock()
	s.playerName = name
	s.mu.Unlock()
	return board, nil
}

// Reset wipes the session ledger back to a fresh state.
func (s *Session) Reset(ctx context.Context) error {
	return s.syncer.Reset(ctx)
}

// SwitchTo persists the given identifier and reloads game state under that
// identity. The in-memory state is discarded, not merged.
func (s *Session) SwitchTo(ctx context.Context, id string) error {
	if err := s.identity.Persist(id); err != nil {
		return err
	}

	res, err := s.remote.Init(ctx, id)
	if err != nil {
		return err
	}

	st := res.GameState
	st.SessionID = res.SessionID
	s.engine.ReplaceWithAuthoritative(st, res.Upgrades)

	s.mu.Lock()
	s.playerName = res.PlayerName
	s.leaderboard = res.Leaderboard
	s.achievements = res.Achievements
	s.offline = nil
	s.mu.Unlock()

	s.reconcileOffline()
	return nil
}
