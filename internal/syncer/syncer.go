// Package syncer keeps the optimistic local ledger converging on the
// authoritative remote ledger. Batched clicks and a periodic timer trigger
// reconciliation attempts; purchases, prestige, and other high-stakes calls
// go through as direct round trips that replace the state wholesale.
package syncer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BananINT/frontend/internal/api"
	"github.com/BananINT/frontend/internal/clock"
	"github.com/BananINT/frontend/internal/economy"
	"github.com/BananINT/frontend/internal/game"
)

// Authority is the slice of the remote contract the syncer drives.
// *api.Client satisfies it; tests substitute fakes.
type Authority interface {
	Sync(ctx context.Context, req api.SyncRequest) (*api.SyncResponse, error)
	Upgrade(ctx context.Context, req api.UpgradeRequest) (*api.UpgradeResponse, error)
	Prestige(ctx context.Context, req api.PrestigeRequest) (*api.PrestigeResponse, error)
	BuySkin(ctx context.Context, req api.BuySkinRequest) (*api.BuySkinResponse, error)
	ClickEvent(ctx context.Context, req api.ClickEventRequest) (*api.ClickEventResponse, error)
	SubmitScore(ctx context.Context, req api.SubmitScoreRequest) (*api.SubmitScoreResponse, error)
	Reset(ctx context.Context, req api.ResetRequest) (*api.ResetResponse, error)
}

// Config carries the reconciliation tuning knobs. The defaults match the
// served game; all three are configurable rather than hardcoded because
// their values are traffic-volume tradeoffs, not correctness requirements.
type Config struct {
	// Interval is the period of the background sync timer.
	Interval time.Duration
	// StalenessFloor skips a triggered sync when nothing is pending and the
	// last success is younger than this.
	StalenessFloor time.Duration
	// BatchThreshold is the pending-click count that forces a sync.
	BatchThreshold int
}

// DefaultConfig returns the served game's tuning.
func DefaultConfig() Config {
	return Config{
		Interval:       30 * time.Second,
		StalenessFloor: 10 * time.Second,
		BatchThreshold: 10,
	}
}

// Syncer serializes reconciliation attempts against one session. At most
// one request is outstanding at a time; triggers that arrive while one is
// in flight are dropped, and the periodic timer doubles as the retry
// mechanism after failures.
type Syncer struct {
	engine *game.Engine
	remote Authority
	clk    clock.Clock
	cfg    Config

	mu          sync.Mutex
	inFlight    bool
	lastSuccess time.Time
	leaderboard []api.LeaderboardEntry
}

// New wires a syncer to the engine and remote authority.
func New(engine *game.Engine, remote Authority, clk clock.Clock, cfg Config) *Syncer {
	return &Syncer{engine: engine, remote: remote, clk: clk, cfg: cfg}
}

// Config returns the active tuning.
func (s *Syncer) Config() Config {
	return s.cfg
}

// TrySync runs one reconciliation attempt, honoring the idempotency guard.
// Returns true when a sync round trip actually succeeded; false when the
// attempt was skipped, dropped, or failed.
func (s *Syncer) TrySync(ctx context.Context) bool {
	return s.sync(ctx, false)
}

// ForceSync runs a reconciliation ignoring the staleness guard. Used before
// high-stakes actions so they act on the authoritative ledger.
func (s *Syncer) ForceSync(ctx context.Context) bool {
	return s.sync(ctx, true)
}

func (s *Syncer) sync(ctx context.Context, force bool) bool {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return false
	}
	now := s.clk.Now()
	pending := s.engine.PendingClicks()
	if !force && pending == 0 && !s.lastSuccess.IsZero() && now.Sub(s.lastSuccess) < s.cfg.StalenessFloor {
		s.mu.Unlock()
		return false
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	snap := s.engine.Snapshot()
	res, err := s.remote.Sync(ctx, api.SyncRequest{
		SessionID:     snap.SessionID,
		AttemptID:     uuid.NewString(),
		PendingClicks: pending,
		ClientBananas: snap.Bananas,
		LastSync:      snap.LastSync,
	})
	if err != nil {
		// Transport or server failure: leave pending clicks and optimistic
		// state untouched; the next trigger retries.
		log.Printf("sync attempt abandoned: %v", err)
		return false
	}

	st := res.GameState
	if len(res.ActiveEvents) > 0 {
		st.ActiveEvents = res.ActiveEvents
	}
	s.applyAuthoritative(st, nil)

	if len(res.Leaderboard) > 0 {
		s.mu.Lock()
		s.leaderboard = res.Leaderboard
		s.mu.Unlock()
	}
	return true
}

// Leaderboard returns the ranking last seen on a sync response.
func (s *Syncer) Leaderboard() []api.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.LeaderboardEntry(nil), s.leaderboard...)
}

// applyAuthoritative installs a server state, stamps the local sync time,
// and records the success for the staleness guard.
func (s *Syncer) applyAuthoritative(st game.State, upgrades []game.Upgrade) {
	s.engine.ReplaceWithAuthoritative(st, upgrades)
	now := s.clk.Now()
	s.engine.MarkSynced(now)

	s.mu.Lock()
	s.lastSuccess = now
	s.mu.Unlock()
}

// Purchase buys one copy of an upgrade. A local affordability pre-check
// avoids a doomed round trip; the server confirms and returns the new
// state, which replaces local state wholesale.
func (s *Syncer) Purchase(ctx context.Context, upgradeID string) error {
	upgrade, ok := s.engine.Upgrade(upgradeID)
	if !ok {
		return &api.RejectionError{Op: "upgrade", Message: "unknown upgrade: " + upgradeID}
	}

	snap := s.engine.Snapshot()
	available := snap.Bananas
	if upgrade.Tier.UsesPrestigeCurrency() {
		available = snap.GoldenBananas
	}
	if !economy.CanAfford(available, upgrade.NextCost()) {
		return &api.RejectionError{Op: "upgrade", Message: "not enough bananas for " + upgrade.Name}
	}

	res, err := s.remote.Upgrade(ctx, api.UpgradeRequest{SessionID: snap.SessionID, UpgradeID: upgradeID})
	if err != nil {
		return err
	}
	s.applyAuthoritative(res.GameState, res.Upgrades)
	return nil
}

// Prestige trades the run for golden bananas and returns the amount gained.
func (s *Syncer) Prestige(ctx context.Context) (float64, error) {
	snap := s.engine.Snapshot()
	res, err := s.remote.Prestige(ctx, api.PrestigeRequest{SessionID: snap.SessionID})
	if err != nil {
		return 0, err
	}
	s.applyAuthoritative(res.GameState, res.Upgrades)
	return res.GoldenBananasGained, nil
}

// BuySkin purchases a cosmetic and installs the returned state.
func (s *Syncer) BuySkin(ctx context.Context, skinID string) error {
	snap := s.engine.Snapshot()
	res, err := s.remote.BuySkin(ctx, api.BuySkinRequest{SessionID: snap.SessionID, SkinID: skinID})
	if err != nil {
		return err
	}
	s.applyAuthoritative(res.GameState, nil)
	return nil
}

// ClickEvent claims an active event's reward. The reward is credited
// optimistically; the next reconciliation confirms it.
func (s *Syncer) ClickEvent(ctx context.Context, eventID string) (float64, error) {
	snap := s.engine.Snapshot()
	res, err := s.remote.ClickEvent(ctx, api.ClickEventRequest{SessionID: snap.SessionID, EventID: eventID})
	if err != nil {
		return 0, err
	}
	s.engine.ApplyEventReward(res.Reward)
	return res.Reward, nil
}

// SubmitScore forces a reconciliation and then submits the display name,
// so the submitted score reflects the authoritative ledger rather than a
// possibly stale optimistic one.
func (s *Syncer) SubmitScore(ctx context.Context, name string) ([]api.LeaderboardEntry, error) {
	if name == "" {
		return nil, &api.RejectionError{Op: "submit-score", Message: "display name must not be empty"}
	}

	s.ForceSync(ctx)

	snap := s.engine.Snapshot()
	res, err := s.remote.SubmitScore(ctx, api.SubmitScoreRequest{SessionID: snap.SessionID, Name: name})
	if err != nil {
		return nil, err
	}
	return res.Leaderboard, nil
}

// Reset wipes the session ledger and installs the fresh state.
func (s *Syncer) Reset(ctx context.Context) error {
	snap := s.engine.Snapshot()
	res, err := s.remote.Reset(ctx, api.ResetRequest{SessionID: snap.SessionID})
	if err != nil {
		return err
	}
	s.applyAuthoritative(res.GameState, res.Upgrades)
	return nil
}
