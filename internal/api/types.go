package api

import "github.com/BananINT/frontend/internal/game"

// Wire types for the remote authority. Responses follow the ok/error
// envelope convention: ok=false plus a message is a business rejection,
// anything that never produced an envelope is a transport failure.

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	Bananas       float64 `json:"bananas"`
	PrestigeCount int     `json:"prestigeCount,omitempty"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnlockedAt  int64  `json:"unlockedAt,omitempty"`
}

type InitRequest struct {
	SessionID string `json:"sessionId,omitempty"`
}

type InitResponse struct {
	OK           bool               `json:"ok"`
	Error        string             `json:"error,omitempty"`
	SessionID    string             `json:"sessionId"`
	GameState    game.State         `json:"gameState"`
	Upgrades     []game.Upgrade     `json:"upgrades"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard,omitempty"`
	PlayerName   string             `json:"playerName,omitempty"`
	Achievements []Achievement      `json:"achievements,omitempty"`
	ActiveEvents []game.ActiveEvent `json:"activeEvents,omitempty"`
}

type SyncRequest struct {
	SessionID     string  `json:"sessionId"`
	AttemptID     string  `json:"attemptId"`
	PendingClicks int     `json:"pendingClicks"`
	ClientBananas float64 `json:"clientBananas"`
	LastSync      int64   `json:"lastSync"`
}

type SyncResponse struct {
	OK           bool               `json:"ok"`
	Error        string             `json:"error,omitempty"`
	GameState    game.State         `json:"gameState"`
	Achievements []Achievement      `json:"achievements,omitempty"`
	ActiveEvents []game.ActiveEvent `json:"activeEvents,omitempty"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard,omitempty"`
}

type UpgradeRequest struct {
	SessionID string `json:"sessionId"`
	UpgradeID string `json:"upgradeId"`
}

type UpgradeResponse struct {
	OK        bool           `json:"ok"`
	Error     string         `json:"error,omitempty"`
	GameState game.State     `json:"gameState"`
	Upgrades  []game.Upgrade `json:"upgrades"`
	Message   string         `json:"message,omitempty"`
}

type PrestigeRequest struct {
	SessionID string `json:"sessionId"`
}

type PrestigeResponse struct {
	OK                  bool           `json:"ok"`
	Error               string         `json:"error,omitempty"`
	GameState           game.State     `json:"gameState"`
	Upgrades            []game.Upgrade `json:"upgrades"`
	GoldenBananasGained float64        `json:"goldenBananasGained"`
	Message             string         `json:"message,omitempty"`
}

type BuySkinRequest struct {
	SessionID string `json:"sessionId"`
	SkinID    string `json:"skinId"`
}

type BuySkinResponse struct {
	OK        bool       `json:"ok"`
	Error     string     `json:"error,omitempty"`
	Message   string     `json:"message,omitempty"`
	GameState game.State `json:"gameState"`
}

type ClickEventRequest struct {
	SessionID string `json:"sessionId"`
	EventID   string `json:"eventId"`
}

type ClickEventResponse struct {
	OK      bool    `json:"ok"`
	Error   string  `json:"error,omitempty"`
	Reward  float64 `json:"reward"`
	Message string  `json:"message,omitempty"`
}

type SubmitScoreRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

type SubmitScoreResponse struct {
	OK          bool               `json:"ok"`
	Error       string             `json:"error,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
	Message     string             `json:"message,omitempty"`
}

type ResetRequest struct {
	SessionID string `json:"sessionId"`
}

type ResetResponse struct {
	OK        bool           `json:"ok"`
	Error     string         `json:"error,omitempty"`
	GameState game.State     `json:"gameState"`
	Upgrades  []game.Upgrade `json:"upgrades"`
}
