package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BananINT/frontend/internal/economy"
	"github.com/BananINT/frontend/internal/session"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#F2C14E")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F2C14E")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	eventStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F25D94"))

	affordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))
)

// refreshMsg drives the passive redraw so the balance keeps counting up
// even when the player is idle.
type refreshMsg time.Time

func refreshTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

type playModel struct {
	sess       *session.Session
	serverURL  string
	viewport   viewport.Model
	logContent string
	width      int
	height     int
}

func newPlayModel(sess *session.Session, serverURL string) playModel {
	vp := viewport.New(0, 0)

	log := "Welcome to BananINT!\nPress space to click, q to quit."
	if name := sess.PlayerName(); name != "" {
		log = fmt.Sprintf("Welcome back, %s!\nPress space to click, q to quit.", name)
	}
	if off := sess.Offline(); off != nil {
		log += fmt.Sprintf("\n\nWhile you were away (%s) you earned %s bananas.",
			off.Elapsed.Round(time.Second), economy.FormatMagnitude(float64(off.Amount)))
	}
	vp.SetContent(log)

	return playModel{
		sess:       sess,
		serverURL:  serverURL,
		viewport:   vp,
		logContent: log,
	}
}

func (m *playModel) Init() tea.Cmd {
	return refreshTick()
}

func (m *playModel) log(format string, args ...any) {
	m.logContent += "\n" + fmt.Sprintf(format, args...)
	m.viewport.SetContent(m.logContent)
	m.viewport.GotoBottom()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var vpCmd tea.Cmd

	switch msg := msg.(type) {
	case refreshMsg:
		return m, refreshTick()

	case tea.KeyMsg:
		ctx := context.Background()
		switch key := msg.String(); key {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case " ", "b":
			if !m.sess.Click(ctx) {
				// Cooldown drop, stay quiet to keep the log readable.
				break
			}

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(key[0] - '1')
			upgrades := m.sess.Upgrades()
			if idx >= len(upgrades) {
				break
			}
			u := upgrades[idx]
			if err := m.sess.Purchase(ctx, u.ID); err != nil {
				m.log("Can't buy %s: %v", u.Name, err)
			} else {
				m.log("Bought %s!", u.Name)
			}

		case "e":
			events := m.sess.State().ActiveEvents
			if len(events) == 0 {
				m.log("No active events right now.")
				break
			}
			reward, err := m.sess.ClickEvent(ctx, events[0].ID)
			if err != nil {
				m.log("Event claim failed: %v", err)
			} else {
				m.log("Claimed %s: +%s bananas!", events[0].Name, economy.FormatMagnitude(reward))
			}

		case "p":
			gained, err := m.sess.Prestige(ctx)
			if err != nil {
				m.log("Prestige refused: %v", err)
			} else {
				m.log("Prestiged! Gained %s golden bananas.", economy.FormatMagnitude(gained))
			}

		case "s":
			if m.sess.ForceSync(ctx) {
				m.log("Synced with %s.", m.serverURL)
			} else {
				m.log("Sync failed, keeping local state.")
			}

		case "l":
			board := m.sess.Leaderboard()
			if len(board) == 0 {
				m.log("Leaderboard is empty. Sync first (s).")
				break
			}
			var b strings.Builder
			b.WriteString("=== Leaderboard ===")
			for i, entry := range board {
				fmt.Fprintf(&b, "\n%2d. %-20s %s", i+1, entry.Name, economy.FormatMagnitude(entry.Bananas))
			}
			m.log("%s", b.String())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Size the log to whatever the fixed chrome leaves over.
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	infoH := lipgloss.Height(infoStyle.Render("Dummy"))

	m.viewport.Width = m.width - 4
	m.viewport.Height = m.height - titleH - stateH - infoH - 4
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, vpCmd
}

func (m *playModel) renderState() string {
	st := m.sess.State()

	var b strings.Builder
	fmt.Fprintf(&b, "Bananas: %s", economy.FormatMagnitude(st.Bananas))
	fmt.Fprintf(&b, "   (+%s/click, +%s/s)",
		economy.FormatMagnitude(st.BananasPerClick),
		economy.FormatMagnitude(st.BananasPerSecond))
	fmt.Fprintf(&b, "\nGolden: %s   Prestige: %d   Skin: %s",
		economy.FormatMagnitude(st.GoldenBananas), st.PrestigeCount, skinLabel(st.SelectedSkin))

	lastSync := "never"
	if st.LastSync > 0 {
		lastSync = humanize.Time(time.UnixMilli(st.LastSync))
	}
	fmt.Fprintf(&b, "\nPending clicks: %d   Last sync: %s", m.sess.PendingClicks(), lastSync)

	upgrades := m.sess.Upgrades()
	if len(upgrades) > 0 {
		b.WriteString("\n")
		for i, u := range upgrades {
			if i >= 9 {
				break
			}
			line := fmt.Sprintf("\n[%d] %-24s %8s  (owned %d)",
				i+1, u.Name, economy.FormatMagnitude(float64(u.NextCost())), u.Owned)
			if economy.CanAfford(st.Bananas, u.NextCost()) {
				line = affordStyle.Render(line)
			}
			b.WriteString(line)
		}
	}

	for _, evt := range st.ActiveEvents {
		fmt.Fprintf(&b, "\n%s", eventStyle.Render(fmt.Sprintf("EVENT: %s (press e to claim)", evt.Name)))
	}

	return stateBoxStyle.Width(m.width - 4).Render(b.String())
}

func skinLabel(skin string) string {
	if skin == "" {
		return "default"
	}
	return skin
}

func (m *playModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(" BananINT | " + m.sess.State().SessionID + " ")
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		infoStyle.Render("(space/b click, 1-9 buy, e event, p prestige, s sync, l leaderboard, q quit)"),
	)
}

func RunTUI(sess *session.Session, serverURL string) error {
	m := newPlayModel(sess, serverURL)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
