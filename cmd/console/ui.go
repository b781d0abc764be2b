package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/quest-engine/pkg/session"
	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/turn"
)

const (
	AgentName       = "Narrator"
	PlaceHolderText = "What do you do?"
	CombatHint      = "Press Enter with an empty line to attack (d20)."
	GameOverText    = "Your journey has ended. Press Ctrl+C to quit."
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx          context.Context
	sess         *session.Session
	logViewport  viewport.Model
	sideViewport viewport.Model
	textarea     textarea.Model
	panel        sidePanel
	ready        bool
	width        int
	height       int
	err          error

	// notice is shown under the log until the next submit. It is never
	// written to the game log.
	notice string

	// Load screen state
	showStartModal bool
	loadingSaves   bool
	saves          []session.SaveSummary
	selected       int
	naming         bool
	nameInput      textinput.Model

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type savesLoadedMsg struct {
	saves []session.SaveSummary
	err   error
}

type gameLoadedMsg struct {
	err error
}

type turnDoneMsg struct {
	notice string
	err    error
}

type progressTickMsg struct{}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	sidePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // grey
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(ctx context.Context, sess *session.Session) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	ni := textinput.New()
	ni.Placeholder = state.DefaultPlayerName
	ni.CharLimit = 40

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	sideVp := viewport.New(20, 20)

	started := sess.State() != nil
	return ConsoleUI{
		ctx:            ctx,
		sess:           sess,
		textarea:       ta,
		nameInput:      ni,
		logViewport:    logVp,
		sideViewport:   sideVp,
		showStartModal: !started,
		loadingSaves:   !started,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showStartModal {
		return m.loadSaves()
	}
	return textarea.Blink
}

// layout sizes the panels for the current window.
func (m *ConsoleUI) layout() {
	logWidth := int(float64(m.width)*0.7) - 4
	sideWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 8
	m.sideViewport.Width = sideWidth - 2
	m.sideViewport.Height = m.height - 4
	m.textarea.SetWidth(logWidth - 4)
}

// refresh rebuilds both panels from the current snapshot.
func (m *ConsoleUI) refresh() {
	gs := m.sess.State()
	m.writeLogContent(gs)
	m.sideViewport.SetContent(renderPanel(m.panel, gs))

	switch {
	case gs != nil && gs.IsGameOver:
		m.textarea.Placeholder = GameOverText
	case gs != nil && gs.Combat.IsActive:
		m.textarea.Placeholder = CombatHint
	default:
		m.textarea.Placeholder = PlaceHolderText
	}
}

// writeLogContent renders the game log for the current viewport width
func (m *ConsoleUI) writeLogContent(gs *state.GameState) {
	logWidth := m.logViewport.Width - 6 // Account for left(3) + right(3) padding
	if logWidth < 10 {
		logWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("QUEST ENGINE") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", logWidth)) + "\n\n")

	if gs == nil {
		m.logViewport.SetContent(content.String())
		return
	}

	for _, entry := range gs.GameLog {
		switch entry.Sender {
		case state.SenderNarrator:
			content.WriteString(formatNarratorResponse(entry.Content, logWidth) + "\n\n")
		case state.SenderPlayer:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(entry.Content, logWidth-5) + "\n\n")
		default:
			content.WriteString(systemStyle.Render(wordwrap.String(entry.Content, logWidth)) + "\n\n")
		}
	}

	if gs.Combat.IsActive {
		content.WriteString(renderCombatBanner(gs.Combat) + "\n\n")
	}

	// If currently loading, add the progress bar
	if m.sess.InFlight() {
		content.WriteString(m.renderProgressBar() + "\n\n")
	}

	if m.notice != "" {
		content.WriteString(loadingStyle.Render(wordwrap.String(m.notice, logWidth)) + "\n\n")
	}

	if suggestions := m.sess.Suggestions(); len(suggestions) > 0 && !gs.IsGameOver {
		content.WriteString(promptStyle.Render(formatSuggestions(suggestions)) + "\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func renderCombatBanner(c state.CombatState) string {
	banner := "⚔ " + c.EnemyName
	if c.EnemyHP != nil {
		if c.EnemyMaxHP != nil {
			banner += fmt.Sprintf("  HP %d/%d", *c.EnemyHP, *c.EnemyMaxHP)
		} else {
			banner += fmt.Sprintf("  HP %d", *c.EnemyHP)
		}
	}
	return combatStyle.Render(banner)
}

// formatSuggestions numbers suggestions for the alt+N shortcuts.
func formatSuggestions(suggestions []string) string {
	parts := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, s))
	}
	return strings.Join(parts, "  ")
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle load screen first
	if m.showStartModal {
		return m.updateStartModal(msg)
	}

	// Handle quit modal second
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		svCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.sideViewport, svCmd = m.sideViewport.Update(msg)
		return m, tea.Batch(vpCmd, svCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyTab:
			m.panel = m.panel.Next()
			m.sideViewport.SetContent(renderPanel(m.panel, m.sess.State()))
			m.sideViewport.GotoTop()
			return m, nil
		case tea.KeyCtrlY:
			m.notice = m.copyLastNarration()
			m.refresh()
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}
		switch msg.String() {
		case "alt+1", "alt+2", "alt+3", "alt+4":
			idx := int(msg.String()[len("alt+")] - '1')
			if suggestions := m.sess.Suggestions(); idx < len(suggestions) {
				m.textarea.SetValue(suggestions[idx])
				m.textarea.CursorEnd()
			}
			return m, nil
		}

	case turnDoneMsg:
		m.notice = msg.notice
		if msg.err != nil {
			m.notice = noticeFor(msg.err)
		}
		m.refresh()
		return m, progressTick()

	case progressTickMsg:
		if m.sess.InFlight() || m.sess.CoolingDown() {
			m.progressTick++
			m.refresh()
			return m, progressTick()
		}
		m.refresh()
		return m, nil
	}

	// Update components for non-mouse events
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.sideViewport, svCmd = m.sideViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, svCmd)
}

// submit sends the input buffer. The buffer is cleared as soon as it is
// accepted; blank input during combat is an attack roll.
func (m ConsoleUI) submit() (tea.Model, tea.Cmd) {
	if m.sess.InFlight() {
		return m, nil
	}
	gs := m.sess.State()
	input := strings.TrimSpace(m.textarea.Value())

	if input == "" {
		if gs == nil || !gs.Combat.IsActive || gs.IsGameOver {
			return m, nil
		}
		m.notice = ""
		m.progressTick = 0
		return m, tea.Batch(m.submitCombatRoll(), progressTick())
	}

	if strings.EqualFold(input, "/help") {
		m.textarea.Reset()
		m.notice = helpText
		m.refresh()
		return m, nil
	}

	m.textarea.Reset()
	m.notice = ""
	m.progressTick = 0
	return m, tea.Batch(m.submitAction(input), progressTick())
}

const helpText = `Commands:
/look, /inventory, /quests, /journal
/equip <item>, /unequip <item>, /drop <item>
Tab: switch side panel   Alt+1..4: use a suggestion
Ctrl+Y: copy last narration   Ctrl+C: quit
During combat press Enter on an empty line to attack.`

// noticeFor turns a rejected turn into a short message. Narrator failures
// are already in the game log and get no notice.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, turn.ErrCoolingDown):
		return "Take a breath before acting again."
	case errors.Is(err, turn.ErrTurnInFlight):
		return "The narrator is still speaking."
	case errors.Is(err, turn.ErrGameOver):
		return GameOverText
	case errors.Is(err, turn.ErrEmptyInput), errors.Is(err, turn.ErrNoCombat):
		return ""
	case errors.Is(err, turn.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, turn.ErrNoGame):
		return "No game is loaded."
	default:
		return ""
	}
}

func (m ConsoleUI) copyLastNarration() string {
	text, ok := lastNarration(m.sess.State())
	if !ok {
		return "Nothing to copy yet."
	}
	if err := clipboard.WriteAll(text); err != nil {
		return "Could not copy: " + err.Error()
	}
	return "Copied the last narration to the clipboard."
}

func formatNarratorResponse(response string, width int) string {
	wrapWidth := width - len(AgentName+": ")
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	// Wrap the text to the available width
	wrappedResponse := wordwrap.String(response, wrapWidth)
	lines := strings.Split(wrappedResponse, "\n")
	formattedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			formattedLines = append(formattedLines, "")
			continue
		}

		// Dialogue lines such as "Mara: Welcome back."
		if idx := strings.Index(trimmed, ":"); idx > 0 && idx <= 20 {
			speaker := trimmed[:idx]
			rest := trimmed[idx+1:]
			if len(strings.Fields(speaker)) <= 2 {
				formattedLines = append(formattedLines, speakerStyle.Render(speaker+":")+rest)
				continue
			}
		}

		formattedLines = append(formattedLines, line)
	}

	return narratorStyle.Render(AgentName+": ") + strings.Join(formattedLines, "\n")
}

func (m ConsoleUI) submitAction(input string) tea.Cmd {
	return func() tea.Msg {
		notice, err := m.sess.SubmitAction(m.ctx, input)
		return turnDoneMsg{notice, err}
	}
}

func (m ConsoleUI) submitCombatRoll() tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{err: m.sess.SubmitCombatRoll(m.ctx)}
	}
}

func (m ConsoleUI) loadSaves() tea.Cmd {
	return func() tea.Msg {
		saves, err := m.sess.SavedGames(m.ctx)
		return savesLoadedMsg{saves, err}
	}
}

func (m ConsoleUI) startGame(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.sess.StartNew(m.ctx, name)
		return gameLoadedMsg{err}
	}
}

func (m ConsoleUI) loadGame(save session.SaveSummary) tea.Cmd {
	return func() tea.Msg {
		return gameLoadedMsg{m.sess.LoadByID(m.ctx, save.ID)}
	}
}

// updateStartModal drives the load screen. Row 0 starts a new adventure;
// the remaining rows are saved games.
func (m ConsoleUI) updateStartModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case savesLoadedMsg:
		m.loadingSaves = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.saves = msg.saves
		}

	case gameLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.showStartModal = false
		m.naming = false
		if m.width > 0 && m.height > 0 {
			m.layout()
			m.ready = true
		}
		m.refresh()
		m.textarea.Focus()
		return m, textarea.Blink

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.loadingSaves {
			return m, nil
		}
		if m.naming {
			return m.updateNameInput(msg)
		}

		switch msg.Type {
		case tea.KeyEsc:
			m.showQuitModal = true
			m.showStartModal = false
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
		case tea.KeyDown:
			if m.selected < len(m.saves) {
				m.selected++
			}
		case tea.KeyEnter:
			m.err = nil
			if m.selected == 0 {
				m.naming = true
				m.nameInput.Focus()
				return m, textinput.Blink
			}
			return m, m.loadGame(m.saves[m.selected-1])
		}
	}

	return m, nil
}

func (m ConsoleUI) updateNameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.naming = false
		m.nameInput.Reset()
		return m, nil
	case tea.KeyEnter:
		return m, m.startGame(m.nameInput.Value())
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.sess.State() == nil {
					m.showStartModal = true
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	if m.sess.Online() {
		content.WriteString("Your progress is saved after every turn.")
	} else {
		content.WriteString("Storage is off. This adventure will be lost.")
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderStartModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingSaves:
		content.WriteString(modalTitleStyle.Render("Loading Saves..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we find your adventures..."))
	case m.naming:
		content.WriteString(modalTitleStyle.Render("New Adventure"))
		content.WriteString("\n\n")
		content.WriteString("What is your name, traveler?\n\n")
		content.WriteString(m.nameInput.View())
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Enter to begin, Esc to go back"))
	default:
		content.WriteString(modalTitleStyle.Render("QUEST ENGINE"))
		content.WriteString("\n\n")

		rows := make([]string, 0, len(m.saves)+1)
		rows = append(rows, "New adventure")
		for _, s := range m.saves {
			row := fmt.Sprintf("%s, level %d %s, %s", s.Name, s.Level, s.Class, s.Location)
			if s.IsGameOver {
				row += " (ended)"
			}
			rows = append(rows, row)
		}
		for i, row := range rows {
			if i == m.selected {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", row)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", row)))
			}
			content.WriteString("\n")
		}
		if !m.sess.Online() {
			content.WriteString("\n" + loadingStyle.Render("Storage is off, games will not be saved.") + "\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	if m.err != nil {
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	modal := modalStyle.Width(70).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showStartModal {
		return m.renderStartModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.7) - 4
	sideWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", logWidth-4)),
			m.textarea.View(),
		),
	)

	side := sidePanelStyle.Width(sideWidth).Height(m.height - 2).Render(
		m.sideViewport.View() + "\n" + promptStyle.Render("Tab: next panel"),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, side)
}

// renderProgressBar creates an animated progress bar while the narrator works
func (m ConsoleUI) renderProgressBar() string {
	usable := m.logViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	// Clamp bar width to a sensible range
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
