package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/core"
	"github.com/vovakirdan/skybound/internal/games/flappy"
	"github.com/vovakirdan/skybound/internal/leaderboard"
)

// DefaultPlayerName is used when the player skips the name prompt.
const DefaultPlayerName = "Player"

// Messages shown to the player.
const (
	msgRosterFull   = "Maximum player reached (10/10). Reset the leaderboard to add new names."
	msgInvalidName  = "Enter a name (up to 20 characters)."
	msgSaving       = "Saving score..."
	msgSaved        = "Score saved."
	msgNewRecord    = "NEW RECORD!"
	msgCheckingName = "Checking the leaderboard..."
)

// Layout: one header row above the playfield, one status row below it.
const (
	chromeRows    = 2
	minGameHeight = 10
)

type stage int

const (
	stagePrompt stage = iota
	stagePlay
)

type tab int

const (
	tabGame tab = iota
	tabBoard
)

// Options configures the application model.
type Options struct {
	Leaderboard Leaderboard
	Names       NameStore // optional
	Runs        RunLog    // optional
	Game        config.FlappyConfig
	Runtime     core.RuntimeConfig
	// PlayerName pre-fills the prompt. When AskName is false and a name is
	// known, the prompt is skipped.
	PlayerName string
	AskName    bool
	Bell       io.Writer // optional; receives BEL on game over
	Logger     *log.Logger
}

// Model is the Bubble Tea model for a Skybound session: name prompt, game
// and leaderboard.
type Model struct {
	ctx    context.Context
	opts   Options
	logger *log.Logger

	stage  stage
	tab    tab
	width  int
	height int

	// prompt
	nameInput textinput.Model
	promptErr string
	checking  bool

	// game
	player     string
	game       *flappy.Game
	screen     *core.Screen
	runtime    core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	status     string
	statusKind statusKind
	best       int

	// leaderboard
	board    BoardModel
	keys     KeyMap
	help     help.Model
	quitting bool
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusGood
	statusWarn
	statusBad
)

// NewModel creates the application model.
func NewModel(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rc := opts.Runtime.Normalize(opts.Game.FPS)
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	width, height := rc.ScreenW, rc.ScreenH
	rc.ScreenH = gameHeight(height)

	name := opts.PlayerName
	if name == "" && opts.Names != nil {
		stored, err := opts.Names.PlayerName(ctx)
		if err != nil {
			logger.Warn("could not read remembered player name", "error", err)
		}
		name = stored
	}
	if n, err := leaderboard.NormalizeName(name); err == nil {
		name = n
	} else {
		name = ""
	}

	input := textinput.New()
	input.Placeholder = DefaultPlayerName
	input.CharLimit = leaderboard.MaxNameLength
	input.Width = leaderboard.MaxNameLength + 2
	input.Prompt = "> "
	input.SetValue(name)

	m := Model{
		ctx:        ctx,
		opts:       opts,
		logger:     logger,
		width:      width,
		height:     height,
		nameInput:  input,
		player:     name,
		game:       flappy.New(opts.Game),
		screen:     core.NewScreen(rc.ScreenW, rc.ScreenH),
		runtime:    rc,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		board:      NewBoardModel(width, height-chromeRows),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
	m.help.Width = width
	m.board.SetPlayer(name)

	if name == "" || opts.AskName {
		m.stage = stagePrompt
		m.nameInput.Focus()
	} else {
		m.stage = stagePlay
	}

	m.game.Reset(m.runtime)
	m.gameState = m.game.State()
	return m
}

func gameHeight(termHeight int) int {
	return max(termHeight-chromeRows, minGameHeight)
}

// Init starts the tick loop and loads the board.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.runtime.TickRate),
		rosterCmd(m.ctx, m.opts.Leaderboard),
		bestCmd(m.ctx, m.opts.Runs, m.player, m.logger),
	}
	if m.stage == stagePrompt {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		if m.stage == stagePrompt {
			return m.handlePromptKey(msg)
		}
		if m.tab == tabBoard {
			return m.handleBoardKey(msg)
		}
		return m.handleGameKey(msg)

	case joinCheckMsg:
		return m.handleJoinCheck(msg)

	case rosterMsg:
		m.board.SetEntries(msg.entries)
		return m, nil

	case submitMsg:
		return m.handleSubmit(msg)

	case bestMsg:
		m.best = msg.best
		return m, nil

	case winnerMsg:
		m.board.winner = &winnerView{entry: msg.entry, found: msg.found}
		return m, nil

	case resetDoneMsg:
		m.board.SetEntries(msg.entries)
		m.setStatus("Leaderboard reset.", statusInfo)
		return m, nil
	}

	if m.stage == stagePrompt {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize processes window resize events without restarting the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = gameHeight(msg.Height)
	m.screen.Resize(m.runtime.ScreenW, m.runtime.ScreenH)
	m.game.Resize(m.runtime.ScreenW, m.runtime.ScreenH)
	m.board.Resize(msg.Width, msg.Height-chromeRows)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.runtime.TickRate)
	if m.stage != stagePlay || m.tab != tabGame {
		m.inputFrame.Clear()
		return m, next
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.runtime.Seed = time.Now().UnixNano()
		m.game.Reset(m.runtime)
		m.gameState = m.game.State()
		m.setStatus("", statusInfo)
		m.inputFrame.Clear()
		return m, next
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Crashed {
		m.setStatus(msgSaving, statusInfo)
		return m, tea.Batch(
			next,
			bellCmd(m.opts.Bell),
			submitCmd(m.ctx, m.opts.Leaderboard, m.opts.Runs, m.player, m.gameState.Score, m.logger),
		)
	}
	return m, next
}

// handlePromptKey edits the name and confirms or skips it.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.startPlaying(DefaultPlayerName)
		return m, bestCmd(m.ctx, m.opts.Runs, m.player, m.logger)

	case "enter":
		if m.checking {
			return m, nil
		}
		name, err := leaderboard.NormalizeName(m.nameInput.Value())
		if err != nil {
			m.promptErr = msgInvalidName
			return m, nil
		}
		m.checking = true
		m.promptErr = ""
		return m, joinCheckCmd(m.ctx, m.opts.Leaderboard, name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.promptErr = ""
	return m, cmd
}

// handleJoinCheck starts play when the name fits on the board.
func (m Model) handleJoinCheck(msg joinCheckMsg) (tea.Model, tea.Cmd) {
	m.checking = false
	if m.stage != stagePrompt {
		return m, nil
	}
	if !msg.ok {
		m.promptErr = msgRosterFull
		return m, nil
	}
	m.startPlaying(msg.name)
	return m, tea.Batch(
		saveNameCmd(m.ctx, m.opts.Names, msg.name, m.logger),
		bestCmd(m.ctx, m.opts.Runs, msg.name, m.logger),
	)
}

func (m *Model) startPlaying(name string) {
	m.player = name
	m.nameInput.SetValue(name)
	m.nameInput.Blur()
	m.board.SetPlayer(name)
	m.promptErr = ""
	m.stage = stagePlay
	m.tab = tabGame
}

// handleGameKey maps keys to game actions.
func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.SwitchTab) {
		return m.switchTab(tabBoard)
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleBoardKey drives the leaderboard view.
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// The winner modal swallows the next key.
	if m.board.winner != nil {
		m.board.winner = nil
		return m, nil
	}

	if m.board.confirmReset {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.board.confirmReset = false
			return m, resetCmd(m.ctx, m.opts.Leaderboard)
		case key.Matches(msg, m.keys.Cancel):
			m.board.confirmReset = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchTab):
		return m.switchTab(tabGame)

	case key.Matches(msg, m.keys.Refresh):
		m.board.loading = true
		return m, rosterCmd(m.ctx, m.opts.Leaderboard)

	case key.Matches(msg, m.keys.Winner):
		return m, winnerCmd(m.ctx, m.opts.Leaderboard)

	case key.Matches(msg, m.keys.Reset):
		m.board.confirmReset = true
		return m, nil

	case key.Matches(msg, m.keys.ChangeName):
		m.stage = stagePrompt
		m.nameInput.SetValue(m.player)
		m.nameInput.CursorEnd()
		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.board.table, cmd = m.board.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.inputFrame.Clear()
	if t == tabBoard {
		m.board.loading = true
		return m, rosterCmd(m.ctx, m.opts.Leaderboard)
	}
	return m, nil
}

// handleSubmit reports the outcome of a finished run.
func (m Model) handleSubmit(msg submitMsg) (tea.Model, tea.Cmd) {
	if msg.best > m.best {
		m.best = msg.best
	}

	switch {
	case msg.result.Success && msg.record:
		m.setStatus(msgNewRecord, statusGood)
	case msg.result.Success:
		m.setStatus(msgSaved, statusInfo)
	case msg.result.Error == leaderboard.CodeMaxPlayers:
		m.setStatus(msgRosterFull, statusWarn)
	default:
		m.setStatus(fmt.Sprintf("Could not save score: %v", msg.result.Err()), statusBad)
	}
	return m, rosterCmd(m.ctx, m.opts.Leaderboard)
}

func (m *Model) setStatus(s string, kind statusKind) {
	m.status = s
	m.statusKind = kind
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.stage == stagePrompt {
		return m.promptView()
	}

	var body, footer string
	if m.tab == tabGame {
		m.game.Render(m.screen)
		body = RenderScreen(m.screen)
		footer = m.statusView()
	} else {
		body = m.board.View()
		footer = mutedStyle.Render(m.help.View(m.keys.forBoard(true)))
	}
	return m.headerView() + "\n" + body + "\n" + footer
}

// headerView renders the tab bar and the pilot summary.
func (m Model) headerView() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	inactive := mutedStyle.Padding(0, 1)

	gameTab, boardTab := active.Render("GAME"), inactive.Render("LEADERBOARD")
	if m.tab == tabBoard {
		gameTab, boardTab = inactive.Render("GAME"), active.Render("LEADERBOARD")
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, gameTab, " ", boardTab)

	info := fmt.Sprintf("pilot: %s", m.player)
	if m.best > 0 {
		info += fmt.Sprintf("  best: %d", m.best)
	}
	info = mutedStyle.Render(info)

	gap := max(m.width-lipgloss.Width(tabs)-lipgloss.Width(info), 1)
	return tabs + lipgloss.NewStyle().Width(gap).Render("") + info
}

// statusView renders the single status row under the playfield.
func (m Model) statusView() string {
	if m.status == "" {
		return mutedStyle.Render(m.help.ShortHelpView(m.keys.forBoard(false).ShortHelp()))
	}
	switch m.statusKind {
	case statusGood:
		return goodStyle.Render(m.status)
	case statusWarn:
		return warnStyle.Render(m.status)
	case statusBad:
		return badStyle.Render(m.status)
	}
	return mutedStyle.Render(m.status)
}

// promptView renders the name prompt.
func (m Model) promptView() string {
	lines := []string{
		titleStyle.Render("SKYBOUND"),
		"",
		"Who's flying?",
		m.nameInput.View(),
		"",
	}
	switch {
	case m.checking:
		lines = append(lines, mutedStyle.Render(msgCheckingName))
	case m.promptErr != "":
		lines = append(lines, warnStyle.Render(m.promptErr))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, mutedStyle.Render("enter confirm  esc skip  ctrl+c quit"))

	box := frameStyle.Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Player returns the name scores are submitted under.
func (m Model) Player() string {
	return m.player
}

// Run starts the Bubble Tea program with the given options.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(ctx, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
