package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/spotifyle/internal/formatter"
	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GameListView ViewState = iota
	StageListView
	ConfirmView
	CreateView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	games        *repositories.GameRepository
	engine       *tasks.GameEngine
	publisherID  string
	maxStages    int
	width        int
	height       int
	gameList     list.Model
	stageList    list.Model
	selected     *formatter.GameExport
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.GameRunResult
	err          error
	help         help.Model
	keys         keyMap
}

type gamesFetchedMsg struct {
	games []*models.Game
	err   error
}

type stagesFetchedMsg struct {
	export *formatter.GameExport
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

type createCompleteMsg struct {
	result *tasks.GameRunResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, games *repositories.GameRepository, engine *tasks.GameEngine, publisherID string, maxStages int) *Model {
	return &Model{
		ctx:         ctx,
		view:        GameListView,
		games:       games,
		engine:      engine,
		publisherID: publisherID,
		maxStages:   maxStages,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching the publisher's games.
func (m *Model) Init() tea.Cmd {
	return m.fetchGames()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.gameList.Width() == 0 {
			m.gameList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.stageList.Width() == 0 {
			m.stageList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GameListView:
			return m.handleGameListKeys(msg)
		case StageListView:
			return m.handleStageListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case gamesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.games))
		for i, g := range msg.games {
			items[i] = gameItem{game: g}
		}
		m.gameList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.gameList.Title = "Published Games"
		m.gameList.SetSize(m.width-4, m.height-8)
		return m, nil

	case stagesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = GameListView
			return m, nil
		}
		m.selected = msg.export
		items := make([]list.Item, len(msg.export.Stages))
		for i, stage := range msg.export.Stages {
			items[i] = stageItem{stage: stage}
		}
		m.stageList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.stageList.Title = fmt.Sprintf("Stages in '%s'", msg.export.Game.Name())
		m.stageList.SetSize(m.width-4, m.height-8)
		m.view = StageListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case createCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		if m.progressChan != nil {
			m.progressChan = nil
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case GameListView:
		return m.renderGameList()
	case StageListView:
		return m.renderStageList()
	case ConfirmView:
		return m.renderConfirm()
	case CreateView:
		return m.renderCreate()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleGameListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n":
		m.view = ConfirmView
		return m, nil
	case "r":
		return m, m.fetchGames()
	case "enter":
		selected := m.gameList.SelectedItem()
		if selected != nil {
			if g, ok := selected.(gameItem); ok {
				return m, m.fetchStages(g.game.ID())
			}
		}
	}

	var cmd tea.Cmd
	m.gameList, cmd = m.gameList.Update(msg)
	return m, cmd
}

func (m *Model) handleStageListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = GameListView
		return m, nil
	}

	var cmd tea.Cmd
	m.stageList, cmd = m.stageList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = GameListView
		return m, nil
	case "y":
		m.view = CreateView
		return m, m.startCreate()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = GameListView
		m.result = nil
		m.err = nil
		return m, m.fetchGames()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case GameListView:
		m.gameList, cmd = m.gameList.Update(msg)
	case StageListView:
		m.stageList, cmd = m.stageList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchGames() tea.Cmd {
	return func() tea.Msg {
		games, err := m.games.ListByPublisher(m.publisherID, false)
		return gamesFetchedMsg{games: games, err: err}
	}
}

func (m *Model) fetchStages(gameID string) tea.Cmd {
	return func() tea.Msg {
		export, err := m.engine.Export(gameID)
		return stagesFetchedMsg{export: export, err: err}
	}
}

func (m *Model) startCreate() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.CreateGame(m.ctx, m.progressChan, m.publisherID, m.maxStages)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return createCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return createCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderGameList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.gameList.View(), helpView)
}

func (m *Model) renderStageList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.stageList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Create a new game?")
	info := fmt.Sprintf("\nPublisher: %s\nStages per kind: up to %d\n", m.publisherID, m.maxStages)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderCreate() string {
	title := styles.title.Render("Creating Game")

	var phase string
	switch m.progress.Phase {
	case tasks.ReserveGame:
		phase = "Reserving game code..."
	case tasks.BuildLockIn, tasks.BuildFindTrackArt, tasks.BuildArtistTrivia:
		phase = fmt.Sprintf("Generating stages (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.SaveStages:
		phase = fmt.Sprintf("Saving stages (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.FinalizeGame:
		phase = "Finalizing..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Game creation failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to go back, q to quit")
	}

	title := styles.ok.Render("✓ Game Created!")
	info := fmt.Sprintf(
		"\nName: %s\nCode: %s\nStages: %d (%d trivia, %d track art, %d lock-in)\nChoices: %d",
		m.result.Game.Name(),
		m.result.Game.GameCode(),
		m.result.StageCount,
		m.result.TriviaCount,
		m.result.TrackCount,
		m.result.LockInCount,
		m.result.ChoiceCount,
	)

	var short string
	if m.result.TriviaCount < m.maxStages {
		short = fmt.Sprintf("\n\n%s", styles.warn.Render(
			fmt.Sprintf("Only %d artist trivia stages synthesized (pool too thin or lookups failed)", m.result.TriviaCount)))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, short, helpView)
}
