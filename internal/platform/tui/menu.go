package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/level"
	"github.com/vovakirdan/bubble-drone/internal/storage"
)

// MenuItem represents a level in the level picker.
type MenuItem struct {
	Level  int
	Title  string
	Locked bool
}

// MenuModel is the Bubble Tea model for the level picker menu.
type MenuModel struct {
	title          string
	items          []MenuItem
	cursor         int
	highScore      int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model for the levels of gameID.
// Levels past the stored progress are listed but locked.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, gameID, title string, levels []level.Level) MenuModel {
	unlocked := 1
	highScore := 0
	if store != nil {
		if n, err := store.UnlockedLevel(gameID); err == nil {
			unlocked = n
		}
		if hs, err := store.HighScore(gameID); err == nil {
			highScore = hs
		}
	}

	items := make([]MenuItem, 0, len(levels))
	cursor := 0
	for i, l := range levels {
		items = append(items, MenuItem{
			Level: l.ID,
			Title: l.Name,
			// The first level is always open so a fresh or custom campaign is playable
			Locked: i > 0 && l.ID > unlocked,
		})
		if l.ID == cfg.Level && !items[i].Locked {
			cursor = i
		}
	}

	return MenuModel{
		title:     title,
		items:     items,
		cursor:    cursor,
		highScore: highScore,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 && !m.items[m.cursor].Locked {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.config.Level = selected.Level
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerText(spaced(m.title), m.width))
	b.WriteString("\n\n")

	subtitle := "Select a level"
	if m.highScore > 0 {
		subtitle = fmt.Sprintf("Select a level  -  best run %d", m.highScore)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No levels found", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		lock := ""
		if item.Locked {
			lock = " [locked]"
		}

		line := fmt.Sprintf("%s%d. %s%s", cursor, item.Level, item.Title, lock)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Fly  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// spaced puts a space between the letters of an upper-cased title.
func spaced(title string) string {
	letters := strings.Split(strings.ToUpper(title), "")
	return "  " + strings.Join(letters, " ") + "  "
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state to a MenuResult.
func (m MenuModel) result() MenuResult {
	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.Level = m.Selected().Level
	}
	return result
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, gameID, title string, levels []level.Level) (MenuResult, error) {
	model := NewMenuModel(store, cfg, gameID, title, levels)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
