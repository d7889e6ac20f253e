// Command qwirkle runs a human-vs-AI game in the terminal. All rule
// knowledge lives in the game and searcher packages; this program only
// renders state and forwards input through the engine.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"qwirkle/engine"
	"qwirkle/game"
	"qwirkle/searcher"
)

const (
	humanSeat = 0
	aiSeat    = 1
)

var (
	tileColors = map[game.Color]lipgloss.Color{
		game.Red:    lipgloss.Color("9"),
		game.Green:  lipgloss.Color("10"),
		game.Blue:   lipgloss.Color("12"),
		game.Yellow: lipgloss.Color("11"),
		game.Orange: lipgloss.Color("208"),
		game.Purple: lipgloss.Color("13"),
	}
	shapeRunes = map[game.Shape]string{
		game.Circle:  "●",
		game.Square:  "■",
		game.Diamond: "◆",
		game.Star:    "★",
		game.Clover:  "✤",
		game.Cross:   "✚",
	}

	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	stagedStyle = lipgloss.NewStyle().Background(lipgloss.Color("238")).Underline(true)
	pickStyle   = lipgloss.NewStyle().Reverse(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

type aiMoveMsg struct {
	move  game.Move
	value float64
	err   error
}

type model struct {
	eng      *engine.Engine
	cursor   game.Coord
	picked   int // hand index picked for the next stage, -1 for none
	staged   []game.PlacedTile
	status   string
	thinking bool
}

func initialModel(seed uint64) model {
	eng := engine.New(
		engine.WithSeed(seed),
		engine.WithSearcher(searcher.NewMinimax(searcher.WithDepth(searcher.DefaultDepth))),
	)
	return model{
		eng:    eng,
		picked: -1,
		status: "your turn: pick a tile (1-6), move the cursor, space to stage, enter to play",
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// requestAIMove runs the search inside a command so the interface stays
// responsive while the AI thinks.
func requestAIMove(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		move, value, err := eng.PlayAI()
		return aiMoveMsg{move: move, value: value, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case aiMoveMsg:
		m.thinking = false
		if msg.err != nil {
			m.status = fmt.Sprintf("ai error: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("ai played: %s (value %.1f)", msg.move, msg.value)
		if m.eng.State.Over() {
			m.status = gameOverLine(m.eng.State)
		}
		return m, nil

	case tea.KeyMsg:
		if m.thinking {
			if msg.String() == "ctrl+c" || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up":
		m.cursor.Y--
	case "down":
		m.cursor.Y++
	case "left":
		m.cursor.X--
	case "right":
		m.cursor.X++
	case "1", "2", "3", "4", "5", "6":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.availableHand()) {
			m.picked = idx
		}
	case " ", "space":
		m = m.stageTile()
	case "esc":
		m.staged = nil
		m.picked = -1
		m.status = "staging cleared"
	case "enter":
		return m.commitPlacement()
	case "e":
		return m.playDirect(game.Exchange{}, "you exchanged your hand")
	case "x":
		return m.playDirect(game.Pass{}, "you passed")
	}
	return m, nil
}

// availableHand is the human hand minus the staged tiles.
func (m model) availableHand() []game.Tile {
	hand := append([]game.Tile(nil), m.eng.State.Hands[humanSeat]...)
	for _, pt := range m.staged {
		for i, t := range hand {
			if t == pt.Tile {
				hand = append(hand[:i], hand[i+1:]...)
				break
			}
		}
	}
	return hand
}

func (m model) stageTile() model {
	hand := m.availableHand()
	if m.picked < 0 || m.picked >= len(hand) {
		m.status = "pick a tile first (1-6)"
		return m
	}
	if m.eng.State.Board.Occupied(m.cursor) {
		m.status = "that cell is taken"
		return m
	}
	for _, pt := range m.staged {
		if pt.Coord == m.cursor {
			m.status = "already staged a tile there"
			return m
		}
	}
	m.staged = append(m.staged, game.PlacedTile{Coord: m.cursor, Tile: hand[m.picked]})
	m.picked = -1
	m.status = fmt.Sprintf("%d tile(s) staged, enter to play", len(m.staged))
	return m
}

func (m model) commitPlacement() (tea.Model, tea.Cmd) {
	if len(m.staged) == 0 {
		m.status = "nothing staged"
		return m, nil
	}
	move := game.Placement{Tiles: m.staged}
	return m.playDirect(move, "you played")
}

func (m model) playDirect(move game.Move, okStatus string) (tea.Model, tea.Cmd) {
	if m.eng.State.Over() {
		m.status = gameOverLine(m.eng.State)
		return m, nil
	}
	if m.eng.State.Player() != humanSeat {
		m.status = "not your turn"
		return m, nil
	}
	if err := m.eng.Play(move); err != nil {
		m.status = fmt.Sprintf("rejected: %v", err)
		return m, nil
	}
	m.staged = nil
	m.picked = -1
	if m.eng.State.Over() {
		m.status = gameOverLine(m.eng.State)
		return m, nil
	}
	m.status = okStatus + ", ai is thinking..."
	m.thinking = true
	return m, requestAIMove(m.eng)
}

func gameOverLine(gs *game.GameState) string {
	switch gs.Winner() {
	case humanSeat:
		return fmt.Sprintf("game over: you win %d-%d! press q to quit", gs.Scores[humanSeat], gs.Scores[aiSeat])
	case aiSeat:
		return fmt.Sprintf("game over: ai wins %d-%d. press q to quit", gs.Scores[aiSeat], gs.Scores[humanSeat])
	default:
		return fmt.Sprintf("game over: draw at %d points. press q to quit", gs.Scores[humanSeat])
	}
}

func (m model) View() string {
	gs := m.eng.State
	var b strings.Builder

	b.WriteString(titleStyle.Render("qwirkle"))
	b.WriteString(fmt.Sprintf("  you %d : %d ai   pool %d   ai hand %d\n\n",
		gs.Scores[humanSeat], gs.Scores[aiSeat], gs.Pool.Remaining(), len(gs.Hands[aiSeat])))

	b.WriteString(m.renderBoard())
	b.WriteString("\n")

	b.WriteString("hand: ")
	for i, t := range m.availableHand() {
		cell := fmt.Sprintf("%d:%s", i+1, renderTile(t))
		if i == m.picked {
			cell = pickStyle.Render(cell)
		}
		b.WriteString(cell + " ")
	}
	b.WriteString("\n\n")
	b.WriteString(m.status + "\n")
	b.WriteString(faintStyle.Render("arrows move · 1-6 pick · space stage · enter play · esc clear · e exchange · x pass · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m model) renderBoard() string {
	gs := m.eng.State
	minX, minY, maxX, maxY := m.cursor.X, m.cursor.Y, m.cursor.X, m.cursor.Y
	for _, c := range gs.Board.Coords() {
		minX, maxX = minInt(minX, c.X), maxInt(maxX, c.X)
		minY, maxY = minInt(minY, c.Y), maxInt(maxY, c.Y)
	}
	staged := make(map[game.Coord]game.Tile, len(m.staged))
	for _, pt := range m.staged {
		staged[pt.Coord] = pt.Tile
	}

	var b strings.Builder
	for y := minY - 1; y <= maxY+1; y++ {
		for x := minX - 1; x <= maxX+1; x++ {
			c := game.Coord{X: x, Y: y}
			cell := " ·"
			if t, ok := gs.Board.Get(c); ok {
				cell = " " + renderTile(t)
			} else if t, ok := staged[c]; ok {
				cell = stagedStyle.Render(" " + renderTile(t))
			}
			if c == m.cursor {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderTile(t game.Tile) string {
	return lipgloss.NewStyle().Foreground(tileColors[t.Color]).Render(shapeRunes[t.Shape])
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func main() {
	// Keep the move log out of the TUI; send it to a file when asked for.
	zerolog.SetGlobalLevel(zerolog.Disabled)
	if path := os.Getenv("QWIRKLE_LOG"); path != "" {
		if f, err := os.Create(path); err == nil {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
			log.Logger = zerolog.New(f).With().Timestamp().Logger()
		}
	}

	seed := uint64(time.Now().UnixNano())
	p := tea.NewProgram(initialModel(seed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
