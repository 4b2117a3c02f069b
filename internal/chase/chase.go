// Package chase is a short full-screen game where the companion chases a
// target across the terminal. It is used as training: the session only
// counts if the target is caught.
package chase

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pocketpal/internal/pet"
)

const (
	tickInterval   = 70 * time.Millisecond
	minVisibleRows = 6
)

// chaseEmoji picks the companion's face for the current frame from how close
// it is and how it feels
func chaseEmoji(c pet.Companion, distX, distY int) string {
	if absInt(distX) <= 2 && absInt(distY) <= 1 {
		return "😻" // about to catch
	}

	switch {
	case c.Energy < pet.LowStatThreshold:
		return "😴"
	case c.Energy > 80:
		return "😼"
	case c.Hunger < pet.LowStatThreshold:
		return "🙀"
	case c.Friendship < pet.LowStatThreshold:
		return "😿"
	default:
		return "😸"
	}
}

// Target defines what the companion can chase
type Target struct {
	Emoji string
	Name  string
	Speed int // Frames to move 1 position
}

// Targets are the available chase targets
var Targets = map[string]Target{
	"butterfly": {Emoji: "🦋", Name: "butterfly", Speed: 3},
	"berry":     {Emoji: "🍓", Name: "berry", Speed: 4},
	"ball":      {Emoji: "⚽", Name: "ball", Speed: 2},
}

// TargetNames lists the target keys in a stable order
func TargetNames() []string {
	names := make([]string, 0, len(Targets))
	for name := range Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Picker draws a random index. *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// RandomTarget picks a target uniformly
func RandomTarget(rng Picker) Target {
	names := TargetNames()
	return Targets[names[rng.Intn(len(names))]]
}

// Model is the Bubble Tea model for the chase
type Model struct {
	Companion  pet.Companion
	Name       string
	Target     Target
	TermWidth  int
	TermHeight int
	PetPosX    int
	PetPosY    int
	TargetPosX int
	TargetPosY int
	Frame      int
	Caught     bool
	Done       bool
}

type animTickMsg time.Time

// NewModel places the companion at the left edge with the target just ahead
func NewModel(c pet.Companion, name string, target Target) Model {
	return Model{
		Companion:  c,
		Name:       name,
		Target:     target,
		TargetPosX: 5,
	}
}

// Run plays a chase and reports whether the target was caught
func Run(c pet.Companion, name string, target Target) (bool, error) {
	program := tea.NewProgram(NewModel(c, name, target), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("run chase: %w", err)
	}
	m, ok := final.(Model)
	return ok && m.Caught, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tick(),
		tea.EnterAltScreen,
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// giving up counts as a miss
		m.Done = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.TermWidth = msg.Width
		m.TermHeight = msg.Height
		m.clampPositions()
		return m, nil

	case animTickMsg:
		if m.Done {
			return m, nil
		}
		m.Frame++

		if m.TermWidth == 0 || m.TermHeight == 0 {
			return m, tick()
		}

		// Target moves every N frames based on its speed
		if m.Frame%m.Target.Speed == 0 {
			m.TargetPosX++

			// escaped off the right edge
			if m.TargetPosX >= m.maxX() {
				m.Done = true
				return m, tea.Quit
			}

			// Vertical flutter along a sine wave
			height := float64(m.visibleRows())
			amplitude := height / 3.0
			centerY := height / 2.0
			frequency := 0.2

			m.TargetPosY = int(centerY + amplitude*math.Sin(float64(m.TargetPosX)*frequency))
			m.clampPositions()
		}

		// Companion follows the target in 2D, slower when tired
		if m.Frame%m.stride() == 0 {
			distX := m.TargetPosX - m.PetPosX
			distY := m.TargetPosY - m.PetPosY

			if distX > 3 {
				m.PetPosX++
			}
			if distY > 1 {
				m.PetPosY++
			} else if distY < -1 {
				m.PetPosY--
			}
			m.clampPositions()
		}

		// Caught: overlapping X on the same row
		if absInt(m.TargetPosX-m.PetPosX) <= 1 && m.TargetPosY == m.PetPosY {
			m.Caught = true
			m.Done = true
			return m, tea.Quit
		}

		return m, tick()
	}

	return m, nil
}

// stride is how many frames the companion waits between steps
func (m Model) stride() int {
	if m.Companion.Energy < pet.LowStatThreshold {
		return 3
	}
	return 2
}

// View implements tea.Model
func (m Model) View() string {
	if m.TermWidth == 0 || m.TermHeight == 0 {
		return "Initializing..."
	}

	rows := m.visibleRows()
	petEmoji := chaseEmoji(m.Companion, m.TargetPosX-m.PetPosX, m.TargetPosY-m.PetPosY)

	grid := make([][]rune, rows-1)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", m.TermWidth))
	}

	place := func(x, y int, s string) {
		if y < 0 || y >= len(grid) || x < 0 || x >= m.TermWidth-2 {
			return
		}
		for i, r := range []rune(s) {
			if x+i < m.TermWidth {
				grid[y][x+i] = r
			}
		}
	}
	place(m.TargetPosX, m.TargetPosY, m.Target.Emoji)
	place(m.PetPosX, m.PetPosY, petEmoji)

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(string(row))
		result.WriteRune('\n')
	}
	fmt.Fprintf(&result, "\n%s is chasing a %s! Press any key to give up", m.Name, m.Target.Name)

	return result.String()
}

func (m *Model) clampPositions() {
	rows := m.visibleRows()
	if rows < 1 {
		return
	}

	m.PetPosX = max(0, min(m.PetPosX, m.maxX()))
	m.TargetPosX = max(0, min(m.TargetPosX, m.maxX()))
	m.PetPosY = max(0, min(m.PetPosY, rows-1))
	m.TargetPosY = max(0, min(m.TargetPosY, rows-1))
}

func (m Model) visibleRows() int {
	if m.TermHeight <= 0 {
		return 0
	}
	return max(m.TermHeight-2, minVisibleRows) // leave space for instructions
}

func (m Model) maxX() int {
	if m.TermWidth <= 2 {
		return 0
	}
	return m.TermWidth - 2
}
