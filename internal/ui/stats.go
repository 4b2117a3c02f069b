package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pocketpal/internal/game"
	"pocketpal/internal/pet"
	"pocketpal/internal/species"
)

// StatsModel is a simple Bubble Tea model for displaying the status card
type StatsModel struct {
	State   game.State
	Catalog *species.Catalog
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	return RenderCard(m.State, m.Catalog) + "\nPress ESC, click, or any key to close..."
}

func makeBar(value, maxValue int) string {
	filled := int(percent(value, maxValue) * 10)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// RenderCard formats the companion as a plain-text card
func RenderCard(s game.State, catalog *species.Catalog) string {
	c := s.Companion
	name := fmt.Sprintf("#%d", c.SpeciesID)
	types := "?"
	if sp, ok := catalog.Lookup(c.SpeciesID); ok {
		name = sp.DexNumber() + " " + sp.Name
		types = sp.Types.String()
	}

	evolveLine := "Does not evolve"
	if next, ok := pet.CanEvolve(c, catalog); ok {
		evolveLine = "Ready to evolve into " + next.Name + "!"
	} else if sp, ok := catalog.Lookup(c.SpeciesID); ok && sp.CanEvolve() {
		if target, ok := catalog.Lookup(sp.EvolvesTo); ok {
			evolveLine = fmt.Sprintf("Evolves into %s (%s)", target.Name, sp.RequirementLabel())
		}
	}
	seen, caught := s.DexCounts()

	var b strings.Builder
	b.WriteString("╔════════════════════════════════════════╗\n")
	fmt.Fprintf(&b, "  %s %s  Lv. %d\n", pet.MoodEmoji(c.Mood), name, c.Level)
	b.WriteString("╠════════════════════════════════════════╣\n")
	fmt.Fprintf(&b, "  Type:       %s\n", types)
	fmt.Fprintf(&b, "  Nature:     %s\n", c.Nature)
	fmt.Fprintf(&b, "  Status:     %s\n", pet.GetStatusWithLabel(c))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  HP:         [%s] %d/%d\n", makeBar(c.CurrentHP, c.MaxHP), c.CurrentHP, c.MaxHP)
	fmt.Fprintf(&b, "  XP:         [%s] %d/%d\n", makeBar(c.XP, c.XPToNextLevel), c.XP, c.XPToNextLevel)
	fmt.Fprintf(&b, "  Friendship: [%s] %3d%%\n", makeBar(c.Friendship, pet.MaxStat), c.Friendship)
	fmt.Fprintf(&b, "  Hunger:     [%s] %3d%%\n", makeBar(c.Hunger, pet.MaxStat), c.Hunger)
	fmt.Fprintf(&b, "  Energy:     [%s] %3d%%\n", makeBar(c.Energy, pet.MaxStat), c.Energy)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Bag:        %d berries, %d potions\n", s.Inventory[pet.ItemBerry], s.Inventory[pet.ItemPotion])
	fmt.Fprintf(&b, "  Dex:        %d seen, %d caught\n", seen, caught)
	fmt.Fprintf(&b, "  %s\n", evolveLine)
	b.WriteString("╚════════════════════════════════════════╝\n")

	return b.String()
}

// DisplayStats shows the status card full screen until a key is pressed
func DisplayStats(s game.State, catalog *species.Catalog) error {
	program := tea.NewProgram(StatsModel{State: s, Catalog: catalog}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run stats display: %w", err)
	}
	return nil
}
