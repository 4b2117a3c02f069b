package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pocketpal/internal/pet"
	"pocketpal/internal/species"
)

// dexWindow is how many dex rows are visible at once
const dexWindow = 10

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}

	st := stylesFor(m.State.Theme)

	if m.Animation.Type != AnimNone {
		return m.renderAnimation(st)
	}

	var body string
	switch m.Screen {
	case ScreenTeam:
		body = m.renderTeam(st)
	case ScreenDex:
		body = m.renderDex(st)
	case ScreenSettings:
		body = m.renderSettings(st)
	case ScreenConfirmReset:
		body = m.renderConfirmReset(st)
	default:
		body = m.renderMain(st)
	}

	sections := []string{body}
	if m.Message != "" && TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", st.status.Render(m.Message))
	}
	sections = append(sections, "", m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitle(st styles) string {
	c := m.State.Companion
	emoji := pet.MoodEmoji(c.Mood)
	return st.title.Render(fmt.Sprintf("%s %s  Lv. %d %s", emoji, m.companionName(), c.Level, emoji))
}

func (m Model) renderMain(st styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(st),
		"",
		m.renderStats(st),
		"",
		st.status.Render("Status: "+pet.GetStatusWithLabel(m.State.Companion)),
		"",
		renderMenu(st, mainMenu, m.Choice),
	)
}

func (m Model) renderStats(st styles) string {
	c := m.State.Companion
	bar := m.bar
	bar.FullColor = string(st.palette.Bar)
	bar.EmptyColor = string(st.palette.BarEmpty)

	var types string
	if s, ok := m.Game.Catalog().Lookup(c.SpeciesID); ok {
		types = s.Types.String()
	}

	rows := []struct {
		name, bar, value string
	}{
		{"HP", bar.ViewAs(percent(c.CurrentHP, c.MaxHP)), fmt.Sprintf("%d/%d", c.CurrentHP, c.MaxHP)},
		{"XP", bar.ViewAs(percent(c.XP, c.XPToNextLevel)), fmt.Sprintf("%d/%d", c.XP, c.XPToNextLevel)},
		{"Friendship", bar.ViewAs(percent(c.Friendship, pet.MaxStat)), fmt.Sprintf("%d%%", c.Friendship)},
		{"Hunger", bar.ViewAs(percent(c.Hunger, pet.MaxStat)), fmt.Sprintf("%d%%", c.Hunger)},
		{"Energy", bar.ViewAs(percent(c.Energy, pet.MaxStat)), fmt.Sprintf("%d%%", c.Energy)},
	}

	lines := []string{
		fmt.Sprintf("%-11s %s", "Type:", types),
		fmt.Sprintf("%-11s %s", "Nature:", c.Nature),
		fmt.Sprintf("%-11s %s", "Mood:", c.Mood),
		fmt.Sprintf("%-11s %d berries, %d potions", "Bag:", m.State.Inventory[pet.ItemBerry], m.State.Inventory[pet.ItemPotion]),
	}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-11s %s %s", r.name+":", r.bar, r.value))
	}

	return st.stats.Render(strings.Join(lines, "\n"))
}

func renderMenu(st styles, choices []string, selected int) string {
	var items []string
	for i, choice := range choices {
		if i == selected {
			items = append(items, st.selected.Render("> "+choice))
		} else {
			items = append(items, "  "+choice)
		}
	}
	return st.menuBox.Render(strings.Join(items, "\n"))
}

func (m Model) renderTeam(st styles) string {
	catalog := m.Game.Catalog()
	var choices []string
	for _, id := range m.State.CaughtIDs() {
		s, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		label := fmt.Sprintf("%s %-12s %s", s.DexNumber(), s.Name, s.Types)
		if id == m.State.Companion.SpeciesID {
			label += " (current)"
		}
		choices = append(choices, label)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render("Team"),
		st.muted.Render("Pick a caught companion. Your new partner starts over at level 5."),
		"",
		renderMenu(st, choices, m.TeamChoice),
	)
}

func (m Model) renderDex(st styles) string {
	catalog := m.Game.Catalog()
	all := catalog.All()
	seen, caught := m.State.DexCounts()

	start := max(0, min(m.DexChoice-dexWindow/2, len(all)-dexWindow))
	end := min(len(all), start+dexWindow)

	var rows []string
	for i := start; i < end; i++ {
		s := all[i]
		entry := m.State.Dex[s.ID]
		mark, name := "  ", "???"
		switch {
		case entry.Caught:
			mark, name = "● ", s.Name
		case entry.Seen:
			mark, name = "○ ", s.Name
		}
		row := fmt.Sprintf("%s%s %s", mark, s.DexNumber(), name)
		if i == m.DexChoice {
			row = st.selected.Render(row)
		}
		rows = append(rows, row)
	}

	var detail string
	if m.DexChoice >= 0 && m.DexChoice < len(all) {
		detail = m.renderDexDetail(st, all[m.DexChoice])
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render(fmt.Sprintf("Dex  seen %d  caught %d / %d", seen, caught, len(all))),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			st.menuBox.Render(strings.Join(rows, "\n")),
			detail,
		),
	)
}

func (m Model) renderDexDetail(st styles, s species.Species) string {
	if !m.State.Dex[s.ID].Seen {
		return st.muted.Render("Not yet seen")
	}

	lines := []string{
		st.selected.Render(s.DexNumber() + " " + s.Name),
		"Type: " + s.Types.String(),
		fmt.Sprintf("HP %d  Atk %d  Def %d", s.HP, s.Attack, s.Defense),
		fmt.Sprintf("SpA %d  SpD %d  Spe %d", s.SpAttack, s.SpDefense, s.Speed),
		"",
		"Evolution: " + RenderChain(m.Game.Catalog(), s.ID),
		"",
		lipgloss.NewStyle().Width(36).Render(s.Description),
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n"))
}

// RenderChain formats the evolution line through id, with the requirement
// for each step, e.g. "Bulbasaur → (Lv. 16) Ivysaur → (Lv. 32) Venusaur"
func RenderChain(catalog *species.Catalog, id int) string {
	chain := catalog.EvolutionChain(id)
	if len(chain) <= 1 {
		return "Does not evolve"
	}

	var b strings.Builder
	for i, s := range chain {
		if i > 0 {
			fmt.Fprintf(&b, " → (%s) ", chain[i-1].RequirementLabel())
		}
		b.WriteString(s.Name)
	}
	return b.String()
}

func (m Model) renderSettings(st styles) string {
	sound := "off"
	if m.State.SoundEnabled {
		sound = "on"
	}
	choices := []string{
		"Theme: " + m.State.Theme,
		"Sound: " + sound,
		"Back",
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render("Settings"),
		"",
		renderMenu(st, choices, m.SettingsChoice),
	)
}

func (m Model) renderConfirmReset(st styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		st.warning.Render("⚠️  Reset the game?"),
		"",
		st.status.Render("Your companion, dex and bag will be lost."),
		"",
		st.status.Render("Press 'y' for yes, 'n' for no"),
	)
}

func (m Model) renderAnimation(st styles) string {
	sections := []string{
		m.renderTitle(st),
		"",
		st.anim.Render(GetAnimationFrame(m.Animation)),
	}
	if m.Message != "" && TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", st.status.Render(m.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// dexIndex finds id's position in catalog order
func (m Model) dexIndex(id int) int {
	for i, s := range m.Game.Catalog().All() {
		if s.ID == id {
			return i
		}
	}
	return 0
}
