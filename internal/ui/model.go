// Package ui is the bubbletea front end: the main companion screen, the
// team, dex and settings screens, and a printable status card.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"pocketpal/internal/game"
)

// TimeNow is swapped out by tests
var TimeNow = time.Now

// Screen identifies which view is active
type Screen int

const (
	ScreenMain Screen = iota
	ScreenTeam
	ScreenDex
	ScreenSettings
	ScreenConfirmReset
)

// Main menu entries
const (
	MenuPet = iota
	MenuFeed
	MenuTrain
	MenuPotion
	MenuEvolve
	MenuTeam
	MenuDex
	MenuSettings
	MenuReset
	MenuQuit
)

var mainMenu = []string{"Pet", "Feed", "Train", "Potion", "Evolve", "Team", "Dex", "Settings", "Reset", "Quit"}

// Settings entries
const (
	SettingsTheme = iota
	SettingsSound
	SettingsBack
)

const messageDuration = 3 * time.Second

// Model is the TUI state. The game record itself lives in the container;
// State is the latest snapshot of it.
type Model struct {
	Game           *game.Container
	State          game.State
	Screen         Screen
	Choice         int
	TeamChoice     int
	DexChoice      int
	SettingsChoice int
	Quitting       bool
	Message        string
	MessageExpires time.Time
	Animation      Animation
	TickEvery      time.Duration
	Bell           io.Writer // receives the terminal bell when sound is on

	keys keyMap
	help help.Model
	bar  progress.Model
}

type tickMsg time.Time
type animTickMsg struct {
	started time.Time
}

// NewModel creates the TUI model around a container. tickEvery is how often
// decay is evaluated while the UI is open.
func NewModel(c *game.Container, tickEvery time.Duration) Model {
	if tickEvery <= 0 {
		tickEvery = time.Minute
	}
	return Model{
		Game:      c,
		State:     c.State(),
		TickEvery: tickEvery,
		Bell:      os.Stdout,
		keys:      defaultKeyMap(),
		help:      help.New(),
		bar:       progress.New(progress.WithWidth(20), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model. Decay is evaluated once on startup.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return tickMsg(TimeNow())
	}
}

func tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.Quitting = true
			return m, tea.Quit
		}
		// While an animation is playing, ignore everything but quit
		if m.Animation.Type != AnimNone {
			return m, nil
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.Screen {
		case ScreenTeam:
			return m.updateTeam(msg)
		case ScreenDex:
			return m.updateDex(msg)
		case ScreenSettings:
			return m.updateSettings(msg)
		case ScreenConfirmReset:
			return m.updateConfirmReset(msg)
		default:
			return m.updateMain(msg)
		}

	case tickMsg:
		out := m.Game.Decay()
		m.State = m.Game.State()
		if out.Applied && out.Decay > 0 {
			m.setMessage(out.Message)
		}
		return m, tick(m.TickEvery)

	case animTickMsg:
		// Drop ticks that belong to an older animation
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}
		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.Choice > 0 {
			m.Choice--
		}
	case key.Matches(msg, m.keys.Down):
		if m.Choice < len(mainMenu)-1 {
			m.Choice++
		}
	case key.Matches(msg, m.keys.Select):
		switch m.Choice {
		case MenuPet:
			return m, m.perform(m.Game.Pet(), AnimPet)
		case MenuFeed:
			return m, m.perform(m.Game.Feed(), AnimFeed)
		case MenuTrain:
			return m, m.perform(m.Game.Train(), AnimTrain)
		case MenuPotion:
			return m, m.perform(m.Game.UsePotion(), AnimPotion)
		case MenuEvolve:
			return m, m.perform(m.Game.Evolve(), AnimEvolve)
		case MenuTeam:
			m.Screen = ScreenTeam
			m.TeamChoice = 0
		case MenuDex:
			m.Screen = ScreenDex
			m.DexChoice = m.dexIndex(m.State.Companion.SpeciesID)
		case MenuSettings:
			m.Screen = ScreenSettings
			m.SettingsChoice = 0
		case MenuReset:
			m.Screen = ScreenConfirmReset
		case MenuQuit:
			m.Quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateTeam(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	team := m.State.CaughtIDs()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.Screen = ScreenMain
	case key.Matches(msg, m.keys.Up):
		if m.TeamChoice > 0 {
			m.TeamChoice--
		}
	case key.Matches(msg, m.keys.Down):
		if m.TeamChoice < len(team)-1 {
			m.TeamChoice++
		}
	case key.Matches(msg, m.keys.Select):
		if m.TeamChoice >= len(team) {
			return m, nil
		}
		out := m.Game.SetCompanion(team[m.TeamChoice])
		m.State = m.Game.State()
		m.setMessage(out.Message)
		m.Screen = ScreenMain
	}
	return m, nil
}

func (m Model) updateDex(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := m.Game.Catalog().Len()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.Screen = ScreenMain
	case key.Matches(msg, m.keys.Up):
		if m.DexChoice > 0 {
			m.DexChoice--
		}
	case key.Matches(msg, m.keys.Down):
		if m.DexChoice < total-1 {
			m.DexChoice++
		}
	}
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.Screen = ScreenMain
	case key.Matches(msg, m.keys.Up):
		if m.SettingsChoice > 0 {
			m.SettingsChoice--
		}
	case key.Matches(msg, m.keys.Down):
		if m.SettingsChoice < SettingsBack {
			m.SettingsChoice++
		}
	case key.Matches(msg, m.keys.Select):
		var out game.Outcome
		switch m.SettingsChoice {
		case SettingsTheme:
			out = m.Game.ToggleTheme()
		case SettingsSound:
			out = m.Game.ToggleSound()
		default:
			m.Screen = ScreenMain
			return m, nil
		}
		m.State = m.Game.State()
		m.setMessage(out.Message)
	}
	return m, nil
}

func (m Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		out := m.Game.Reset()
		m.State = m.Game.State()
		m.Choice = 0
		m.setMessage(out.Message)
		m.Screen = ScreenMain
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Back):
		m.Screen = ScreenMain
	}
	return m, nil
}

// perform refreshes the snapshot after a container action and starts its
// animation. Refused actions only show their message.
func (m *Model) perform(out game.Outcome, anim AnimationType) tea.Cmd {
	m.State = m.Game.State()
	m.setMessage(out.Message)
	if !out.Applied {
		return nil
	}

	m.startAnimation(anim)
	cmds := []tea.Cmd{animTick(m.Animation.StartTime)}
	if m.State.SoundEnabled && (out.LevelsGained > 0 || out.Evolved) {
		cmds = append(cmds, m.ringBell())
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) ringBell() tea.Cmd {
	w := m.Bell
	return func() tea.Msg {
		if w != nil {
			fmt.Fprint(w, "\a")
		}
		return nil
	}
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = TimeNow().Add(messageDuration)
}

func (m *Model) startAnimation(animType AnimationType) {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: TimeNow(),
	}
}

// Run starts the TUI and blocks until the player quits
func Run(c *game.Container, tickEvery time.Duration) error {
	program := tea.NewProgram(NewModel(c, tickEvery), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// companionName resolves the current species name for display
func (m Model) companionName() string {
	if s, ok := m.Game.Catalog().Lookup(m.State.Companion.SpeciesID); ok {
		return s.Name
	}
	return fmt.Sprintf("#%d", m.State.Companion.SpeciesID)
}

func percent(value, maxValue int) float64 {
	if maxValue <= 0 {
		return 0
	}
	return float64(min(max(value, 0), maxValue)) / float64(maxValue)
}
