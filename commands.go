package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pocketpal/internal/chase"
	"pocketpal/internal/game"
	"pocketpal/internal/pet"
	"pocketpal/internal/species"
	"pocketpal/internal/ui"
)

// runChase plays the chase game; swapped out in tests
var runChase = chase.Run

func (a *app) statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show your companion's status card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.game.Decay()
			if popup, _ := cmd.Flags().GetBool("popup"); popup {
				return ui.DisplayStats(a.game.State(), a.game.Catalog())
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderCard(a.game.State(), a.game.Catalog()))
			return nil
		},
	}
	cmd.Flags().Bool("popup", false, "Show the card full screen until a key is pressed")
	return cmd
}

// actionCmd wraps a single container action as a command
func (a *app) actionCmd(use, short string, action func(*game.Container) game.Outcome) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.game.Decay()
			fmt.Fprintln(cmd.OutOrStdout(), action(a.game).Message)
			return nil
		},
	}
}

func (a *app) trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train your companion for experience",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a.game.Decay()

			if withChase, _ := cmd.Flags().GetBool("chase"); withChase {
				s := a.game.State()
				name := companionName(a.game.Catalog(), s.Companion.SpeciesID)
				target := chase.RandomTarget(rand.New(rand.NewSource(time.Now().UnixNano())))

				caught, err := runChase(s.Companion, name, target)
				if err != nil {
					return err
				}
				if !caught {
					fmt.Fprintf(out, "The %s got away. No training this time.\n", target.Name)
					return nil
				}
				fmt.Fprintf(out, "%s caught the %s!\n", name, target.Name)
			}

			fmt.Fprintln(out, a.game.Train().Message)
			return nil
		},
	}
	cmd.Flags().Bool("chase", false, "Chase a target first; training only counts if it is caught")
	return cmd
}

func (a *app) switchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id>",
		Short: "Make a species your new companion at level 5",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.game.SetCompanion(id).Message)
			return nil
		},
	}
}

func (a *app) teamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "List the species you have caught",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := a.game.State()
			for _, id := range s.CaughtIDs() {
				sp, ok := a.game.Catalog().Lookup(id)
				if !ok {
					continue
				}
				marker := " "
				if id == s.Companion.SpeciesID {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %-12s %s\n", marker, sp.DexNumber(), sp.Name, sp.Types)
			}
			return nil
		},
	}
}

func (a *app) bagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bag",
		Short: "List the items you are carrying",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			inv := a.game.State().Inventory
			for _, item := range pet.Items {
				fmt.Fprintf(out, "%s %-7s x%d  %s\n", item.Emoji, item.Name, inv[item.ID], item.Effect)
			}
			return nil
		},
	}
}

func (a *app) dexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dex",
		Short: "Show the creature index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := a.game.State()
			rows := game.DexRows(s, a.game.Catalog())

			if asCSV, _ := cmd.Flags().GetBool("csv"); asCSV {
				return game.WriteDexCSV(out, rows)
			}

			seen, caught := s.DexCounts()
			fmt.Fprintf(out, "Seen %d  Caught %d  of %d\n\n", seen, caught, len(rows))
			for _, r := range rows {
				mark := " "
				switch {
				case r.Caught:
					mark = "●"
				case r.Seen:
					mark = "○"
				}
				fmt.Fprintf(out, "%s #%03d %s\n", mark, r.ID, r.Name)
			}
			return nil
		},
	}
	cmd.Flags().Bool("csv", false, "Write the index as CSV")
	return cmd
}

func (a *app) speciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "species <id>",
		Short: "Show a species definition and its evolution line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			catalog := a.game.Catalog()
			sp, ok := catalog.Lookup(id)
			if !ok {
				return fmt.Errorf("unknown species #%d", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", sp.DexNumber(), sp.Name)
			fmt.Fprintf(out, "Type:      %s\n", sp.Types)
			fmt.Fprintf(out, "Base:      HP %d  Atk %d  Def %d  SpA %d  SpD %d  Spe %d (total %d)\n",
				sp.HP, sp.Attack, sp.Defense, sp.SpAttack, sp.SpDefense, sp.Speed, sp.Total())
			fmt.Fprintf(out, "Natures:   %s\n", strings.Join(sp.Natures, ", "))
			fmt.Fprintf(out, "Evolution: %s\n", ui.RenderChain(catalog, sp.ID))
			if sp.Description != "" {
				fmt.Fprintf(out, "\n%s\n", sp.Description)
			}
			return nil
		},
	}
}

func (a *app) settingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "settings theme|sound",
		Short:     "Toggle the theme or sound setting",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"theme", "sound"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var out game.Outcome
			switch args[0] {
			case "theme":
				out = a.game.ToggleTheme()
			case "sound":
				out = a.game.ToggleSound()
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all progress and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				fmt.Fprint(out, "Reset the game? Your companion, dex and bag will be lost. [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Fprintln(out, "Reset cancelled")
					return nil
				}
			}
			fmt.Fprintln(out, a.game.Reset().Message)
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep applying decay in the background until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching every %s. Press Ctrl+C to stop.\n", a.cfg.Decay.Interval)
			log.Printf("Decay loop started (every %s)", a.cfg.Decay.Interval)

			err := game.RunDecay(ctx, a.game, a.cfg.Decay.Interval)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Printf("Decay loop stopped")
				return nil
			}
			return err
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid species id %q", arg)
	}
	return id, nil
}

func companionName(catalog *species.Catalog, id int) string {
	if sp, ok := catalog.Lookup(id); ok {
		return sp.Name
	}
	return fmt.Sprintf("#%d", id)
}
