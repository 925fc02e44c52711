package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Earnest-Williams/roomlife/internal/action"
	"github.com/Earnest-Williams/roomlife/internal/engine"
)

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger("warn")
	defer logger.Sync()

	session, err := startSession(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "roomlife. Type 'help' for commands.")
	printStatus(out, session)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			fmt.Fprintln(out, "commands: status, look, actions, do <id> [name=value ...], move <space>, wait, save, quit")
			fmt.Fprintln(out, "param values: plain strings, item:<item_id>, or inst:<instance_id>")
		case "status":
			printStatus(out, session)
		case "look":
			printLook(out, session)
		case "actions":
			for _, id := range session.Executor().ActionIDs() {
				spec, _ := session.Executor().Action(id)
				fmt.Fprintf(out, "  %-24s %s\n", id, spec.DisplayName)
			}
		case "do":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: do <action_id> [name=value ...]")
				continue
			}
			doAction(out, session, fields[1], fields[2:])
		case "move":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: move <space_id>")
				continue
			}
			if err := session.Move(fields[1]); err != nil {
				fmt.Fprintln(out, err)
			} else {
				printLook(out, session)
			}
		case "wait":
			session.Wait()
			printStatus(out, session)
		case "save":
			if err := session.Save(); err != nil {
				fmt.Fprintln(out, err)
			} else {
				fmt.Fprintln(out, "saved.")
			}
		case "quit", "exit":
			return session.Save()
		default:
			fmt.Fprintf(out, "unknown command: %s\n", fields[0])
		}
	}
	return session.Save()
}

func doAction(out io.Writer, session *engine.Session, actionID string, params []string) {
	call := action.NewCall(actionID)
	for _, p := range params {
		name, value, found := strings.Cut(p, "=")
		if !found {
			fmt.Fprintf(out, "bad parameter %q, want name=value\n", p)
			return
		}
		switch {
		case strings.HasPrefix(value, "inst:"):
			call = call.WithParam(name, action.ItemRef{InstanceID: strings.TrimPrefix(value, "inst:")})
		case strings.HasPrefix(value, "item:"):
			call = call.WithParam(name, action.ItemRef{ItemID: strings.TrimPrefix(value, "item:")})
		default:
			call = call.WithParam(name, value)
		}
	}

	result, err := session.Perform(call)
	if err != nil {
		var vErr *action.ValidationError
		if errors.As(err, &vErr) {
			fmt.Fprintf(out, "can't do that: %s\n", strings.Join(vErr.Missing, ", "))
			return
		}
		var cErr *action.ConsumeError
		if errors.As(err, &cErr) {
			fmt.Fprintf(out, "can't do that: %s\n", cErr.Detail)
			return
		}
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintf(out, "%s resolved at tier %d.\n", result.ActionID, result.Tier)
	printStatus(out, session)
}

func printStatus(out io.Writer, session *engine.Session) {
	st := session.State()
	n := st.Player.Needs
	fmt.Fprintf(out, "day %d, %s, at %s. £%d.%02d\n",
		st.World.Day, st.World.Slice, st.World.Location,
		st.Player.MoneyPence/100, st.Player.MoneyPence%100)
	fmt.Fprintf(out, "hunger %d  fatigue %d  hygiene %d  warmth %d  mood %d  health %d\n",
		n.Hunger, n.Fatigue, n.Hygiene, n.Warmth, n.Mood, n.Health)
}

func printLook(out io.Writer, session *engine.Session) {
	st := session.State()
	space := st.Spaces[st.World.Location]
	if space == nil {
		fmt.Fprintln(out, "nowhere in particular.")
		return
	}
	fmt.Fprintf(out, "%s (%s). Exits: %s\n", space.Name, space.SpaceID, strings.Join(space.Connections, ", "))
	for _, it := range st.ItemsAt(space.SpaceID) {
		fmt.Fprintf(out, "  %s [%s] (%s)\n", it.ItemID, it.Condition, it.InstanceID[:8])
	}
}
