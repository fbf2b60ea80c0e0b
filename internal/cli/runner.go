package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
	"github.com/idilsaglam/tada/internal/usecase"
)

// Options tune behavior from root flags.
type Options struct {
	Group      bool   // list grouped by pending/done
	ConfigPath string // YAML config; empty reads ./tada.yaml when present
	Theme      string // overrides the configured theme
	Color      bool   // emit color codes even when stdout is not a terminal
	NoColor    bool   // never emit color codes
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	// validate usage before touching storage
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ls", "tui", "watch":
	case "add":
		if len(a) == 0 {
			ui.Fail("usage: todo add <title...>")
			return 2
		}
	case "edit":
		if len(a) < 2 {
			ui.Fail("usage: todo edit <index> <title...>")
			return 2
		}
	case "done", "rm":
		if len(a) != 1 {
			ui.Fail(fmt.Sprintf("usage: todo %s <index>", cmd))
			return 2
		}
	default:
		ui.Fail("unknown subcommand: " + cmd)
		fmt.Fprintln(ui.Err)
		PrintHelp()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := openApp(ctx, opt)
	if err != nil {
		ui.Fail("init: " + err.Error())
		return 1
	}
	defer svc.Close()

	switch cmd {
	case "ls":
		return svc.doList(ctx)
	case "tui":
		if err := tui.Run(ctx, svc.repo, svc.uc); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0
	case "watch":
		return svc.doWatch(ctx)
	case "add":
		return svc.doAdd(ctx, strings.Join(a, " "))
	case "edit":
		n, code := parseIndex("edit", a[0])
		if code != 0 {
			return code
		}
		return svc.doEdit(ctx, n, strings.Join(a[1:], " "))
	case "done":
		n, code := parseIndex("done", a[0])
		if code != 0 {
			return code
		}
		return svc.doToggle(ctx, n)
	default: // rm
		n, code := parseIndex("rm", a[0])
		if code != 0 {
			return code
		}
		return svc.doRemove(ctx, n)
	}
}

func PrintHelp() {
	fmt.Fprint(ui.Out, `todo - a tiny CLI

Usage:
  todo [-config file] [-group] [-theme name] [-color|-no-color] <subcommand> [args]

Subcommands:
  add <title...>          Add a new item (title can be multiple words)
  ls                      List items
  edit <index> <title...> Change the title of item at 1-based index
  done <index>            Toggle done for item at 1-based index
  rm <index>              Remove item at 1-based index
  tui                     Interactive list
  watch                   Re-render the list whenever the store file changes

Examples:
  todo add "Buy milk"
  todo ls
  todo edit 1 "Buy oat milk"
  todo done 2
  todo rm 3
`)
}

func parseIndex(cmd, arg string) (int, int) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		ui.Fail(cmd + ": not a number: " + arg)
		return 0, 2
	}
	return n, 0
}

// -------------- subcommand impls ----------------

func (a *app) doList(ctx context.Context) int {
	items, err := a.uc.List.Execute(ctx)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	ui.Panel(ui.ListLines(items, a.cfg.Group))
	return 0
}

func (a *app) doAdd(ctx context.Context, title string) int {
	_, err := a.uc.Create.Execute(ctx, usecase.CreateTodoItemInput{Title: title})
	if errors.Is(err, usecase.ErrEmptyTitle) {
		ui.Fail("add: empty title")
		return 2
	}
	if err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("added")
	return 0
}

func (a *app) doEdit(ctx context.Context, userIndex int, title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("edit: empty title")
		return 2
	}
	id, code := a.resolve(ctx, userIndex)
	if code != 0 {
		return code
	}
	err := a.uc.UpdateTitle.Execute(ctx, usecase.UpdateTodoItemTitleInput{ID: id, Title: title})
	return a.report(err, "updated")
}

func (a *app) doToggle(ctx context.Context, userIndex int) int {
	id, code := a.resolve(ctx, userIndex)
	if code != 0 {
		return code
	}
	err := a.uc.Toggle.Execute(ctx, usecase.ToggleTodoItemInput{ID: id})
	return a.report(err, "toggled")
}

func (a *app) doRemove(ctx context.Context, userIndex int) int {
	id, code := a.resolve(ctx, userIndex)
	if code != 0 {
		return code
	}
	err := a.uc.Remove.Execute(ctx, usecase.RemoveTodoItemInput{ID: id})
	return a.report(err, "removed")
}

// resolve maps a 1-based index from `todo ls` to an item id.
func (a *app) resolve(ctx context.Context, userIndex int) (model.ItemID, int) {
	items, err := a.uc.List.Execute(ctx)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return "", 1
	}
	if userIndex < 1 || userIndex > len(items) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(items), userIndex))
		fmt.Fprintln(ui.Err, ui.Dim("Hint: run `todo ls` to see valid indexes"))
		return "", 2
	}
	return items[userIndex-1].ID(), 0
}

func (a *app) report(err error, done string) int {
	switch {
	case err == nil:
		ui.OK(done)
		return 0
	case errors.Is(err, model.ErrItemNotFound), errors.Is(err, usecase.ErrTodoListNotFound):
		// the list changed between resolve and the update
		ui.Fail(err.Error())
		return 2
	default:
		ui.Fail("save: " + err.Error())
		return 1
	}
}
