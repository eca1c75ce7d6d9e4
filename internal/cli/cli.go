// Package cli dispatches subcommands onto the task store.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tankywoo/todo-cli/internal/config"
	"github.com/tankywoo/todo-cli/internal/store"
)

const Version = "0.1.0"

// Exit codes
const (
	ExitOK       = 0
	ExitError    = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

func Run(args []string) int {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "todo"})

	if len(args) == 0 {
		printHelp()
		return ExitUsage
	}
	switch args[0] {
	case "help", "--help", "-h":
		printHelp()
		return ExitOK
	case "version", "--version", "-V":
		fmt.Println("todo-cli " + Version)
		return ExitOK
	}

	path, err := config.DefaultPath()
	if err != nil {
		logger.Error("settings", "err", err)
		return ExitError
	}
	settings, err := config.Load(path)
	if err != nil {
		logger.Error("cannot load settings", "err", err)
		return ExitError
	}
	st := store.New(settings.TaskDir, logger)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add", "a":
		return cmdAdd(st, logger, rest)
	case "edit", "e":
		return cmdEdit(st, logger, rest)
	case "done", "d":
		return cmdDone(st, logger, rest)
	case "print", "p":
		return cmdPrint(st, rest)
	case "export":
		return cmdExport(st, logger, rest)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printHelp()
		return ExitUsage
	}
}

func printHelp() {
	fmt.Print(`todo-cli — tasks as plain text files

Usage:
  todo (add | a) [-i]
  todo (edit | e) <task_id>
  todo (done | d) <task_id>
  todo (print | p) [-v]
  todo export [-dir <path>]
  todo -h | --help
  todo -V | --version

Subcommands:
  add      Add a task under todo/ (-i prompts for fields, then opens $EDITOR)
  edit     Open a task file in $EDITOR
  done     Move a task file into done/
  print    Print open tasks as a table (-v adds create/expire columns)
  export   Write a JSON snapshot of open tasks

Settings are read from ~/.todo-cli (YAML), which must set task_dir.
`)
}

func cmdAdd(st *store.Store, logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	interactive := fs.Bool("i", false, "Prompt for fields and open $EDITOR")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	var opts store.AddOptions
	if *interactive {
		var err error
		opts, err = promptAddOptions(os.Stdin, os.Stdout)
		if err != nil {
			logger.Error("add", "err", err)
			return ExitError
		}
	}
	task, err := st.Add(opts)
	if err != nil {
		logger.Error("add", "err", err)
		return ExitError
	}
	fmt.Println("create task:", task.Path)
	if *interactive {
		if err := openEditor(task.Path); err != nil {
			logger.Warn("editor", "err", err)
		}
	}
	return ExitOK
}

func cmdEdit(st *store.Store, logger *log.Logger, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: todo edit <task_id>")
		return ExitUsage
	}
	path, err := st.Find(args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Error("task not found", "id", args[0])
			return ExitNotFound
		}
		logger.Error("edit", "err", err)
		return ExitError
	}
	fmt.Println("edit task:", path)
	if err := openEditor(path); err != nil {
		logger.Error("edit", "err", err)
		return ExitError
	}
	return ExitOK
}

func cmdDone(st *store.Store, logger *log.Logger, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: todo done <task_id>")
		return ExitUsage
	}
	path, err := st.Done(args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Error("task not found", "id", args[0])
			return ExitNotFound
		}
		logger.Error("done", "err", err)
		return ExitError
	}
	fmt.Println("done task:", path)
	return ExitOK
}

func cmdPrint(st *store.Store, args []string) int {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbose := fs.Bool("v", false, "Show create and expire columns")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	tasks := st.OpenTasks()
	store.SortByUrgency(tasks)
	fmt.Print(store.RenderTable(tasks, *verbose))
	return ExitOK
}

func cmdExport(st *store.Store, logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dir := fs.String("dir", "", "Snapshot directory (default <task_dir>/exports)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	target := *dir
	if target == "" {
		target = filepath.Join(st.Root, "exports")
	}
	path, err := st.Export(target)
	if err != nil {
		logger.Error("export", "err", err)
		return ExitError
	}
	fmt.Println("export tasks:", path)
	return ExitOK
}

func openEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New("environ $EDITOR not set")
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
