package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/magpie/internal/config"
	"github.com/aidanlsb/magpie/internal/shellquote"
	"github.com/aidanlsb/magpie/internal/ui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive shell",
	Long: `Starts an interactive shell that accepts magpie commands without
the leading binary name. Lines are split with shell-style quoting, so
quoted arguments work as they do in a terminal. History persists across
sessions.

Type 'exit' or press Ctrl-D to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

func runShell() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeShellLine)

	historyPath := config.HistoryPath()
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Println(ui.Header("magpie shell"))
	fmt.Println(ui.Hint("Store: " + getStorePath()))
	fmt.Println(ui.Hint("Type 'help' for commands, 'exit' to leave."))

	for {
		input, err := line.Prompt("magpie> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(trimmed)

		if trimmed == "exit" || trimmed == "quit" {
			break
		}

		argv, err := shellquote.Split(trimmed)
		if err != nil {
			fmt.Println(ui.Errorf("%v", err))
			continue
		}
		if len(argv) > 0 && argv[0] == "shell" {
			fmt.Println(ui.Hint("Already in a shell."))
			continue
		}
		runShellCommand(argv)
	}

	saveShellHistory(line, historyPath)
	return nil
}

// runShellCommand dispatches one line through the root command. Flag state
// is reset afterwards so values don't leak into the next line.
func runShellCommand(argv []string) {
	rootCmd.SetArgs(argv)
	_ = rootCmd.Execute() // Cobra has already printed the error
	resetCommandFlags(rootCmd)
}

// resetCommandFlags restores every changed flag in the command tree to its
// default.
func resetCommandFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			_ = slice.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}

// completeShellLine offers top-level command names for the first word.
func completeShellLine(input string) []string {
	if strings.ContainsAny(input, " \t") {
		return nil
	}
	var names []string
	for _, sub := range rootCmd.Commands() {
		if sub.Hidden || sub.Name() == "shell" {
			continue
		}
		if strings.HasPrefix(sub.Name(), input) {
			names = append(names, sub.Name())
		}
	}
	sort.Strings(names)
	return names
}

func saveShellHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
