package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/japl-lang/japl/internal/session"
)

// runREPL starts an interactive prompt that keeps one Session alive across
// inputs, so earlier declarations remain visible to later lines.
func runREPL() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     replHistoryFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start REPL: %w", err)
	}
	defer rl.Close()

	s := session.New(os.Stdout, true)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		s.Run(line)
	}
}

// replHistoryFile returns a history path under the user's home directory,
// falling back to disabling history if it cannot be determined.
func replHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.jpl_history"
}
