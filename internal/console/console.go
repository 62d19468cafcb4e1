package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

// Caller runs work on the UI loop and waits for it
type Caller interface {
	Call(ctx context.Context, fn func() error) error
}

// NewReadline creates the interactive line reader shared by the console
// and its panel
func NewReadline() (*readline.Instance, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, name := range Names() {
		items = append(items, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mp4> ",
		AutoComplete:    readline.NewPrefixCompleter(items...),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open console: %w", err)
	}
	return rl, nil
}

// Console reads commands and runs them against the controller on the UI loop
type Console struct {
	logger *zap.Logger
	rl     *readline.Instance
	loop   Caller
	ctrl   Controller
}

// New creates a console
func New(logger *zap.Logger, rl *readline.Instance, loop Caller, ctrl Controller) *Console {
	return &Console{
		logger: logger,
		rl:     rl,
		loop:   loop,
		ctrl:   ctrl,
	}
}

// Run reads lines until quit, EOF, interrupt or ctx cancellation
func (c *Console) Run(ctx context.Context) error {
	out := c.rl.Stdout()
	fmt.Fprintln(out, "Commands:", strings.Join(Names(), ", "))

	for {
		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("console read failed: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := c.Execute(ctx, line, out); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(out, "error:", err)
		}
	}
}

// Execute parses and runs one line, writing any command output to out
func (c *Console) Execute(ctx context.Context, line string, out io.Writer) error {
	cmd, err := Parse(line)
	if err != nil {
		return err
	}

	err = c.loop.Call(ctx, func() error {
		result, err := cmd.Run(c.ctrl)
		if result != "" {
			fmt.Fprintln(out, result)
		}
		return err
	})
	if err != nil && !errors.Is(err, ErrQuit) {
		c.logger.Debug("Console command failed", zap.String("command", cmd.Name), zap.Error(err))
	}
	return err
}

// Close releases the terminal
func (c *Console) Close() error {
	return c.rl.Close()
}
