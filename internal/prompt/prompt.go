// Package prompt runs the line-based interactive rollers
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
)

// errTerminated ends a dialogue when the user quits or input runs out
var errTerminated = errors.New(errors.CodeCanceled, "terminated")

// Config holds the prompt's streams and the roller it drives
type Config struct {
	In     io.Reader
	Out    io.Writer
	Roller roller.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.In == nil {
		vb.RequiredField("In")
	}
	if c.Out == nil {
		vb.RequiredField("Out")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Prompt reads answers line by line and prints results
type Prompt struct {
	in     *bufio.Scanner
	out    io.Writer
	roller roller.Service
}

// New creates a prompt
func New(cfg *Config) (*Prompt, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Prompt{
		in:     bufio.NewScanner(cfg.In),
		out:    cfg.Out,
		roller: cfg.Roller,
	}, nil
}

// Menu asks which roller to run, runs it once, and returns
func (p *Prompt) Menu(ctx context.Context) error {
	for {
		choice, err := p.ask("Roll what? (1=JumpShip, 2=DropShip, 3=Audit DS data, 4=Primitive JumpShip, q=quit): ")
		if err == errTerminated {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			return p.JumpShips(ctx)
		case "2":
			return p.DropShips(ctx)
		case "3":
			return p.Audit(ctx)
		case "4":
			return p.PrimitiveJumpShips(ctx)
		}
		p.println("Please enter 1, 2, 3, 4, or q.")
	}
}

// JumpShips runs the JumpShip roll loop
func (p *Prompt) JumpShips(ctx context.Context) error {
	p.println("JumpShip Class Roller (d100 weighted)")
	p.printf("Type 'q' at any prompt to quit.\n\n")

	return p.terminate(p.rollLoop(
		"How many JumpShips do you want to roll? ",
		"Roll again? (y/n) ",
		func(n int) error {
			out, err := p.roller.RollJumpShips(ctx, &roller.RollJumpShipsInput{Count: n})
			if err != nil {
				return err
			}
			for i, r := range out.Results {
				p.printf("JS-%02d: %s\n", i+1, r.Line)
			}
			return nil
		},
	))
}

// Audit prints the DropShip catalog audit
func (p *Prompt) Audit(ctx context.Context) error {
	out, err := p.roller.Audit(ctx, &roller.AuditInput{Table: roller.TableDropShip})
	if err != nil {
		return err
	}
	return out.Report.WriteText(p.out)
}

// ask prints a question and returns the trimmed, lower-cased answer.
// Quit words and end of input yield errTerminated.
func (p *Prompt) ask(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", errors.Wrap(err, "failed to read input")
		}
		return "", errTerminated
	}

	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	switch answer {
	case "q", "quit", "exit":
		return "", errTerminated
	}
	return answer, nil
}

// askYesNo returns def for a blank answer
func (p *Prompt) askYesNo(question string, def bool) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		return false, err
	}
	switch answer {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}

// rollLoop asks for a count, rolls, and repeats while the user says yes
func (p *Prompt) rollLoop(countQuestion, againQuestion string, roll func(n int) error) error {
	for {
		raw, err := p.ask(countQuestion)
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(raw)
		if err != nil {
			p.printf("Please enter a whole number (e.g., 1, 5, 20) or 'q' to quit.\n\n")
			continue
		}
		if n <= 0 {
			p.printf("Please enter a positive integer.\n\n")
			continue
		}
		if n > roller.MaxCount {
			p.printf("Please enter a number no larger than %d.\n\n", roller.MaxCount)
			continue
		}

		if err := roll(n); err != nil {
			return err
		}
		p.println()

		again, err := p.askYesNo(againQuestion, false)
		if err != nil {
			return err
		}
		if !again {
			return errTerminated
		}
	}
}

// terminate prints the quit notice and swallows errTerminated
func (p *Prompt) terminate(err error) error {
	if err == errTerminated {
		p.println("Terminated.")
		return nil
	}
	return err
}

func (p *Prompt) println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

func (p *Prompt) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.out, format, a...)
}
