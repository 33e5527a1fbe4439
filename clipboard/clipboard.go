// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/chatmbti"
)

// Ensure Command implements the Clipboard interface.
var _ chatmbti.Clipboard = (*Command)(nil)

// ErrUnavailable is returned when no clipboard command is installed.
var ErrUnavailable = errors.New("no clipboard command available")

// candidates are tried in order by Detect.
var candidates = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// Command implements Clipboard by piping content to an external command.
type Command struct {
	name string
	args []string
}

// NewCommand returns a Clipboard that runs name with args.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args}
}

// Detect returns a Clipboard for the first installed clipboard command.
func Detect() (*Command, error) {
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return NewCommand(c[0], c[1:]...), nil
		}
	}
	return nil, ErrUnavailable
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.name
}

// Copy writes content to the system clipboard.
func (c *Command) Copy(content string) error {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(content)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}
