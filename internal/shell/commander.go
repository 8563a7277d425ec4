package shell

import (
	"os/exec"
)

// Commander is the one seam between gridmux and the tmux binary; tests swap
// in fakes that replay canned output.
type Commander interface {
	Run(name string, args ...string) ([]byte, error)
}

type ExecCommander struct{}

func (e *ExecCommander) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}
