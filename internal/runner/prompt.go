// SPDX-License-Identifier: BSD-3-Clause

package runner

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConfirmFunc asks the user a yes/no question and reports the answer.
type ConfirmFunc func(question string) (bool, error)

// TerminalConfirm prompts on the controlling terminal and reads a single
// keypress with echo and line buffering disabled, restoring the terminal
// state immediately after. Only "y" or "Y" confirms; any other key,
// including Enter, is a refusal. When stdin is not a terminal the answer is
// read as a line instead.
func TerminalConfirm(question string) (bool, error) {
	fmt.Fprintf(os.Stdout, "%s [y/N] ", question)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		fmt.Fprintln(os.Stdout)
		return answer == "y" || answer == "yes", nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return false, fmt.Errorf("failed to configure terminal: %w", err)
	}

	var buf [1]byte
	_, readErr := os.Stdin.Read(buf[:])
	restoreErr := term.Restore(fd, oldState)

	if readErr != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", readErr)
	}
	if restoreErr != nil {
		return false, fmt.Errorf("failed to restore terminal: %w", restoreErr)
	}

	fmt.Fprintf(os.Stdout, "%c\n", buf[0])
	return buf[0] == 'y' || buf[0] == 'Y', nil
}
