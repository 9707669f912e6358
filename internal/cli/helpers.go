package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Global flags (will be set from cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// Output streams for status lines. Commands point them at the cobra streams
// so tests can capture them.
var (
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error
	stdin  io.Reader = os.Stdin
)

var (
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
	if nc {
		color.NoColor = true
	}
}

// SetOutput redirects status lines and confirmation prompts
func SetOutput(out, errOut io.Writer, in io.Reader) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
	if in != nil {
		stdin = in
	}
}

// Quiet reports whether --quiet is in effect
func Quiet() bool {
	return quiet
}

// Confirm prompts the user for confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(stdout, prompt+suffix)

	reader := bufio.NewReader(stdin)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stdout, "OK: %s\n", msg)
		return
	}
	successColor.Fprintf(stdout, "✓ %s\n", msg)
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stdout, "INFO: %s\n", msg)
		return
	}
	infoColor.Fprintf(stdout, "ℹ %s\n", msg)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stderr, "WARNING: %s\n", msg)
		return
	}
	warnColor.Fprintf(stderr, "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stderr, "ERROR: %s\n", msg)
		return
	}
	errorColor.Fprintf(stderr, "✗ %s\n", msg)
}

// Dim renders secondary text, such as hints under a table
func Dim(s string) string {
	if noColor {
		return s
	}
	return dimColor.Sprint(s)
}
