// Package main provides the xgx-boundary command: it raises a public
// failure, duplicates it and prints both.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Exit codes following Unix conventions.
const (
	ExitSuccess      = 0 // Command completed successfully
	ExitGeneralError = 1 // General errors
	ExitUsageError   = 2 // Invalid arguments/usage
	ExitConfigError  = 3 // Configuration issues
)

// ExitError carries the exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	app := NewApp(os.Stdout, os.Stderr)

	if err := app.Run(ctx, args); err != nil {
		exitErr := &ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Error())

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)

		return ExitGeneralError
	}

	return ExitSuccess
}
