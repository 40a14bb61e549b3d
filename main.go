package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/evgfitil/cargo-query/cmd"
	"github.com/evgfitil/cargo-query/internal/action"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrCancelled) {
			fmt.Fprintln(os.Stderr, cmd.ErrCancelled)
			os.Exit(cmd.ExitCodeCancelled)
		}
		// cargo already reported why it failed.
		var exitErr *action.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
