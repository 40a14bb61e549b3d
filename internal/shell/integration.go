// Package shell provides helper functions that run cargo with a selection.
package shell

import (
	_ "embed"
	"fmt"
)

//go:embed scripts/bash.sh
var bashScript string

//go:embed scripts/zsh.zsh
var zshScript string

//go:embed scripts/fish.fish
var fishScript string

// Helpers lists the functions every integration script defines.
var Helpers = []string{"cq-run", "cq-example", "cq-test", "cq-bench"}

// Script returns the shell integration script for the specified shell.
func Script(shell string) (string, error) {
	switch shell {
	case "bash":
		return bashScript, nil
	case "zsh":
		return zshScript, nil
	case "fish":
		return fishScript, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
}
