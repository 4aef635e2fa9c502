// Command scoremark transplants behaviors between scorevideo logs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/scoremark/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands print their own failures through the output formatter.
	// Anything else is a flag, argument or usage error.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(exitErr.Code)
}
