package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stashdata/stash/internal/commands"
	"github.com/stashdata/stash/internal/ui"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var uiErr *ui.UIError
		if errors.As(err, &uiErr) {
			if !uiErr.SilentExit {
				fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %s", uiErr.Error())))
			}
			os.Exit(1)
		}

		errMsg := err.Error()
		if strings.HasPrefix(errMsg, "unknown command") {
			// Commands suppress usage themselves, so restore it here
			_ = rootCmd.Usage()
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
