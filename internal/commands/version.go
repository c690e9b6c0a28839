package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stashdata/stash/internal/ui"
	"github.com/stashdata/stash/internal/version"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stash version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetFullVersion())

			latest, available, err := version.CheckForUpdate(cmd.Context())
			if err == nil && available {
				fmt.Println(ui.WarningStyle.Render(fmt.Sprintf("Update available: %s", latest)))
				fmt.Println(ui.URLStyle.Render("https://github.com/stashdata/stash/releases/latest"))
			}
		},
	}
}
