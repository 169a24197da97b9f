package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TobiasForner/pkmt-sub000/internal/inbox"
	"github.com/TobiasForner/pkmt-sub000/internal/ui"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "File open tasks from the task inbox into the vault",
	Long: `Fetches the open tasks from the configured inbox endpoint, scrapes each
task's page title and writes one note per task into the vault's inbox
directory. Tasks already filed (matched by their task-id property) are
skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ic := getConfig().Inbox
		if ic.URL == "" {
			return handleErrorMsg(ErrInboxNotConfigured,
				"no inbox url configured",
				"Set [inbox] url in the config file")
		}

		v := getVault()
		client := inbox.NewClient(ic.URL, ic.Token)
		filer := &inbox.Filer{
			VaultRoot: v.Path,
			Dir:       ic.Dir,
			Dialect:   vaultDialect(),
			Template:  ic.Template,
		}

		res, err := inbox.Run(cmd.Context(), client, filer)
		if err != nil {
			return handleError(ErrInboxFetchFailed, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"filed":   res.Filed,
				"skipped": res.Skipped,
			}, &Meta{Count: len(res.Filed)})
			return nil
		}
		for _, p := range res.Filed {
			fmt.Printf("%s %s\n", ui.SymbolSuccess, ui.FilePath(p))
		}
		fmt.Println(ui.Successf("filed %d tasks, %d already present", len(res.Filed), res.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inboxCmd)
}
