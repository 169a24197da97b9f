package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TobiasForner/pkmt-sub000/internal/index"
	"github.com/TobiasForner/pkmt-sub000/internal/ui"
	"github.com/TobiasForner/pkmt-sub000/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and keep the mention index current",
	Long: `Watches the vault for note changes and updates the mention index as
files are written, created, renamed or deleted. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getVault().Path)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer db.Close()

		w, err := watcher.New(watcher.Config{
			VaultPath:     getVault().Path,
			Dialect:       vaultDialect(),
			Database:      db,
			DebounceDelay: watchDebounce,
			OnReindex: func(relPath string, err error) {
				if err != nil {
					fmt.Println(ui.Errorf("%s: %v", relPath, err))
					return
				}
				fmt.Printf("%s %s\n", ui.SymbolSuccess, ui.FilePath(relPath))
			},
		})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println(ui.Hint("watching " + getVault().Path + " (ctrl-c to stop)"))
		if err := w.Start(ctx); err != nil && ctx.Err() == nil {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "Delay before reindexing a changed file")
	rootCmd.AddCommand(watchCmd)
}
