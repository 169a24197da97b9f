package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/ui"
	"github.com/TobiasForner/pkmt-sub000/internal/vault"
)

var previewCmd = &cobra.Command{
	Use:   "preview <path>",
	Short: "Render a note in the terminal",
	Long: `Parses a note in the vault's dialect, converts it to conventional
markdown and renders it with syntax highlighting. The path is
vault-relative.

Examples:
  pkmt preview projects/widget.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !filepath.IsAbs(path) {
			path = filepath.Join(getVault().Path, path)
		}

		md, err := vault.ConvertFile(path, vaultDialect(), document.Obsidian, "")
		if err != nil {
			return handleError(ErrParseFailed, err, "")
		}

		display := ui.NewDisplayContext()
		if !display.IsTTY {
			fmt.Print(md)
			return nil
		}

		rendered, err := ui.RenderMarkdown(md, display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
