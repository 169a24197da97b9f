package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/ui"
	"github.com/TobiasForner/pkmt-sub000/internal/vault"
)

var (
	convertTo       document.Dialect
	convertFrom     document.Dialect
	convertTarget   string
	convertImageDir string
	convertDryRun   bool
)

// ConvertSummaryJSON is the JSON representation of a batch conversion.
type ConvertSummaryJSON struct {
	Converted []string          `json:"converted"`
	Failed    map[string]string `json:"failed,omitempty"`
	DryRun    bool              `json:"dry_run,omitempty"`
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every note in the vault to another dialect",
	Long: `Converts all notes in the vault from its configured dialect to the
target dialect, mirroring the directory tree into the target directory.

Examples:
  pkmt convert --to obsidian --target ~/export
  pkmt convert --to zk --target ~/export --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := getVault()

		from := vaultDialect()
		if convertFrom != "" {
			from = convertFrom
		}

		imageDir := convertImageDir
		if imageDir == "" {
			imageDir = v.ImageDir
		}

		summary, err := vault.Convert(v.Path, vault.ConvertOptions{
			From:       from,
			To:         convertTo,
			TargetRoot: convertTarget,
			ImageDir:   imageDir,
			DryRun:     convertDryRun,
		})
		if err != nil {
			return handleError(ErrConvertFailed, err, "")
		}

		if isJSONOutput() {
			out := ConvertSummaryJSON{Converted: summary.Converted, DryRun: convertDryRun}
			if len(summary.Failed) > 0 {
				out.Failed = make(map[string]string, len(summary.Failed))
				for _, f := range summary.Failed {
					out.Failed[f.RelativePath] = f.Err.Error()
				}
			}
			outputSuccess(out, &Meta{Count: len(summary.Converted)})
			return nil
		}

		for _, rel := range summary.Converted {
			fmt.Printf("%s %s\n", ui.SymbolSuccess, ui.FilePath(rel))
		}
		for _, f := range summary.Failed {
			fmt.Fprintln(os.Stderr, ui.Errorf("%s: %v", f.RelativePath, f.Err))
		}
		fmt.Println(ui.Successf("converted %d notes %s", len(summary.Converted),
			ui.Count(len(summary.Failed), "failure", "failures")))
		if len(summary.Failed) > 0 {
			return fmt.Errorf("%d notes failed to convert", len(summary.Failed))
		}
		return nil
	},
}

var convertFileCmd = &cobra.Command{
	Use:   "convert-file <path>",
	Short: "Convert a single note and print the result",
	Long: `Parses one note and prints it converted to the target dialect.

Examples:
  pkmt convert-file --from logseq --to obsidian note.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := vault.ConvertFile(args[0], convertFrom, convertTo, convertImageDir)
		if err != nil {
			return handleError(ErrConvertFailed, err, "")
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	convertCmd.Flags().Var(newDialectValue(&convertTo), "to", "Target dialect (required)")
	convertCmd.Flags().Var(newDialectValue(&convertFrom), "from", "Source dialect (defaults to the vault's dialect)")
	convertCmd.Flags().StringVar(&convertTarget, "target", "", "Target directory (required)")
	convertCmd.Flags().StringVar(&convertImageDir, "image-dir", "", "Image directory for embed rewriting")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Parse and serialize without writing")
	_ = convertCmd.MarkFlagRequired("to")
	_ = convertCmd.MarkFlagRequired("target")

	convertFileCmd.Flags().Var(newDialectValue(&convertFrom), "from", "Source dialect (required)")
	convertFileCmd.Flags().Var(newDialectValue(&convertTo), "to", "Target dialect (required)")
	convertFileCmd.Flags().StringVar(&convertImageDir, "image-dir", "", "Image directory for embed rewriting")
	_ = convertFileCmd.MarkFlagRequired("from")
	_ = convertFileCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(convertFileCmd)
}
