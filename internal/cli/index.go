package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TobiasForner/pkmt-sub000/internal/index"
	"github.com/TobiasForner/pkmt-sub000/internal/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the mention index",
	Long: `Walks the vault, parses every note in the vault's dialect and rebuilds
the mention index used by backlinks, duplicates and unresolved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getVault().Path)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer db.Close()

		indexed, skipped, err := db.Rebuild(getVault().Path, vaultDialect())
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]int{"indexed": indexed, "skipped": skipped}, nil)
			return nil
		}
		fmt.Println(ui.Successf("indexed %d notes %s", indexed, ui.Count(skipped, "skip", "skips")))
		return nil
	},
}

var backlinksCmd = &cobra.Command{
	Use:   "backlinks <name>",
	Short: "List notes that mention a name",
	Long: `Shows the vault-relative path of every note whose links, embeds or
property values mention the given name. Matching is slug-normalized, so
"Daily Note" and "daily-note" find the same notes.

Examples:
  pkmt backlinks "project plan"
  pkmt backlinks project-plan --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getVault().Path)
		if err != nil {
			return handleError(ErrIndexError, err, "Run 'pkmt reindex' first")
		}
		defer db.Close()

		paths, err := db.Backlinks(args[0])
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(paths, &Meta{Count: len(paths)})
			return nil
		}
		if len(paths) == 0 {
			fmt.Println(ui.Hint("no backlinks"))
			return nil
		}
		for _, p := range paths {
			fmt.Println(ui.FilePath(p))
		}
		return nil
	},
}

var mentionsCmd = &cobra.Command{
	Use:   "mentions <path>",
	Short: "List the files a note mentions",
	Long: `Shows the names mentioned by one note, in first-seen order. The path is
vault-relative.

Examples:
  pkmt mentions daily/2026-08-30.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getVault().Path)
		if err != nil {
			return handleError(ErrIndexError, err, "Run 'pkmt reindex' first")
		}
		defer db.Close()

		names, err := db.Mentions(args[0])
		if err != nil {
			if errors.Is(err, index.ErrNoteNotFound) {
				return handleErrorMsg(ErrNoteNotFound,
					fmt.Sprintf("note %q is not in the index", args[0]),
					"Run 'pkmt reindex' if the note was added recently")
			}
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(names, &Meta{Count: len(names)})
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "List note names shared by multiple files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getVault().Path)
		if err != nil {
			return handleError(ErrIndexError, err, "Run 'pkmt reindex' first")
		}
		defer db.Close()

		dupes, err := db.DuplicateNames()
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(dupes, &Meta{Count: len(dupes)})
			return nil
		}
		if len(dupes) == 0 {
			fmt.Println(ui.Success("no duplicate names"))
			return nil
		}
		for _, name := range sortedKeys(dupes) {
			fmt.Println(ui.Header(name))
			for _, p := range dupes[name] {
				fmt.Printf("  %s\n", ui.FilePath(p))
			}
		}
		return nil
	},
}

var unresolvedCmd = &cobra.Command{
	Use:   "unresolved",
	Short: "List mentioned names with no matching note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getVault().Path)
		if err != nil {
			return handleError(ErrIndexError, err, "Run 'pkmt reindex' first")
		}
		defer db.Close()

		missing, err := db.Unresolved()
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(missing, &Meta{Count: len(missing)})
			return nil
		}
		if len(missing) == 0 {
			fmt.Println(ui.Success("all mentions resolve"))
			return nil
		}
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s %s\n", name, ui.Hint(ui.Count(missing[name], "mention", "mentions")))
		}
		return nil
	},
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(backlinksCmd)
	rootCmd.AddCommand(mentionsCmd)
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(unresolvedCmd)
}
