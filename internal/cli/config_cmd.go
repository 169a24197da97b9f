package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TobiasForner/pkmt-sub000/internal/config"
	"github.com/TobiasForner/pkmt-sub000/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{"config": path}, nil)
			return nil
		}
		fmt.Println(ui.Successf("config at %s", ui.FilePath(path)))
		return nil
	},
}

var vaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "List configured vaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		vaults := c.ListVaults()

		if isJSONOutput() {
			outputSuccess(vaults, &Meta{Count: len(vaults)})
			return nil
		}
		if len(vaults) == 0 {
			fmt.Println(ui.Hint("no vaults configured"))
			return nil
		}
		names := make([]string, 0, len(vaults))
		for name := range vaults {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			marker := " "
			if name == c.DefaultVault {
				marker = "*"
			}
			fmt.Printf("%s %s %s\n", marker, ui.Header(name), ui.FilePath(vaults[name]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(vaultsCmd)
}
