// cmd/list.go
package cmd

import (
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List loaded ASTERIX categories and their UAPs",
		Long: `Display every category edition compiled from the definitions directory
(--defs), along with each UAP alternative it offers.`,
		RunE: runList,
	}

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	logger := ConfigureLogger(Verbose, JsonLogs)

	def, err := loadDefinition(DefsDir)
	if err != nil {
		return err
	}

	cats := def.Categories()
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	for _, num := range cats {
		for _, cat := range def.Editions(num) {
			uapNames := make([]string, 0, len(cat.UAPs()))
			for _, u := range cat.UAPs() {
				uapNames = append(uapNames, u.Name)
			}
			logger.Info("category",
				"number", cat.Number,
				"edition", cat.Edition,
				"name", cat.Name,
				"default", cat.Default,
				"uaps", uapNames,
			)
		}
	}
	return nil
}
