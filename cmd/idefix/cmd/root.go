// cmd/root.go
package cmd

import (
	"github.com/spf13/cobra"
)

// Global flags
var (
	Verbose  bool
	JsonLogs bool
	DefsDir  string
)

var rootCmd = &cobra.Command{
	Use:   "idefix",
	Short: "ASTERIX message decoder and analyzer",
	Long: `
 ______        __             ______   __
/      |      /  |           /      \ /  |
$$$$$$/   ____$$ |  ______  /$$$$$$  |$$/  __    __
  $$ |   /    $$ | /      \ $$ |_ $$/ /  |/  \  /  |
  $$ |  /$$$$$$$ |/$$$$$$  |$$   |    $$ |$$  \/$$/
  $$ |  $$ |  $$ |$$    $$ |$$$$/     $$ | $$  $$<
 _$$ |_ $$ \__$$ |$$$$$$$$/ $$ |      $$ | /$$$$  \
/ $$   |$$    $$ |$$       |$$ |      $$ |/$$/ $$  |
$$$$$$/  $$$$$$$/  $$$$$$$/ $$/       $$/ $$/   $$/

Idefix decodes ASTERIX surveillance data read from a file or stdin
against XML category definitions, using the gobelix decoding library.
`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&JsonLogs, "json-logs", false, "Log in JSON format")
	rootCmd.PersistentFlags().StringVar(&DefsDir, "defs", "testdata/categories", "Directory holding index.xml and category definition files")

	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
	rootCmd.SetVersionTemplate("Idefix v{{.Version}} - ASTERIX decoder companion\n")
	rootCmd.Version = "0.1.0"
}
