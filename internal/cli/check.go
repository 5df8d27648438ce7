package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thecodec/bento/pkg/config"
)

// checkCommand creates the check command for validating mapping files.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		path string
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a mapping configuration file",
		Long: `Validate a mapping configuration file and print the size of each table.

A missing file is not an error: the exporter treats it as an empty mapping
and exports no materials. Unknown top-level tables are reported since they
usually indicate a misspelled table name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.Resolve(path)
			if err != nil {
				return err
			}
			if dump {
				return m.Encode(os.Stdout)
			}
			printMappingSummary(path, m)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "config", config.BuiltinName, "mapping file, or \"builtin\" for the bundled mapping")
	cmd.Flags().BoolVar(&dump, "print", false, "print the normalized mapping as TOML")

	return cmd
}

// printMappingSummary prints table sizes and warnings for m.
func printMappingSummary(path string, m *config.Mapping) {
	if m.Empty() {
		printWarning("%s: empty mapping, no materials will be exported", path)
		return
	}

	printSuccess("Mapping %s is valid", path)
	printKeyValue(config.TableTags, strconv.Itoa(len(m.Tags)))
	printKeyValue(config.TableTypes, strconv.Itoa(len(m.Types)))
	printKeyValue(config.TableParams, strconv.Itoa(len(m.Params)))
	printKeyValue(config.TableScalars, strconv.Itoa(len(m.Scalars)))
	for _, key := range m.UnknownKeys() {
		printWarning("unknown table %q", key)
	}
}
