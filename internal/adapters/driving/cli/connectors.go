package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

var connectorsJSON bool

var connectorsCmd = &cobra.Command{
	Use:     "connectors",
	Aliases: []string{"connector"},
	Short:   "List available connectors",
	Long: `Fetch the connector list from the ingestion API.

Each connector names the source and object that uploaded rows land in.
The last fetched list is cached and used when the API is unreachable.`,
	RunE: runConnectorsList,
}

var connectorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available connectors",
	RunE:  runConnectorsList,
}

func init() {
	for _, c := range []*cobra.Command{connectorsCmd, connectorsListCmd} {
		c.Flags().BoolVar(&connectorsJSON, "json", false, "output connectors as JSON")
	}
	connectorsCmd.AddCommand(connectorsListCmd)
	rootCmd.AddCommand(connectorsCmd)
}

func runConnectorsList(cmd *cobra.Command, _ []string) error {
	connectors, err := loadDirectory(cmd.Context())
	if err != nil {
		return err
	}

	if connectorsJSON {
		return printJSON(cmd, connectors)
	}

	if len(connectors) == 0 {
		cmd.Println("No connectors available.")
		return nil
	}

	cmd.Println("Connectors:")
	cmd.Println()
	for i := range connectors {
		c := &connectors[i]
		cmd.Printf("  %s  %s\n", c.ID, c.DisplayName())
		cmd.Printf("      Source: %s  Object: %s\n", c.SourceAPIName, c.ObjectAPIName)
	}
	return nil
}

// resolveConnector finds a connector by ID, falling back to a
// case-insensitive label match when exactly one label matches.
func resolveConnector(connectors []domain.Connector, ref string) (string, error) {
	var byLabel []string
	for i := range connectors {
		if connectors[i].ID == ref {
			return ref, nil
		}
		if strings.EqualFold(connectors[i].Label, ref) {
			byLabel = append(byLabel, connectors[i].ID)
		}
	}
	switch len(byLabel) {
	case 1:
		return byLabel[0], nil
	case 0:
		return "", fmt.Errorf("%w: no connector %q (run 'ingest connectors')", domain.ErrLookup, ref)
	default:
		return "", fmt.Errorf("%w: label %q matches %d connectors, use the ID",
			domain.ErrLookup, ref, len(byLabel))
	}
}
