package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSchemaCommand crea el comando schema. Abrir el almacenamiento ya aplica el esquema.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "schema",
		Short:        "Crea las tablas si no existen",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rootOpts.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "esquema aplicado")
			return nil
		},
	}
}
