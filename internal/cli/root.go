// Package cli implementa el comando de administración "ventas-seed": esquema,
// alta de usuarios e importación de inventario desde CSV.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ventas-pos/internal/infrastructure/storage"
	"github.com/jhoicas/ventas-pos/pkg/config"
)

// RootOptions flags globales de todos los subcomandos.
type RootOptions struct {
	Verbose bool
	// Open abre el almacenamiento; por defecto usa config.Load y storage.Open.
	Open func(ctx context.Context) (*storage.Storage, error)
}

// NewRootCommand crea el comando raíz.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Open: openFromConfig}

	cmd := &cobra.Command{
		Use:   "ventas-seed",
		Short: "Administración de la base de ventas",
		Long:  "Crea el esquema, registra usuarios e importa el inventario de la caja.",
		// main imprime el error una sola vez.
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "salida detallada")

	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewAddUserCommand(opts))
	cmd.AddCommand(NewImportInventoryCommand(opts))

	return cmd
}

func openFromConfig(ctx context.Context) (*storage.Storage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, cfg.DB)
}
