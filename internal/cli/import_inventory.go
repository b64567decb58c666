package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/application/inventory"
)

// ImportOptions opciones de import-inventory.
type ImportOptions struct {
	Latin1    bool // el archivo viene de una hoja de cálculo en ISO-8859-1
	Separator string
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Created int
	Updated int
}

// NewImportInventoryCommand crea el comando import-inventory.
func NewImportInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import-inventory <archivo.csv>",
		Short: "Importa productos desde CSV (id, nombre, precio, cantidad)",
		Long: `Importa productos desde un CSV con columnas id, nombre, precio y cantidad.

Una primera fila cuyo id no sea numérico se toma como encabezado. Si el id ya
existe, el producto se reemplaza.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			store, err := rootOpts.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			uc := inventory.NewInventoryUseCase(store.Inventory, store.TxRunner)
			res, err := ImportInventory(cmd.Context(), f, uc, *opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "importados %d, actualizados %d\n", res.Created, res.Updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Latin1, "latin1", false, "decodificar el archivo como ISO-8859-1")
	cmd.Flags().StringVar(&opts.Separator, "sep", ",", "separador de columnas")

	return cmd
}

// Upserter es lo que la importación necesita del caso de uso de inventario.
type Upserter interface {
	Upsert(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, bool, error)
}

// ImportInventory lee r y registra cada fila. Se detiene en la primera fila inválida
// indicando su número de línea; las filas anteriores quedan importadas.
func ImportInventory(ctx context.Context, r io.Reader, uc Upserter, opts ImportOptions) (ImportResult, error) {
	var res ImportResult
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true
	if opts.Separator != "" {
		sep := []rune(opts.Separator)
		if len(sep) != 1 {
			return res, fmt.Errorf("separador inválido %q", opts.Separator)
		}
		reader.Comma = sep[0]
	}

	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("leer CSV: %w", err)
		}
		// Línea física donde empieza el registro; un campo entre comillas puede ocupar varias.
		line, _ := reader.FieldPos(0)
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			if first {
				continue // encabezado
			}
			return res, fmt.Errorf("línea %d: id %q inválido", line, record[0])
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(record[2]), ",", "."))
		if err != nil {
			return res, fmt.Errorf("línea %d: precio %q inválido", line, record[2])
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
		if err != nil {
			return res, fmt.Errorf("línea %d: cantidad %q inválida", line, record[3])
		}

		_, created, err := uc.Upsert(ctx, dto.CreateItemRequest{ID: id, Name: record[1], UnitPrice: price, Quantity: &qty})
		if err != nil {
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
}
