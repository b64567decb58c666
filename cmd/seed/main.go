// seed administra la base de la caja sin levantar el servidor HTTP.
//
// Uso:
//
//	go run ./cmd/seed schema
//	go run ./cmd/seed add-user --name admin --password admin123 --admin
//	go run ./cmd/seed import-inventory productos.csv --latin1
//
// Lee la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH, ...).
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/ventas-pos/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
