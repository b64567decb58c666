package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ventas-pos/internal/application/auth"
	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/application/receipt"
)

// NewAddUserCommand crea el comando add-user.
func NewAddUserCommand(rootOpts *RootOptions) *cobra.Command {
	var in dto.RegisterUserRequest

	cmd := &cobra.Command{
		Use:          "add-user",
		Short:        "Registra un usuario de la caja",
		Example:      "  ventas-seed add-user --name admin --password admin123 --email admin@tienda.co --admin",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rootOpts.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			// Sin JWT: el comando solo registra, no inicia sesión.
			uc := auth.NewAuthUseCase(store.Credentials, receipt.NewAuthorizationGate(store.Credentials), auth.JWTConfig{})
			user, err := uc.RegisterUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			role := "cajero"
			if user.IsAdmin {
				role = "administrador"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s registrado (%s)\n", user.Username, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "name", "", "nombre de usuario")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña en texto; se guarda con bcrypt")
	cmd.Flags().StringVar(&in.Email, "email", "", "correo electrónico")
	cmd.Flags().BoolVar(&in.IsAdmin, "admin", false, "puede autorizar el cierre del día")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
