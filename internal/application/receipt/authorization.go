package receipt

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ventas-pos/internal/domain"
)

// AuthorizationGate decide si una operación privilegiada (cierre del día) puede continuar.
// Se evalúa siempre del lado del servidor, aunque la interfaz ya lo haya restringido.
type AuthorizationGate struct {
	creds AdminCredentialChecker
}

// NewAuthorizationGate construye la compuerta sobre el almacén de credenciales.
func NewAuthorizationGate(creds AdminCredentialChecker) *AuthorizationGate {
	return &AuthorizationGate{creds: creds}
}

// Authorize aplica las reglas:
//   - sin cierre del día: siempre permitido.
//   - cierre con sesión de administrador: permitido sin pedir clave.
//   - cierre sin privilegio: la clave es obligatoria (ErrMissingCredential) y debe
//     coincidir con la de al menos un administrador (ErrInvalidCredential).
func (g *AuthorizationGate) Authorize(ctx context.Context, isDayClosure bool, password *string, sessionPrivilege bool) error {
	if !isDayClosure || sessionPrivilege {
		return nil
	}
	if password == nil {
		return domain.ErrMissingCredential
	}
	return g.CheckAdminPassword(ctx, *password)
}

// CheckAdminPassword verifica una clave contra las credenciales de administrador.
// Solo lectura: no modifica el almacén.
func (g *AuthorizationGate) CheckAdminPassword(ctx context.Context, password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return domain.ErrMissingCredential
	}
	n, err := g.creds.CountAdminsWithPassword(ctx, password)
	if err != nil {
		return fmt.Errorf("%w: consultar credenciales: %w", domain.ErrIO, err)
	}
	if n == 0 {
		return domain.ErrInvalidCredential
	}
	return nil
}
