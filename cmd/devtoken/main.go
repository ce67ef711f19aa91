// devtoken emite un JWT firmado con JWT_SECRET para probar la API en local.
//
// Uso: go run ./cmd/devtoken <company_id> [role] [user_id]
// role por defecto: billing. Roles válidos: admin, billing, viewer.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/gst-invoice-api/internal/interfaces/http"
	"github.com/jhoicas/gst-invoice-api/pkg/config"
	"github.com/jhoicas/gst-invoice-api/pkg/jwt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: devtoken <company_id> [role] [user_id]")
		os.Exit(2)
	}
	companyID := os.Args[1]
	role := http.RoleBilling
	if len(os.Args) > 2 {
		role = os.Args[2]
	}
	userID := uuid.NewString()
	if len(os.Args) > 3 {
		userID = os.Args[3]
	}

	switch role {
	case http.RoleAdmin, http.RoleBilling, http.RoleViewer:
	default:
		fmt.Fprintf(os.Stderr, "Rol desconocido %q\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, userID, companyID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
