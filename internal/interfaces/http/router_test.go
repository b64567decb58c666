package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-pos/internal/application/auth"
	"github.com/jhoicas/ventas-pos/internal/application/dto"
	"github.com/jhoicas/ventas-pos/internal/application/inventory"
	"github.com/jhoicas/ventas-pos/internal/application/receipt"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/filestore"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-pos/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/ventas-pos/internal/interfaces/http"
	"github.com/jhoicas/ventas-pos/pkg/password"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

// testServer arma la API completa sobre SQLite en un directorio temporal.
type testServer struct {
	app *fiber.App
	dir string
}

func newTestServer(t *testing.T, limiter *apphttp.IPRateLimiter) *testServer {
	t.Helper()
	tmp := t.TempDir()
	store, err := sqlite.Open(filepath.Join(tmp, "ventas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := zerolog.Nop()
	receiptsDir := filepath.Join(tmp, "recibos")
	gate := receipt.NewAuthorizationGate(store.Credentials())
	authUC := auth.NewAuthUseCase(store.Credentials(), gate, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	issueUC := receipt.NewIssueUseCase(
		gate,
		filestore.NewCounterAllocator(store.ReceiptSequences()),
		pdf.NewMarotoReceiptRenderer(),
		filestore.NewFileStore(),
		receipt.IssueConfig{
			OutputDir: receiptsDir,
			Now:       func() time.Time { return time.Date(2024, 1, 1, 10, 30, 0, 0, time.Local) },
		},
		log,
	)
	invUC := inventory.NewInventoryUseCase(store.Inventory(), store.TxRunner())

	ctx := t.Context()
	_, err = authUC.RegisterUser(ctx, dto.RegisterUserRequest{Username: "admin", Email: "admin@tienda.co", Password: "admin123", IsAdmin: true})
	require.NoError(t, err)
	_, err = authUC.RegisterUser(ctx, dto.RegisterUserRequest{Username: "cajero", Email: "caja@tienda.co", Password: "caja1"})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: invUC,
		ReceiptUC:   issueUC,
		JWTSecret:   testJWTSecret,
		LoginLimit:  limiter,
		ServiceName: "ventas-pos",
		Log:         log,
	})
	return &testServer{app: app, dir: receiptsDir}
}

// do envía body como JSON y decodifica la respuesta en out (si no es nil).
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), "cuerpo: %s", raw)
	}
	return resp
}

func (s *testServer) login(t *testing.T, user, pass string) dto.LoginResponse {
	t.Helper()
	var out dto.LoginResponse
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: user, Password: pass}, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return out
}

func saleBody(closure bool, adminPassword *string) map[string]any {
	body := map[string]any{
		"lines": []map[string]any{
			{"id": 1, "name": "Arroz", "unit_price": "2.50", "quantity": 2, "subtotal": "5.00"},
			{"id": 2, "name": "Leche", "unit_price": "3.00", "quantity": 1, "subtotal": "3.00"},
		},
		"total":          "8.00",
		"is_day_closure": closure,
	}
	if adminPassword != nil {
		body["admin_password"] = *adminPassword
	}
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	var out dto.HealthResponse
	resp := s.do(t, http.MethodGet, "/health", "", nil, &out)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "ventas-pos", out.Service)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	ok := s.login(t, "admin", "admin123")
	assert.True(t, ok.Success)
	assert.True(t, ok.IsAdmin)
	assert.Equal(t, "Bienvenido admin", ok.Message)
	assert.NotEmpty(t, ok.Token)

	// Usuario inexistente y clave incorrecta responden igual.
	for _, in := range []dto.LoginRequest{{Username: "admin", Password: "mala"}, {Username: "nadie", Password: "x"}} {
		var out dto.LoginResponse
		resp := s.do(t, http.MethodPost, "/api/auth/login", "", in, &out)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, out.Success)
		assert.Empty(t, out.Token)
	}

	var e dto.ErrorResponse
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "  "}, &e)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", e.Code)
}

func TestLogin_LimitePorIP(t *testing.T) {
	limiter := apphttp.NewIPRateLimiter(apphttp.RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2})
	t.Cleanup(limiter.Stop)
	s := newTestServer(t, limiter)

	in := dto.LoginRequest{Username: "admin", Password: "mala"}
	for i := 0; i < 2; i++ {
		resp := s.do(t, http.MethodPost, "/api/auth/login", "", in, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
	var e dto.ErrorResponse
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", in, &e)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "TOO_MANY_REQUESTS", e.Code)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
}

func TestVerifyAdmin(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t, "cajero", "caja1").Token

	var ok map[string]bool
	resp := s.do(t, http.MethodPost, "/api/auth/verify-admin", token, dto.VerifyAdminRequest{Password: "admin123"}, &ok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, ok["valid"])

	var e dto.ErrorResponse
	resp = s.do(t, http.MethodPost, "/api/auth/verify-admin", token, dto.VerifyAdminRequest{Password: "caja1"}, &e)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIAL", e.Code)

	resp = s.do(t, http.MethodPost, "/api/auth/verify-admin", "", dto.VerifyAdminRequest{Password: "admin123"}, &e)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", e.Code)
}

func TestRegister_SoloAdministrador(t *testing.T) {
	s := newTestServer(t, nil)
	in := dto.RegisterUserRequest{Username: "nuevo", Email: "n@tienda.co", Password: "n1"}

	var e dto.ErrorResponse
	resp := s.do(t, http.MethodPost, "/api/auth/users", s.login(t, "cajero", "caja1").Token, in, &e)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", e.Code)

	adminToken := s.login(t, "admin", "admin123").Token
	var u dto.UserResponse
	resp = s.do(t, http.MethodPost, "/api/auth/users", adminToken, in, &u)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "nuevo", u.Username)

	resp = s.do(t, http.MethodPost, "/api/auth/users", adminToken, in, &e)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", e.Code)
}

func TestReceipts_CierreDelDia(t *testing.T) {
	s := newTestServer(t, nil)
	cajero := s.login(t, "cajero", "caja1").Token

	var e dto.ErrorResponse
	resp := s.do(t, http.MethodPost, "/api/receipts", cajero, saleBody(true, nil), &e)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_CREDENTIAL", e.Code)

	mala := "caja1"
	resp = s.do(t, http.MethodPost, "/api/receipts", cajero, saleBody(true, &mala), &e)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIAL", e.Code)

	_, err := os.Stat(s.dir)
	assert.True(t, os.IsNotExist(err), "un cierre rechazado no escribe nada")

	buena := "admin123"
	var out dto.IssueReceiptResponse
	resp = s.do(t, http.MethodPost, "/api/receipts", cajero, saleBody(true, &buena), &out)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "20240101-1.pdf", out.FileName)
	assert.Equal(t, 1, out.Sequence)
	assert.FileExists(t, out.Path)
}

func TestReceipts_EmitirYDescargar(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.login(t, "admin", "admin123").Token

	for want := 1; want <= 2; want++ {
		var out dto.IssueReceiptResponse
		resp := s.do(t, http.MethodPost, "/api/receipts", admin, saleBody(want == 2, nil), &out)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, want, out.Sequence)
	}

	resp := s.do(t, http.MethodGet, "/api/receipts/20240101-2.pdf", admin, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")), "la descarga es un PDF")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "20240101-2.pdf")

	var e dto.ErrorResponse
	resp = s.do(t, http.MethodGet, "/api/receipts/20240101-9.pdf", admin, nil, &e)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", e.Code)

	resp = s.do(t, http.MethodGet, "/api/receipts/notas.txt", admin, nil, &e)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", e.Code)

	resp = s.do(t, http.MethodGet, "/api/receipts/archive/20240101", admin, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Receipt-Count"))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "recibos-20240101.zip")

	resp = s.do(t, http.MethodGet, "/api/receipts/archive/20240101", s.login(t, "cajero", "caja1").Token, nil, &e)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestReceipts_SinLineas(t *testing.T) {
	s := newTestServer(t, nil)
	var e dto.ErrorResponse
	resp := s.do(t, http.MethodPost, "/api/receipts", s.login(t, "cajero", "caja1").Token,
		map[string]any{"lines": []any{}, "total": "0"}, &e)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_REQUEST", e.Code)
}

func TestInventory(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t, "cajero", "caja1").Token

	var item dto.ItemResponse
	resp := s.do(t, http.MethodPost, "/api/inventory", token,
		map[string]any{"id": 7, "name": "Arroz", "unit_price": "2.50", "quantity": 3}, &item)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "2.5", item.UnitPrice.String())

	resp = s.do(t, http.MethodGet, "/api/inventory/by-name/ARROZ", token, nil, &item)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 7, item.ID)

	resp = s.do(t, http.MethodPost, "/api/inventory/7/sales", token, dto.StockMovementRequest{Quantity: 2}, &item)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, item.Quantity)

	var e dto.ErrorResponse
	resp = s.do(t, http.MethodPost, "/api/inventory/7/sales", token, dto.StockMovementRequest{Quantity: 5}, &e)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	resp = s.do(t, http.MethodPost, "/api/inventory/7/purchases", token, dto.StockMovementRequest{Quantity: 10}, &item)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 11, item.Quantity)

	resp = s.do(t, http.MethodPut, "/api/inventory/7", token,
		map[string]any{"name": "Arroz integral", "unit_price": "3.10", "quantity": 4}, &item)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Arroz integral", item.Name)

	var list dto.ItemListResponse
	resp = s.do(t, http.MethodGet, "/api/inventory", token, nil, &list)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, list.Items, 1)

	resp = s.do(t, http.MethodGet, "/api/inventory/abc", token, nil, &e)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.True(t, strings.Contains(e.Message, "id inválido"))

	resp = s.do(t, http.MethodGet, "/api/inventory/99", token, nil, &e)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
