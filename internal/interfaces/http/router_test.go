package http_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/application/auth"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/application/media"
	"github.com/jhoicas/agrogest-api/internal/application/settings"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/imaging"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/memory"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/nfe"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/pdf"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/agrogest-api/internal/interfaces/http"
)

func newTestApp() *fiber.App {
	store := memory.NewStore()
	uow := kvstore.NewRunner(store, nil, nil)
	users := kvstore.NewUserRepository(store)
	defaults := entity.SettingsDefaults{FarmName: "Fazenda Santa Luzia", Currency: "R$"}
	sheets := spreadsheet.Codec{}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UOW:           uow,
		AuthUC:        auth.NewAuthUseCase(users, uow, defaults, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil),
		UserUC:        usecase.NewUserUseCase(users),
		ProductUC:     appinv.NewProductUseCase(uow, nil),
		AdjustStock:   appinv.NewAdjustStockUseCase(uow, nil),
		Reports:       appinv.NewReportUseCase(uow, nil, sheets, pdf.NewMarotoPDFGenerator(), defaults),
		BulkImport:    appinv.NewBulkImportUseCase(uow, nfe.NewParser(), sheets, nil),
		Replenishment: appinv.NewReplenishmentUseCase(uow),
		Applications:  usecase.NewFieldApplicationUseCase(uow, nil),
		Attachments:   usecase.NewPropertyAttachmentUseCase(uow),
		MediaUC:       media.NewEditUseCase(imaging.NewEditor(), nil),
		SettingsUC:    settings.NewUseCase(uow, defaults, "1.0.0", nil),
		JWTSecret:     testJWTSecret,
	})
	return app
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, out
}

func register(t *testing.T, app *fiber.App, email string) *client {
	t.Helper()
	c := &client{t: t, app: app}
	resp, body := c.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Email: email, Password: "senha-forte", Name: "Ana"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	c.token = out.Token
	return c
}

func TestAPI_FluxoDeEstoque(t *testing.T) {
	c := register(t, newTestApp(), "ana@fazenda.com")

	resp, body := c.do(http.MethodPost, "/api/products", map[string]any{
		"name": "ADUBO NPK", "category": "Fertilizantes", "unit": "kg", "stock": 50, "minStock": "20", "price": "3,00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var p entity.Product
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, entity.StatusOK, p.Status)

	path := "/api/products/" + jsonID(p.ID)
	resp, body = c.do(http.MethodPost, path+"/adjust", map[string]any{"type": "out", "quantity": "40", "reason": "Plantio"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var adj dto.AdjustStockResponse
	require.NoError(t, json.Unmarshal(body, &adj))
	assert.Equal(t, "10", adj.Product.Stock.String())
	assert.Equal(t, entity.StatusLow, adj.Product.Status)
	assert.Equal(t, "Ana", adj.Movement.User)
	assert.Empty(t, adj.Warnings)

	resp, body = c.do(http.MethodPost, path+"/adjust", map[string]any{"type": "out", "quantity": "abc"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_QUANTITY")

	resp, _ = c.do(http.MethodPost, "/api/products/999/adjust", map[string]any{"type": "in", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.do(http.MethodGet, path+"/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []entity.StockMovement
	require.NoError(t, json.Unmarshal(body, &movs))
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementOut, movs[0].Type)

	resp, body = c.do(http.MethodGet, "/api/inventory/reconciliation", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.ReconciliationResponse
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Empty(t, rec.Drifts)

	resp, body = c.do(http.MethodGet, "/api/inventory/stats?status=low", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"attentionItems":1`)

	resp, body = c.do(http.MethodGet, "/api/inventory/export.csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, string(body), "ADUBO NPK")

	resp, _ = c.do(http.MethodGet, "/api/inventory/export.doc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_SemTokenRetorna401(t *testing.T) {
	c := &client{t: t, app: newTestApp()}
	resp, _ := c.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_DadosIsoladosPorUsuario(t *testing.T) {
	app := newTestApp()
	a := register(t, app, "a@fazenda.com")
	b := register(t, app, "b@fazenda.com")

	resp, _ := a.do(http.MethodPost, "/api/clients", map[string]any{"name": "Cooperativa"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body := b.do(http.MethodGet, "/api/clients", nil)
	assert.JSONEq(t, `[]`, string(body))

	resp, _ = a.do(http.MethodPost, "/api/clients", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(http.MethodDelete, "/api/clients/123", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = a.do(http.MethodGet, "/api/clients/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Email: "A@fazenda.com", Password: "senha-forte"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_BulkConflitoBloqueia(t *testing.T) {
	c := register(t, newTestApp(), "bulk@fazenda.com")

	resp, body := c.do(http.MethodPost, "/api/inventory/bulk/preview", dto.BulkPreviewRequest{Text: "ureia\t\t\t\t10\nUREIA\t\t\t\t5"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var prev dto.BulkPreviewResponse
	require.NoError(t, json.Unmarshal(body, &prev))
	assert.Equal(t, 2, prev.Conflicts)

	resp, _ = c.do(http.MethodPost, "/api/inventory/bulk/commit", dto.BulkCommitRequest{Rows: prev.Rows})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = c.do(http.MethodPost, "/api/inventory/bulk/preview", dto.BulkPreviewRequest{Format: "xml", Text: "<nfeProc/>"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, body = c.do(http.MethodPost, "/api/inventory/bulk/commit", dto.BulkCommitRequest{Rows: prev.Rows[:1]})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"created":1`)
}

func TestAPI_BackupIdaEVolta(t *testing.T) {
	app := newTestApp()
	c := register(t, app, "backup@fazenda.com")

	want := entity.Settings{FarmName: "Sítio Novo", Currency: "R$", UserName: "Zé", UserEmail: "backup@fazenda.com",
		Notifications: entity.Notifications{SMS: true}, Theme: "light"}
	resp, _ := c.do(http.MethodPut, "/api/settings", want)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := c.do(http.MethodGet, "/api/backup?full=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "agrogest_backup_")
	var b entity.Backup
	require.NoError(t, json.Unmarshal(body, &b))
	require.NotNil(t, b.Payload)

	resp, _ = c.do(http.MethodDelete, "/api/data", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/backup", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+c.token)
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, r.StatusCode)

	_, body = c.do(http.MethodGet, "/api/settings", nil)
	var got entity.Settings
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, want, got)

	req = httptest.NewRequest(http.MethodPost, "/api/backup", bytes.NewReader([]byte(`{"version":"1"}`)))
	req.Header.Set("Authorization", "Bearer "+c.token)
	r, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, r.StatusCode)
}

func editRequest(t *testing.T, token string, fields map[string]string) *http.Request {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 20, 10))))

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	fw, err := w.CreateFormFile("file", "foto.png")
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/attachments/edit", &form)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAPI_EditarImagem(t *testing.T) {
	app := newTestApp()
	c := register(t, app, "img@fazenda.com")

	resp, err := app.Test(editRequest(t, c.token, map[string]string{
		"params": `{"brightness":100,"contrast":100,"saturation":100,"rotation":90,"zoom":1}`,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get(apphttp.HeaderEditParams), `"rotation":90`)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderEditHistory))
}

func TestAPI_EditarImagem_HistoricoInvalidoRetorna422(t *testing.T) {
	app := newTestApp()
	c := register(t, app, "hist@fazenda.com")

	resp, err := app.Test(editRequest(t, c.token, map[string]string{"op": "undo", "history": "not json"}), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "PARSE_ERROR")
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
