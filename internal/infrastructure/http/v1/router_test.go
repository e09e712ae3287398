package v1

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/domain/ledger"
	"stockledger/internal/domain/reports"
	"stockledger/internal/infrastructure/storage/jsonfile"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

type testAPI struct {
	handler http.Handler
	store   *jsonfile.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := jsonfile.New(jsonfile.Options{Dir: filepath.Join(t.TempDir(), "data")})
	require.NoError(t, store.Initialize(t.Context()))

	clock := time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local)
	return &testAPI{
		store: store,
		handler: NewHandler(RouterConfig{
			Repo:          store,
			StoreDriver:   "json",
			LedgerOptions: []ledger.Option{ledger.WithClock(func() time.Time { return clock })},
		}),
	}
}

func (a *testAPI) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (a *testAPI) createWidget(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/products", `{"productName":"Widget","productCode":"W-1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	var p ledger.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	require.NotEmpty(t, p.ID)

	for _, req := range []struct{ path, body string }{
		{"/api/opening-stock", fmt.Sprintf(`{"productId":%q,"quantity":100,"rate":5,"date":"2024-01-01"}`, p.ID)},
		{"/api/inward-stock", fmt.Sprintf(`{"productId":%q,"quantity":"50","rate":"6","date":"2024-01-05","supplier":"Acme"}`, p.ID)},
		{"/api/outward-stock", fmt.Sprintf(`{"productId":%q,"quantity":30,"rate":8,"date":"2024-01-10","customer":"Bob"}`, p.ID)},
	} {
		w := a.do(t, http.MethodPost, req.path, req.body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	return p.ID
}

func TestCreateProduct(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/products", `{"productName":"Widget","productCode":"W-1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Product added successfully", env.Message)

	var p ledger.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Widget", p.ProductName)
	assert.Equal(t, ledger.DefaultUnit, p.Unit)

	w = api.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	var products []ledger.Product
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)
}

func TestCreateProduct_MissingCode(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/products", `{"productName":"Widget"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Product name and code are required", env.Message)

	w = api.do(t, http.MethodGet, "/api/products", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestCreateProduct_EmptyBody(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/products", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product name and code are required", decode(t, w).Message)
}

func TestCreateProduct_MalformedJSON(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/products", `{"productName":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid request body", env.Message)
}

func TestAddStock_Validation(t *testing.T) {
	api := newTestAPI(t)

	for _, body := range []string{
		`{"quantity":1,"rate":1}`,
		`{"productId":"p1","rate":1}`,
		`{"productId":"p1","quantity":0,"rate":1}`,
		`{"productId":"p1","quantity":"0","rate":1}`,
		`{"productId":"p1","quantity":1,"rate":0}`,
	} {
		for _, path := range []string{"/api/opening-stock", "/api/inward-stock", "/api/outward-stock"} {
			w := api.do(t, http.MethodPost, path, body)
			require.Equal(t, http.StatusBadRequest, w.Code, "%s %s", path, body)
			assert.Equal(t, "Product ID, quantity, and rate are required", decode(t, w).Message)
		}
	}
}

func TestAddStock_OversizedNumbersAreRejected(t *testing.T) {
	api := newTestAPI(t)

	for _, body := range []string{
		`{"productId":"p","quantity":"1e2000000","rate":1}`,
		`{"productId":"p","quantity":1,"rate":1e50000000}`,
	} {
		w := api.do(t, http.MethodPost, "/api/outward-stock", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Quantity and rate are out of range", decode(t, w).Message)
	}

	w := api.do(t, http.MethodGet, "/api/reports/transaction-history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(decode(t, w).Data))
}

func TestAddStock_BodyTooLarge(t *testing.T) {
	api := newTestAPI(t)

	body := `{"productId":"p","remarks":"` + strings.Repeat("x", 2<<20) + `","quantity":1,"rate":1}`
	w := api.do(t, http.MethodPost, "/api/inward-stock", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request body too large", decode(t, w).Message)
}

func TestAddInward_ComputesAmountAndDefaults(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/inward-stock", `{"productId":"p1","quantity":2.5,"rate":4}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.Equal(t, "Inward stock added successfully", env.Message)

	var e ledger.InwardStockEntry
	require.NoError(t, json.Unmarshal(env.Data, &e))
	assert.Equal(t, "10", e.Amount.String())
	assert.Equal(t, "2024-02-01", e.Date)
	assert.Equal(t, "", e.Supplier)

	w = api.do(t, http.MethodGet, "/api/inward-stock", "")
	var rows []reports.InwardRow
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &rows))
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Product, "unknown product resolves to null")
}

func TestWidgetReports(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createWidget(t)

	w := api.do(t, http.MethodGet, "/api/reports/stock-summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary []reports.SummaryRow
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &summary))
	require.Len(t, summary, 1)
	assert.Equal(t, "120", summary[0].ClosingQty.String())
	assert.Equal(t, "300", summary[0].InwardAmount.String())
	assert.Equal(t, "240", summary[0].OutwardAmount.String())

	w = api.do(t, http.MethodGet, "/api/reports/stock/"+productID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail reports.ProductStock
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &detail))
	assert.Equal(t, "120", detail.ClosingQty.String())
	require.Len(t, detail.Transactions, 3)
	assert.Equal(t, reports.TypeOpening, detail.Transactions[0].Type)

	w = api.do(t, http.MethodGet, "/api/reports/transaction-history", "")
	var history []reports.Transaction
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &history))
	require.Len(t, history, 3)
	assert.Equal(t, reports.LabelOpening, history[0].Type)
	assert.Equal(t, reports.LabelOutward, history[2].Type)

	w = api.do(t, http.MethodGet, "/api/reports/movement", "")
	var movement []reports.ProductMovement
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &movement))
	require.Len(t, movement, 1)
	assert.Len(t, movement[0].Movements, 3)

	w = api.do(t, http.MethodGet, "/api/reports/dashboard", "")
	var dash reports.Dashboard
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &dash))
	assert.Equal(t, 1, dash.TotalProducts)
	assert.Equal(t, "500", dash.OpeningValue.String())
	assert.Empty(t, dash.LowStock)
}

func TestInwardOutwardReports_MostRecentFirst(t *testing.T) {
	api := newTestAPI(t)

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		w := api.do(t, http.MethodPost, "/api/outward-stock",
			fmt.Sprintf(`{"productId":"p1","quantity":1,"rate":1,"date":%q}`, date))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := api.do(t, http.MethodGet, "/api/reports/outward", "")
	var rows []reports.OutwardRow
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-01", rows[0].Date)
	assert.Equal(t, "2024-02-01", rows[1].Date)
	assert.Equal(t, "2024-01-01", rows[2].Date)

	w = api.do(t, http.MethodGet, "/api/reports/inward", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestStockByProduct_UnknownIsNull(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/reports/stock/nope", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":null}`, w.Body.String())
}

func TestLowStock_Thresholds(t *testing.T) {
	api := newTestAPI(t)
	api.createWidget(t)

	count := func(query string) int {
		w := api.do(t, http.MethodGet, "/api/reports/low-stock"+query, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var rows []reports.SummaryRow
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &rows))
		return len(rows)
	}

	assert.Equal(t, 0, count(""))
	assert.Equal(t, 1, count("?threshold=150"))
	assert.Equal(t, 1, count("?threshold=120"))
	assert.Equal(t, 0, count("?threshold=100"))
}

func TestLowStock_InvalidThreshold(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/reports/low-stock?threshold=abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "threshold must be a number", env.Message)
}

func TestLowStock_ThresholdOutOfRange(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/reports/low-stock?threshold=1e2000000", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "threshold is out of range", decode(t, w).Message)
}

func TestStorageError_IsReportedWithoutCause(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, os.WriteFile(api.store.Path(ledger.KindProduct), []byte("{oops"), 0o644))

	w := api.do(t, http.MethodGet, "/api/reports/stock-summary", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "STORAGE_ERROR", env.Code)
	assert.Equal(t, "failed to read product collection", env.Message)
	assert.NotContains(t, w.Body.String(), "oops")
}

func TestExport_CSV(t *testing.T) {
	api := newTestAPI(t)
	api.createWidget(t)

	w := api.do(t, http.MethodGet, "/api/reports/export/stock-summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "stock-summary.csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Widget", records[1][0])
	assert.Equal(t, "120", records[1][5])
}

func TestExport_Errors(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/reports/export/profit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, "/api/reports/export/stock-summary?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGzipCompression(t *testing.T) {
	api := newTestAPI(t)
	for i := 0; i < 30; i++ {
		w := api.do(t, http.MethodPost, "/api/products",
			fmt.Sprintf(`{"productName":"Product %d","productCode":"CODE-%d","unit":"kg"}`, i, i))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := api.do(t, http.MethodGet, "/api/products", "", "Accept-Encoding", "gzip")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(zr).Decode(&env))
	var products []ledger.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 30)
}

func TestHealthAndTracing(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/health/ready", "", "X-Request-ID", "req-42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}
