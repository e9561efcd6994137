package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/kendall-kelly/laundry-pos-api/services"
	"github.com/kendall-kelly/laundry-pos-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeOrder prices the current selection and confirms it
func placeOrder(t *testing.T, env *testEnv, hold bool) models.Order {
	t.Helper()

	w, _ := env.do(t, http.MethodPost, "/api/v1/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)

	path := "/api/v1/draft/confirm"
	if hold {
		path = "/api/v1/draft/hold"
	}
	w, resp := env.do(t, http.MethodPost, path, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	decodeData(t, resp, &order)
	return order
}

func TestListOrdersFilters(t *testing.T) {
	env := setupTestEnv(t, http.StatusOK, testutil.MixedPackResponse)
	confirmed := placeOrder(t, env, false)
	pending := placeOrder(t, env, true)

	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{pending.ID, confirmed.ID}},
		{"?filter=all", []int64{pending.ID, confirmed.ID}},
		{"?filter=pending", []int64{pending.ID}},
		{"?filter=confirmed", []int64{confirmed.ID}},
		{"?filter=today", []int64{pending.ID, confirmed.ID}},
		{"?filter=week", []int64{pending.ID, confirmed.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, resp := env.do(t, http.MethodGet, "/api/v1/orders"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var orders []models.Order
			decodeData(t, resp, &orders)
			ids := []int64{}
			for _, o := range orders {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	w, resp := env.do(t, http.MethodGet, "/api/v1/orders?filter=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestOrderEndpoints(t *testing.T) {
	env := setupTestEnv(t, http.StatusOK, testutil.MixedPackResponse)
	env.do(t, http.MethodPut, "/api/v1/selection/items/peca_variada", map[string]interface{}{"value": 20})
	order := placeOrder(t, env, true)
	orderPath := fmt.Sprintf("/api/v1/orders/%d", order.ID)

	w, resp := env.do(t, http.MethodGet, orderPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details services.OrderDetails
	decodeData(t, resp, &details)
	assert.Equal(t, order.ID, details.Order.ID)
	require.Len(t, details.Lines, 1)
	assert.Equal(t, "Mixed pack 20 pieces", details.Lines[0].Description)

	w, resp = env.do(t, http.MethodGet, "/api/v1/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/orders/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", resp.Error.Code)

	w, resp = env.do(t, http.MethodPost, orderPath+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var confirmed models.Order
	decodeData(t, resp, &confirmed)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)
	assert.Equal(t, "auth0|staff-1", confirmed.ConfirmedBy)

	w, resp = env.do(t, http.MethodPost, orderPath+"/recreate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot services.Snapshot
	decodeData(t, resp, &snapshot)
	assert.Equal(t, 20, snapshot.Quantities["peca_variada"])
	assert.Equal(t, services.BuilderDrafting, snapshot.State)

	w, _ = env.do(t, http.MethodDelete, orderPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, resp = env.do(t, http.MethodDelete, orderPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", resp.Error.Code)
}

func TestExportImportOrders(t *testing.T) {
	source := setupTestEnv(t, http.StatusOK, testutil.MixedPackResponse)
	placeOrder(t, source, false)
	placeOrder(t, source, true)

	w, _ := source.do(t, http.MethodGet, "/api/v1/orders/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="orders.json"`, w.Header().Get("Content-Disposition"))
	exported := w.Body.String()

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(exported), &records))
	assert.Len(t, records, 2)

	target := setupTestEnv(t, http.StatusOK, testutil.MixedPackResponse)

	w, resp := target.do(t, http.MethodPost, "/api/v1/orders/import", exported)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imported": 2, "skipped": 0, "total": 2}`, string(resp.Data))

	// importing the same file twice changes nothing
	w, resp = target.do(t, http.MethodPost, "/api/v1/orders/import", exported)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imported": 0, "skipped": 2, "total": 2}`, string(resp.Data))

	w, _ = target.do(t, http.MethodGet, "/api/v1/orders/export", nil)
	assert.JSONEq(t, exported, w.Body.String())

	w, resp = target.do(t, http.MethodPost, "/api/v1/orders/import", `{"not": "an array"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_IMPORT", resp.Error.Code)
}

func multipartImport(t *testing.T, router *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/orders/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImportOrdersMultipart(t *testing.T) {
	env := setupTestEnv(t, http.StatusOK, testutil.MixedPackResponse)

	history := `[{"id": 1720951800000, "date": "14/07/2024, 10:10:00", "client": "Ana", "quantities": {"camisa": 3}, "total": 5.4, "status": "confirmed"}]`

	w := multipartImport(t, env.router, "orders.json", []byte(history))
	require.Equal(t, http.StatusOK, w.Code)

	orders, err := env.app.ListOrders(services.FilterAll)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].Client)
	assert.Equal(t, int64(1720951800000), orders[0].Timestamp)

	w = multipartImport(t, env.router, "orders.csv", []byte(history))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FILE_FORMAT")
}

func TestBackupOrders(t *testing.T) {
	env := setupTestEnv(t, http.StatusOK, testutil.MixedPackResponse)
	placeOrder(t, env, false)

	w, resp := env.do(t, http.MethodPost, "/api/v1/orders/backup", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var backup services.Backup
	decodeData(t, resp, &backup)
	assert.Contains(t, backup.URL, backup.Key)

	stored, ok := env.s3.Object(backup.Key)
	require.True(t, ok)
	exported, err := env.app.ExportOrders()
	require.NoError(t, err)
	assert.JSONEq(t, string(exported), string(stored))
}

func TestBackupOrdersFailures(t *testing.T) {
	env := setupTestEnv(t, http.StatusOK, testutil.MixedPackResponse)
	env.s3.FailUploads = true

	w, resp := env.do(t, http.MethodPost, "/api/v1/orders/backup", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "BACKUP_FAILED", resp.Error.Code)

	env.s3.FailUploads = false
	env.s3.FailPresign = true
	w, resp = env.do(t, http.MethodPost, "/api/v1/orders/backup", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "BACKUP_FAILED", resp.Error.Code)
	assert.Empty(t, env.s3.Keys())

	// without an S3 bucket the endpoint is unavailable
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), NewController(env.app, nil), false)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/orders/backup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "BACKUPS_DISABLED")
}
