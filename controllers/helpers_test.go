package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/config"
	"github.com/kendall-kelly/laundry-pos-api/services"
	"github.com/kendall-kelly/laundry-pos-api/tests/testutil"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

type testEnv struct {
	router  *gin.Engine
	app     *services.App
	pricing *testutil.PricingServer
	s3      *services.MockS3Service
}

// setupTestEnv builds the controller against a SQLite store and a fake optimizer
// answering with pricingStatus/pricingBody. The staff member is authenticated
// with every scope.
func setupTestEnv(t *testing.T, pricingStatus int, pricingBody string) *testEnv {
	t.Helper()
	testutil.RequireTestEnvironment(t)

	pricing := testutil.NewPricingServer(t, pricingStatus, pricingBody)
	client := services.NewPricingClient(&config.Config{PricingAPIURL: pricing.URL, PricingTimeout: 2 * time.Second})

	app, err := services.NewApp(services.NewGormStore(testutil.SetupTestDB(t)), client)
	require.NoError(t, err)

	mockS3 := services.NewMockS3Service()
	ctl := NewController(app, services.NewS3BackupService(mockS3))

	router := gin.New()
	router.Use(testutil.MockAuthMiddleware("auth0|staff-1", testutil.AllScopes...))
	RegisterRoutes(router.Group("/api/v1"), ctl, true)

	return &testEnv{router: router, app: app, pricing: pricing, s3: mockS3}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func decodeData(t *testing.T, resp envelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, target))
}
