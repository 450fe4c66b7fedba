package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/config"
	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/services"
)

// setupApp builds the full application router against an in-memory database
// with mock outbound services, mirroring the production composition root.
func setupApp(t *testing.T) (*gin.Engine, *gorm.DB, *services.MockWhatsAppService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	cfg := &config.Config{
		JWTSecret:     "acceptance-secret",
		OrderIDPrefix: "ZLX-",
		OrderIDStart:  100001,
	}
	whatsapp := services.NewMockWhatsAppService()
	router := setupRouter(cfg, db, whatsapp, services.NewMockS3Service())
	return router, db, whatsapp
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestOrderLifecycle walks the whole confirmation loop through the public
// API: browse, order, receive the confirmation request, reply over the
// webhook, track the outcome.
func TestOrderLifecycle(t *testing.T) {
	router, db, whatsapp := setupApp(t)

	require.NoError(t, db.Create(&models.Product{
		ID: "p1", NameEN: "Oud Perfume", NameAR: "عطر عود",
		Category: "perfume", Price: 250, Quantity: 5, IsVisible: true,
	}).Error)

	// Storefront sees the product.
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Oud Perfume")

	// Place an order.
	w = doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name": "Sara",
		"phone":         "0501234567",
		"city":          "Riyadh",
		"address":       "King Fahd Rd",
		"items": []map[string]interface{}{
			{"product_id": "p1", "name_en": "Oud Perfume", "price": 250.0, "quantity": 2},
		},
		"subtotal": 500.0,
		"total":    500.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	publicID := created["data"].(map[string]interface{})["public_order_id"].(string)
	assert.Equal(t, "ZLX-100001", publicID)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 3, product.Quantity)

	require.Eventually(t, func() bool {
		return len(whatsapp.Sent()) >= 1
	}, time.Second, 10*time.Millisecond)

	// Customer declines over WhatsApp.
	form := url.Values{}
	form.Set("From", "whatsapp:+966501234567")
	form.Set("Body", "no")
	req = httptest.NewRequest(http.MethodPost, "/api/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Stock came back and the order reads cancelled.
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 5, product.Quantity)

	w = doJSON(t, router, http.MethodPost, "/api/orders/track", map[string]interface{}{
		"order_id": publicID,
		"phone":    "0501234567",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var tracked map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tracked))
	data := tracked["data"].(map[string]interface{})
	assert.Equal(t, models.StatusCancelled, data["status"])
	assert.Equal(t, models.ConfirmationCancelled, data["confirmation_status"])
}

func TestAdminSurfaceGuarded(t *testing.T) {
	router, _, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
