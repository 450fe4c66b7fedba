package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/middleware"
	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/services"
)

const testJWTSecret = "test-secret"

func newAdminRouter(db *gorm.DB, whatsapp services.WhatsAppSender) *gin.Engine {
	inv := services.NewInventoryService(db)
	confirmations := services.NewConfirmationService(db, inv, whatsapp)

	auth := NewAdminAuthController(db, testJWTSecret)
	products := NewAdminProductController(db)
	orders := NewAdminOrderController(db, confirmations)
	customers := NewAdminCustomerController(db)
	coupons := NewAdminCouponController(db)
	dashboard := NewAdminDashboardController(db)

	router := gin.New()
	admin := router.Group("/admin")
	admin.POST("/login", auth.Login)
	admin.POST("/create-admin", auth.CreateAdmin)

	guarded := admin.Group("")
	guarded.Use(middleware.RequireAdmin(testJWTSecret))
	guarded.GET("/products", products.ListProducts)
	guarded.POST("/products", products.CreateProduct)
	guarded.PUT("/products/:id", products.UpdateProduct)
	guarded.DELETE("/products/:id", products.DeleteProduct)
	guarded.GET("/orders", orders.ListOrders)
	guarded.PUT("/orders/:id/status", orders.UpdateOrderStatus)
	guarded.GET("/customers", customers.ListCustomers)
	guarded.POST("/customers/:phone/block", customers.BlockCustomer)
	guarded.DELETE("/customers/:phone/block", customers.UnblockCustomer)
	guarded.GET("/coupons", coupons.ListCoupons)
	guarded.POST("/coupons", coupons.CreateCoupon)
	guarded.GET("/dashboard/stats", dashboard.GetStats)
	return router
}

// adminToken registers an admin and logs in, returning a bearer token.
func adminToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	creds := map[string]interface{}{"username": "admin", "password": "s3cret-pass"}

	w := postJSON(t, router, "/admin/create-admin", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/admin/login", creds)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["data"].(map[string]interface{})["token"].(string)
}

func authedRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminLoginFlow(t *testing.T) {
	db := setupTestDB(t)
	router := newAdminRouter(db, services.NewMockWhatsAppService())

	creds := map[string]interface{}{"username": "admin", "password": "s3cret-pass"}
	w := postJSON(t, router, "/admin/create-admin", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username is rejected.
	w = postJSON(t, router, "/admin/create-admin", creds)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, router, "/admin/login", map[string]interface{}{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, router, "/admin/login", creds)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	db := setupTestDB(t)
	router := newAdminRouter(db, services.NewMockWhatsAppService())

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminProductCRUD(t *testing.T) {
	db := setupTestDB(t)
	router := newAdminRouter(db, services.NewMockWhatsAppService())
	token := adminToken(t, router)

	w := authedRequest(t, router, http.MethodPost, "/admin/products", token, map[string]interface{}{
		"name_en":  "Oud Perfume",
		"name_ar":  "عطر عود",
		"category": "perfume",
		"price":    250.0,
		"quantity": 10,
		"images":   []string{"products/oud.png"},
		"specs":    map[string]interface{}{"volume_ml": 100},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	productID := response["data"].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, productID)

	// Partial update touches only the provided fields.
	w = authedRequest(t, router, http.MethodPut, "/admin/products/"+productID, token, map[string]interface{}{
		"price": 199.0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	assert.Equal(t, 199.0, product.Price)
	assert.Equal(t, "Oud Perfume", product.NameEN)
	assert.Equal(t, 10, product.Quantity)

	w = authedRequest(t, router, http.MethodDelete, "/admin/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	err := db.First(&product, "id = ?", productID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestAdminCancelRestocksOnce covers the guarded manual cancel: stock comes
// back when the admin cancels a pending order, and a repeat cancel does not
// restock again.
func TestAdminCancelRestocksOnce(t *testing.T) {
	db := setupTestDB(t)
	router := newAdminRouter(db, services.NewMockWhatsAppService())
	token := adminToken(t, router)
	createProduct(t, db, "p1", 4, 250) // 4 on hand after one unit reserved

	order := models.Order{
		ID:                 "o1",
		PublicOrderID:      "ZLX-100001",
		CustomerName:       "Sara",
		Phone:              "0501234567",
		City:               "Riyadh",
		Address:            "King Fahd Rd",
		Total:              250,
		Status:             models.StatusPending,
		ConfirmationStatus: models.ConfirmationPending,
		Items: []models.OrderItem{
			{ProductID: "p1", NameEN: "Oud Perfume", Price: 250, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	w := authedRequest(t, router, http.MethodPut, "/admin/orders/o1/status", token, map[string]interface{}{
		"status": models.StatusCancelled,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 5, product.Quantity)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", "o1").Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Equal(t, models.ConfirmationCancelled, stored.ConfirmationStatus)

	// Cancelling again must not restock a second time.
	w = authedRequest(t, router, http.MethodPut, "/admin/orders/o1/status", token, map[string]interface{}{
		"status": models.StatusCancelled,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 5, product.Quantity)
}

func TestAdminBlockCustomer(t *testing.T) {
	db := setupTestDB(t)
	router := newAdminRouter(db, services.NewMockWhatsAppService())
	token := adminToken(t, router)

	w := authedRequest(t, router, http.MethodPost, "/admin/customers/0501234567/block", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var blocked models.BlockedCustomer
	require.NoError(t, db.First(&blocked, "phone = ?", "0501234567").Error)

	w = authedRequest(t, router, http.MethodDelete, "/admin/customers/0501234567/block", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	err := db.First(&blocked, "phone = ?", "0501234567").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdminCreateCouponDuplicate(t *testing.T) {
	db := setupTestDB(t)
	router := newAdminRouter(db, services.NewMockWhatsAppService())
	token := adminToken(t, router)

	body := map[string]interface{}{"code": "save15", "discount_percentage": 15.0}
	w := authedRequest(t, router, http.MethodPost, "/admin/coupons", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	// Codes are upper-cased, so SAVE15 collides with save15.
	w = authedRequest(t, router, http.MethodPost, "/admin/coupons", token, map[string]interface{}{
		"code":                "SAVE15",
		"discount_percentage": 20.0,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	router := newAdminRouter(db, services.NewMockWhatsAppService())
	token := adminToken(t, router)
	createProduct(t, db, "p1", 5, 250)

	require.NoError(t, db.Create(&models.Order{
		ID: "o1", PublicOrderID: "ZLX-100001", CustomerName: "Sara", Phone: "0501",
		City: "Riyadh", Address: "a", Total: 250,
		Status: models.StatusPending, ConfirmationStatus: models.ConfirmationPending,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		ID: "o2", PublicOrderID: "ZLX-100002", CustomerName: "Nora", Phone: "0502",
		City: "Jeddah", Address: "b", Total: 100,
		Status: models.StatusCancelled, ConfirmationStatus: models.ConfirmationCancelled,
	}).Error)

	w := authedRequest(t, router, http.MethodGet, "/admin/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_products"])
	assert.Equal(t, float64(2), data["total_orders"])
	assert.Equal(t, float64(1), data["pending_orders"])
	assert.Equal(t, float64(2), data["total_customers"])
	// Cancelled orders don't count toward revenue.
	assert.Equal(t, 250.0, data["total_revenue"])
}
