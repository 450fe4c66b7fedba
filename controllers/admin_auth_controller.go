package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/utils"
)

// AdminLoginRequest represents the request body for admin login
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminAuthController handles admin authentication
type AdminAuthController struct {
	DB        *gorm.DB
	JWTSecret string
}

// NewAdminAuthController creates an admin auth controller
func NewAdminAuthController(db *gorm.DB, jwtSecret string) *AdminAuthController {
	return &AdminAuthController{DB: db, JWTSecret: jwtSecret}
}

// Login handles POST /admin/login
func (ctl *AdminAuthController) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
			},
		})
		return
	}

	var admin models.Admin
	err := ctl.DB.First(&admin, "username = ?", req.Username).Error
	if err != nil || !utils.CheckPassword(req.Password, admin.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid credentials",
			},
		})
		return
	}

	token, err := utils.GenerateAdminToken(ctl.JWTSecret, admin.ID, admin.Username)
	if err != nil {
		databaseError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"token":    token,
		},
	})
}

// CreateAdmin handles POST /admin/create-admin - initial setup endpoint
func (ctl *AdminAuthController) CreateAdmin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
			},
		})
		return
	}

	var existing models.Admin
	err := ctl.DB.First(&existing, "username = ?", req.Username).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADMIN_EXISTS",
				"message": "Admin already exists",
			},
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		databaseError(c, "Failed to check existing admins")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		databaseError(c, "Failed to hash password")
		return
	}

	admin := models.Admin{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := ctl.DB.Create(&admin).Error; err != nil {
		databaseError(c, "Failed to create admin")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Admin created successfully",
	})
}
