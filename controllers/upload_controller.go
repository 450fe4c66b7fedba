package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaylux/zaylux-store-api/services"
	"github.com/zaylux/zaylux-store-api/utils"
)

// UploadController handles product image uploads to S3
type UploadController struct {
	S3 services.S3Interface
}

// NewUploadController creates an upload controller
func NewUploadController(s3 services.S3Interface) *UploadController {
	return &UploadController{S3: s3}
}

// UploadProductImage handles POST /admin/uploads - accepts a multipart image
// file and returns the stored key plus a presigned URL for preview
func (ctl *UploadController) UploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Image file is required",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		uploadErr, ok := err.(*utils.FileUploadError)
		code := "INVALID_FILE"
		if ok {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Key, err := ctl.S3.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload image",
			},
		})
		return
	}

	url, err := ctl.S3.GetPresignedURL(s3Key)
	if err != nil {
		url = ""
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"s3_key": s3Key,
			"url":    url,
		},
	})
}
