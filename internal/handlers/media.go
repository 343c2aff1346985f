package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/services"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/errors"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
)

type UploadImageInput struct {
	Image    string `json:"image" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
}

// UploadImage accepts a base64-encoded image, stores the original plus a
// width-bounded derivative and records a metadata row owned by the caller.
func UploadImage(c *gin.Context) {
	var input UploadImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image and filename are required"})
		return
	}

	userID := c.GetString("userId")

	buffer, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base64 image data"})
		return
	}

	fileName := services.DerivedFileName("file", input.FileName)
	originalPath := filepath.Join(services.UploadRoot(), fileName)

	if err := os.WriteFile(originalPath, buffer, 0o644); err != nil {
		logger.Error().Err(err).Str("file", originalPath).Msg("Failed to write upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	resizedPath := filepath.Join(services.RescaledDir(), fmt.Sprintf("rescaled_%s", fileName))
	if err := services.SaveResized(buffer, resizedPath, services.UploadResizeWidth); err != nil {
		logger.Error().Err(err).Str("file", resizedPath).Msg("Failed to create resized derivative")
		if rmErr := os.Remove(originalPath); rmErr != nil {
			logger.Warn().Err(rmErr).Str("file", originalPath).Msg("Failed to clean up original after resize failure")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	media := models.Media{
		FileName: fileName,
		OwnerID:  userID,
	}
	if err := database.DB.Create(&media).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to record upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uploadedFileId": media.ID})
}

// DeleteImage retires the original and resized files to the retention area
// and removes the metadata row. Owner only. File-move failures are logged
// but never keep the metadata row alive.
func DeleteImage(c *gin.Context) {
	userID := c.GetString("userId")

	var media models.Media
	if err := database.DB.First(&media, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found."})
		return
	}

	if media.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your file!"})
		return
	}

	originalPath := filepath.Join(services.UploadRoot(), media.FileName)
	resizedPath := filepath.Join(services.RescaledDir(), fmt.Sprintf("rescaled_%s", media.FileName))

	if err := services.RetireFile(originalPath); err != nil {
		logger.Error().Err(err).Str("file", originalPath).Msg("Failed to retire original file")
	}
	if err := services.RetireFile(resizedPath); err != nil {
		logger.Error().Err(err).Str("file", resizedPath).Msg("Failed to retire resized file")
	}

	if err := database.DB.Delete(&media).Error; err != nil {
		logger.Error().Err(err).Str("media_id", media.ID).Msg("Failed to delete media metadata")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// ViewFullImage streams the original bytes by media id. Unauthenticated;
// misses are reported through the error middleware.
func ViewFullImage(c *gin.Context) {
	var media models.Media
	if err := database.DB.First(&media, "id = ?", c.Param("id")).Error; err != nil {
		c.Error(errors.NotFound("Image not found"))
		return
	}

	c.File(filepath.Join(services.UploadRoot(), media.FileName))
}

// ViewResizedImage streams the width-bounded derivative by media id.
// Unauthenticated; misses are reported through the error middleware.
func ViewResizedImage(c *gin.Context) {
	var media models.Media
	if err := database.DB.First(&media, "id = ?", c.Param("id")).Error; err != nil {
		c.Error(errors.NotFound("Image not found"))
		return
	}

	c.File(filepath.Join(services.RescaledDir(), fmt.Sprintf("rescaled_%s", media.FileName)))
}
