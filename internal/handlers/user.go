package handlers

import (
	"encoding/base64"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/services"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/utils"
)

// GetTokenData echoes the identity claims embedded in the bearer token.
func GetTokenData(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	claims := claimsValue.(*utils.Claims)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"email":    claims.Email,
		},
	})
}

// GetAdminFlag reports whether the caller's account carries the admin flag.
func GetAdminFlag(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Could not find specified user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": user.Admin})
}

// GetPublicProfile returns the display-safe subset of a user record.
func GetPublicProfile(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Could not find specified user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":    user.ID,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	})
}

// DeleteAccount removes the caller's account together with everything that
// still references it: friendship edges, group memberships, authored
// messages, created conversations and the profile picture row. All row
// deletions run in one transaction ordered so no foreign key is ever left
// dangling; the picture file moves to the retention area afterwards, logged
// but never fatal.
func DeleteAccount(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.Preload("Picture").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Could not find specified user."})
		return
	}

	// Captured up front: the Update below zeroes the struct field too.
	pictureID := user.PictureID

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_one_id = ? OR person_two_id = ?", userID, userID).Delete(&models.Friend{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM conversation_members WHERE user_id = ?", userID).Error; err != nil {
			return err
		}

		// Conversations the user created disappear entirely, messages and
		// memberships first so nothing outlives its conversation.
		var ownedIDs []string
		if err := tx.Model(&models.Conversation{}).Where("creator_id = ?", userID).Pluck("id", &ownedIDs).Error; err != nil {
			return err
		}
		if len(ownedIDs) > 0 {
			if err := tx.Where("conversation_id IN ?", ownedIDs).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM conversation_members WHERE conversation_id IN ?", ownedIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ownedIDs).Delete(&models.Conversation{}).Error; err != nil {
				return err
			}
		}

		// Messages sent into other people's conversations.
		if err := tx.Where("sender_id = ?", userID).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		// The picture reference must be cleared before its media row can go.
		if pictureID != nil {
			if err := tx.Model(&user).Update("picture_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Media{}, "id = ?", *pictureID).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	if user.Picture != nil {
		src := filepath.Join(services.ProfilePicsDir(), user.Picture.FileName)
		if err := services.RetireFile(src); err != nil {
			logger.Error().Err(err).Str("file", src).Msg("Failed to retire profile picture file")
		}
	}

	logger.Info().Str("user_id", userID).Msg("User deleted")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type SetProfilePictureInput struct {
	Image    string `json:"image" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
}

// SetProfilePicture replaces the caller's profile picture. The new picture
// is written and linked first; the previous one is retired only once the
// picture reference points elsewhere.
func SetProfilePicture(c *gin.Context) {
	var input SetProfilePictureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image and filename are required"})
		return
	}

	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Could not find specified user."})
		return
	}

	buffer, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base64 image data"})
		return
	}

	oldPictureID := user.PictureID

	fileName := services.DerivedFileName("pfp", input.FileName)
	dstPath := filepath.Join(services.ProfilePicsDir(), fileName)

	if err := services.SaveResized(buffer, dstPath, services.ProfilePicWidth); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save profile picture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	media := models.Media{
		FileName: fileName,
		OwnerID:  user.ID,
	}
	if err := database.DB.Create(&media).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to record profile picture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	if err := database.DB.Model(&user).Update("picture_id", media.ID).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to link profile picture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	// The old picture goes only after the reference points at the new one,
	// so its row is no longer foreign-key protected.
	if oldPictureID != nil {
		retireProfilePicture(*oldPictureID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile picture saved."})
}

// GetProfilePicture streams a user's profile picture by username.
// Unauthenticated read.
func GetProfilePicture(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := database.DB.Preload("Picture").Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Picture == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User does not have a picture."})
		return
	}

	c.File(filepath.Join(services.ProfilePicsDir(), user.Picture.FileName))
}

// GetMyGroups lists every conversation the caller created or belongs to,
// with the creator resolved to a display-safe subset.
func GetMyGroups(c *gin.Context) {
	userID := c.GetString("userId")

	var conversations []models.Conversation
	err := database.DB.
		Joins("LEFT JOIN conversation_members cm ON cm.conversation_id = conversations.id").
		Where("conversations.creator_id = ? OR cm.user_id = ?", userID, userID).
		Distinct("conversations.*").
		Preload("Creator").
		Find(&conversations).Error
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list groups")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	groups := make([]gin.H, 0, len(conversations))
	for _, conv := range conversations {
		groups = append(groups, gin.H{
			"id":   conv.ID,
			"name": conv.Name,
			"creator": gin.H{
				"id":       conv.Creator.ID,
				"username": conv.Creator.Username,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// retireProfilePicture moves a profile picture file to the retention area
// and removes its metadata row. The caller must have repointed or cleared
// users.picture_id first, or the row delete trips its foreign key. Partial
// failure is tolerated: the metadata row goes away even when the file move
// fails.
func retireProfilePicture(mediaID string) {
	var media models.Media
	if err := database.DB.First(&media, "id = ?", mediaID).Error; err != nil {
		logger.Warn().Err(err).Str("media_id", mediaID).Msg("Profile picture metadata missing")
		return
	}

	src := filepath.Join(services.ProfilePicsDir(), media.FileName)
	if err := services.RetireFile(src); err != nil {
		logger.Error().Err(err).Str("file", src).Msg("Failed to retire profile picture file")
	}

	if err := database.DB.Delete(&media).Error; err != nil {
		logger.Error().Err(err).Str("media_id", mediaID).Msg("Failed to delete profile picture metadata")
	}
}
