package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
)

type CreateMessageInput struct {
	ConversationID string  `json:"conversationId" binding:"required"`
	Content        string  `json:"content"`
	MediaID        *string `json:"mediaId"`
	RecipientID    *string `json:"recipientId"`
}

// CreateMessage posts a message into a conversation the caller participates
// in. Content and media attachment are both optional.
func CreateMessage(c *gin.Context) {
	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No recipient."})
		return
	}

	userID := c.GetString("userId")

	var conversation models.Conversation
	if err := database.DB.Preload("Members").First(&conversation, "id = ?", input.ConversationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found."})
		return
	}

	if !conversation.IsParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this conversation."})
		return
	}

	message := models.Message{
		SenderID:       userID,
		ConversationID: input.ConversationID,
		Content:        input.Content,
		MediaID:        input.MediaID,
		RecipientID:    input.RecipientID,
	}

	if err := database.DB.Create(&message).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// DeleteMessage removes a message. Only the sender may do it; the check runs
// before anything is touched, so a rejected delete leaves the message
// retrievable.
func DeleteMessage(c *gin.Context) {
	userID := c.GetString("userId")

	var message models.Message
	if err := database.DB.First(&message, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found."})
		return
	}

	if message.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can't delete a message that is not yours."})
		return
	}

	if err := database.DB.Delete(&message).Error; err != nil {
		logger.Error().Err(err).Str("message_id", message.ID).Msg("Failed to delete message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
