package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/config"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
)

type CreateConversationInput struct {
	Members []string `json:"members" binding:"required"`
	IsGroup bool     `json:"isGroup"`
	Name    string   `json:"name"`
	Public  bool     `json:"public"`
}

// CreateConversation creates a direct or group conversation with the caller
// as creator. Groups require a non-empty name; direct conversations carry
// neither name nor public flag.
func CreateConversation(c *gin.Context) {
	var input CreateConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing members."})
		return
	}

	if input.IsGroup && input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group conversations require a name."})
		return
	}

	userID := c.GetString("userId")

	members, ok := resolveMembers(input.Members)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "One or more members could not be found."})
		return
	}

	conversation := models.Conversation{
		CreatorID: userID,
		IsGroup:   input.IsGroup,
		Members:   members,
	}
	if input.IsGroup {
		conversation.Name = input.Name
		conversation.Public = input.Public
	}

	if err := database.DB.Create(&conversation).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"convId": conversation.ID})
}

type UpdateConversationInput struct {
	Name    *string   `json:"name"`
	Public  *bool     `json:"public"`
	Members *[]string `json:"members"`
}

// UpdateConversation lets the creator change a group's name, visibility and
// full membership list in one call. Absent fields are left unchanged.
func UpdateConversation(c *gin.Context) {
	var input UpdateConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := c.GetString("userId")

	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	if !conversation.IsGroup {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Direct conversations cannot be updated."})
		return
	}

	if conversation.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group creator can update it."})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group conversations require a name."})
			return
		}
		updates["name"] = *input.Name
	}
	if input.Public != nil {
		updates["public"] = *input.Public
	}

	var newMembers []models.User
	if input.Members != nil {
		members, ok := resolveMembers(*input.Members)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "One or more members could not be found."})
			return
		}
		newMembers = members
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&conversation).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.Members != nil {
			if err := tx.Model(&conversation).Association("Members").Replace(newMembers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("conversation_id", conversation.ID).Msg("Failed to update conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation updated successfully"})
}

// JoinConversation adds the caller to a public group.
func JoinConversation(c *gin.Context) {
	userID := c.GetString("userId")

	var conversation models.Conversation
	if err := database.DB.Preload("Members").First(&conversation, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	if !conversation.IsGroup || !conversation.Public {
		c.JSON(http.StatusForbidden, gin.H{"error": "This group cannot be joined."})
		return
	}

	if conversation.IsParticipant(userID) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member."})
		return
	}

	if err := database.DB.Model(&conversation).Association("Members").Append(&models.User{ID: userID}); err != nil {
		logger.Error().Err(err).Str("conversation_id", conversation.ID).Msg("Failed to join group")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined group successfully"})
}

// LeaveConversation removes the caller from a group's member list.
func LeaveConversation(c *gin.Context) {
	userID := c.GetString("userId")

	var conversation models.Conversation
	if err := database.DB.Preload("Members").First(&conversation, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	isMember := false
	for _, m := range conversation.Members {
		if m.ID == userID {
			isMember = true
			break
		}
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group."})
		return
	}

	if err := database.DB.Model(&conversation).Association("Members").Delete(&models.User{ID: userID}); err != nil {
		logger.Error().Err(err).Str("conversation_id", conversation.ID).Msg("Failed to leave group")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left group successfully"})
}

// ListPublicGroups lists public groups open to the caller, excluding those
// the caller already created or joined.
func ListPublicGroups(c *gin.Context) {
	userID := c.GetString("userId")

	joined := database.DB.
		Table("conversation_members").
		Select("conversation_id").
		Where("user_id = ?", userID)

	var conversations []models.Conversation
	err := database.DB.
		Preload("Creator").
		Where("is_group = ? AND public = ?", true, true).
		Where("creator_id <> ?", userID).
		Where("id NOT IN (?)", joined).
		Find(&conversations).Error
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list public groups")
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

// DeleteConversation removes a conversation and every message scoped to it.
// Creator only.
func DeleteConversation(c *gin.Context) {
	userID := c.GetString("userId")

	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found."})
		return
	}

	if conversation.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this group chat, so you can't delete it."})
		return
	}

	// Messages go first so the conversation never leaves orphans behind.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", conversation.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&conversation).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(&conversation).Error
	})
	if err != nil {
		logger.Error().Err(err).Str("conversation_id", conversation.ID).Msg("Failed to delete conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted successfully"})
}

// GetConversationData returns conversation metadata with creator and members
// resolved to display-safe subsets.
func GetConversationData(c *gin.Context) {
	userID := c.GetString("userId")

	var conversation models.Conversation
	err := database.DB.
		Preload("Creator").
		Preload("Members").
		First(&conversation, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	if !canReadConversation(&conversation, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may not access data of a conversation you are not a part of."})
		return
	}

	members := make([]gin.H, 0, len(conversation.Members))
	for _, m := range conversation.Members {
		members = append(members, gin.H{"id": m.ID, "username": m.Username})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      conversation.ID,
		"name":    conversation.Name,
		"isGroup": conversation.IsGroup,
		"public":  conversation.Public,
		"creator": gin.H{
			"id":       conversation.Creator.ID,
			"username": conversation.Creator.Username,
		},
		"members":   members,
		"createdAt": conversation.CreatedAt,
	})
}

// GetConversationMessages returns every message of a conversation in
// creation order, senders resolved to display-safe subsets.
func GetConversationMessages(c *gin.Context) {
	userID := c.GetString("userId")

	var conversation models.Conversation
	err := database.DB.Preload("Members").First(&conversation, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found."})
		return
	}

	if !canReadConversation(&conversation, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access to messages."})
		return
	}

	var messages []models.Message
	err = database.DB.
		Preload("Sender").
		Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		logger.Error().Err(err).Str("conversation_id", conversation.ID).Msg("Failed to fetch messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	out := make([]gin.H, 0, len(messages))
	for _, msg := range messages {
		out = append(out, gin.H{
			"id":             msg.ID,
			"conversationId": msg.ConversationID,
			"content":        msg.Content,
			"mediaId":        msg.MediaID,
			"createdAt":      msg.CreatedAt,
			"sender": gin.H{
				"id":       msg.Sender.ID,
				"username": msg.Sender.Username,
			},
		})
	}

	c.JSON(http.StatusOK, out)
}

// canReadConversation is the read gate: participants only, unless the
// open-read mode is switched on.
func canReadConversation(conversation *models.Conversation, userID string) bool {
	if config.AppConfig.OpenConversationReads {
		return true
	}
	return conversation.IsParticipant(userID)
}

// resolveMembers loads the referenced users and reports whether every id
// resolved.
func resolveMembers(ids []string) ([]models.User, bool) {
	unique := make(map[string]struct{}, len(ids))
	deduped := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, seen := unique[id]; seen {
			continue
		}
		unique[id] = struct{}{}
		deduped = append(deduped, id)
	}

	if len(deduped) == 0 {
		return []models.User{}, true
	}

	var users []models.User
	if err := database.DB.Where("id IN ?", deduped).Find(&users).Error; err != nil {
		return nil, false
	}
	return users, len(users) == len(deduped)
}
