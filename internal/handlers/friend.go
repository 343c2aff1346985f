package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
)

type AddFriendInput struct {
	Username string `json:"username" binding:"required"`
}

// AddFriend creates an unordered friendship edge towards the user with the
// given username.
func AddFriend(c *gin.Context) {
	var input AddFriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing person to add."})
		return
	}

	userID := c.GetString("userId")

	var target models.User
	if err := database.DB.Where("username = ?", input.Username).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Could not find the person to add."})
		return
	}

	if target.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add yourself as a friend."})
		return
	}

	// (A,B) and (B,A) are the same edge.
	var existing models.Friend
	err := database.DB.Where(
		"(person_one_id = ? AND person_two_id = ?) OR (person_one_id = ? AND person_two_id = ?)",
		userID, target.ID, target.ID, userID,
	).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already friends."})
		return
	}

	friendship := models.Friend{
		PersonOneID: userID,
		PersonTwoID: target.ID,
	}
	if err := database.DB.Create(&friendship).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create friendship")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added friend."})
}

// ListFriends returns the other party's public profile for every edge
// involving the caller.
func ListFriends(c *gin.Context) {
	userID := c.GetString("userId")

	var edges []models.Friend
	err := database.DB.
		Preload("PersonOne").
		Preload("PersonTwo").
		Where("person_one_id = ? OR person_two_id = ?", userID, userID).
		Find(&edges).Error
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list friends")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	friends := make([]gin.H, 0, len(edges))
	for _, edge := range edges {
		other := edge.PersonTwo
		if edge.PersonTwoID == userID {
			other = edge.PersonOne
		}
		friends = append(friends, gin.H{
			"userId":    other.ID,
			"username":  other.Username,
			"firstName": other.FirstName,
			"lastName":  other.LastName,
		})
	}

	c.JSON(http.StatusOK, friends)
}

// DeleteFriend removes the edge between the caller and the given user id,
// whichever side created it.
func DeleteFriend(c *gin.Context) {
	userID := c.GetString("userId")
	otherID := c.Param("id")

	result := database.DB.Where(
		"(person_one_id = ? AND person_two_id = ?) OR (person_one_id = ? AND person_two_id = ?)",
		userID, otherID, otherID, userID,
	).Delete(&models.Friend{})

	if result.Error != nil {
		logger.Error().Err(result.Error).Str("user_id", userID).Msg("Failed to delete friendship")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friendship deleted successfully"})
}
