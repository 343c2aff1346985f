package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
)

func doCreateMessage(callerID string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/messages", body)
	c.Set("userId", callerID)
	CreateMessage(c)
	return w
}

func doDeleteMessage(callerID, messageID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/messages/"+messageID, nil)
	c.Params = gin.Params{{Key: "id", Value: messageID}}
	c.Set("userId", callerID)
	DeleteMessage(c)
	return w
}

func TestCreateMessageParticipantGate(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	creator := makeUser("cm_creator", "cm_creator")
	member := makeUser("cm_member", "cm_member")
	outsider := makeUser("cm_outsider", "cm_outsider")

	group := makeGroup("cm_group", creator.ID, "Chat", false, member)

	// Unknown conversation.
	w := doCreateMessage(creator.ID, map[string]interface{}{
		"conversationId": "missing",
		"content":        "hello",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Outsiders cannot post.
	w = doCreateMessage(outsider.ID, map[string]interface{}{
		"conversationId": group.ID,
		"content":        "let me in",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Members and the creator can.
	w = doCreateMessage(member.ID, map[string]interface{}{
		"conversationId": group.ID,
		"content":        "hi there",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message models.Message `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message.ID)
	assert.Equal(t, member.ID, resp.Message.SenderID)
	assert.Equal(t, group.ID, resp.Message.ConversationID)

	w = doCreateMessage(creator.ID, map[string]interface{}{
		"conversationId": group.ID,
		"content":        "welcome",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	database.DB.Model(&models.Message{}).Where("conversation_id = ?", group.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	creator := makeUser("dm_creator", "dm_creator")
	member := makeUser("dm_member", "dm_member")

	group := makeGroup("dm_group", creator.ID, "Chat", false, member)
	database.DB.Create(&models.Message{ID: "dm_msg", SenderID: member.ID, ConversationID: group.ID, Content: "mine"})

	// Not even the group creator may delete somebody else's message, and the
	// rejected delete leaves it retrievable.
	w := doDeleteMessage(creator.ID, "dm_msg")
	assert.Equal(t, http.StatusForbidden, w.Code)

	var msg models.Message
	assert.NoError(t, database.DB.First(&msg, "id = ?", "dm_msg").Error)
	assert.Equal(t, "mine", msg.Content)

	w = doDeleteMessage(member.ID, "dm_msg")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Error(t, database.DB.First(&msg, "id = ?", "dm_msg").Error)

	// Gone messages report not found.
	w = doDeleteMessage(member.ID, "dm_msg")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
