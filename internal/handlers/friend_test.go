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

func makeUser(id, username string) models.User {
	user := models.User{
		ID:        id,
		FirstName: "First_" + username,
		LastName:  "Last_" + username,
		Username:  username,
		Email:     username + "@example.com",
		Password:  "irrelevant",
		Confirmed: true,
	}
	database.DB.Create(&user)
	return user
}

func doAddFriend(callerID, username string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/friends", map[string]string{"username": username})
	c.Set("userId", callerID)
	AddFriend(c)
	return w
}

func TestAddFriendRejectsDuplicateAndSelf(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	a := makeUser("fr_a", "fr_alice")
	makeUser("fr_b", "fr_bob")

	w := doAddFriend(a.ID, "fr_bob")
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same edge from the other side is a duplicate.
	w = doAddFriend("fr_b", "fr_alice")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Self-friendship.
	w = doAddFriend(a.ID, "fr_alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown target.
	w = doAddFriend(a.ID, "fr_ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	database.DB.Model(&models.Friend{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListFriendsReturnsOtherParty(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	a := makeUser("fl_a", "fl_alice")
	b := makeUser("fl_b", "fl_bob")

	w := doAddFriend(a.ID, "fl_bob")
	assert.Equal(t, http.StatusCreated, w.Code)

	// The caller who sits on the person-two side still sees the other party.
	w = httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/friends", nil)
	c.Set("userId", b.ID)
	ListFriends(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var friends []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &friends))
	assert.Len(t, friends, 1)
	assert.Equal(t, "fl_alice", friends[0]["username"])
}

func TestDeleteFriendMatchesEitherOrientation(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	a := makeUser("fd_a", "fd_alice")
	b := makeUser("fd_b", "fd_bob")

	w := doAddFriend(a.ID, "fd_bob")
	assert.Equal(t, http.StatusCreated, w.Code)

	// B created no edge but can delete the one A created.
	w = httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/friends/"+a.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: a.ID}}
	c.Set("userId", b.ID)
	DeleteFriend(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.Friend{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Gone in both orientations.
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/friends/"+b.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: b.ID}}
	c.Set("userId", a.ID)
	DeleteFriend(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
