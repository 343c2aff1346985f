package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/config"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/services"
)

// pngBase64 renders a small solid PNG and returns it base64-encoded.
func pngBase64(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func useTempStorage(t *testing.T) {
	t.Helper()
	config.AppConfig.UploadDir = t.TempDir()
	require.NoError(t, services.EnsureStorageLayout())
}

func doSetProfilePicture(t *testing.T, callerID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/users/me/picture", body)
	c.Set("userId", callerID)
	SetProfilePicture(c)
	return w
}

func TestGetPublicProfile(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	user := makeUser("pp_user", "pp_user")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/users/"+user.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: user.ID}}
	GetPublicProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp["userId"])
	assert.Equal(t, "pp_user", resp["username"])
	assert.Equal(t, "First_pp_user", resp["firstName"])
	assert.NotContains(t, resp, "email")
	assert.NotContains(t, resp, "password")

	// Unknown id.
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/users/nobody", nil)
	c.Params = gin.Params{{Key: "id", Value: "nobody"}}
	GetPublicProfile(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetProfilePictureReplacesPrevious(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	useTempStorage(t)

	user := makeUser("spp_user", "spp_user")

	// Garbage payload is rejected before anything is written.
	w := doSetProfilePicture(t, user.ID, map[string]string{
		"image":    "not base64!!",
		"fileName": "me.png",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doSetProfilePicture(t, user.ID, map[string]string{
		"image":    pngBase64(t, 600, 600),
		"fileName": "me.png",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var first models.User
	require.NoError(t, database.DB.Preload("Picture").First(&first, "id = ?", user.ID).Error)
	require.NotNil(t, first.Picture)
	firstFile := filepath.Join(services.ProfilePicsDir(), first.Picture.FileName)
	assert.FileExists(t, firstFile)

	// Stored copy is width-bounded.
	f, err := os.Open(firstFile)
	require.NoError(t, err)
	cfgImg, _, err := image.DecodeConfig(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, services.ProfilePicWidth, cfgImg.Width)

	// Replacing retires the old file and removes its metadata row.
	w = doSetProfilePicture(t, user.ID, map[string]string{
		"image":    pngBase64(t, 300, 200),
		"fileName": "me2.png",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var second models.User
	require.NoError(t, database.DB.Preload("Picture").First(&second, "id = ?", user.ID).Error)
	require.NotNil(t, second.Picture)
	assert.NotEqual(t, first.Picture.ID, second.Picture.ID)

	assert.NoFileExists(t, firstFile)
	assert.FileExists(t, filepath.Join(services.DeletedDir(), first.Picture.FileName))

	var count int64
	database.DB.Model(&models.Media{}).Where("id = ?", first.Picture.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteAccountRetiresPicture(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	useTempStorage(t)

	user := makeUser("da_user", "da_user")

	w := doSetProfilePicture(t, user.ID, map[string]string{
		"image":    pngBase64(t, 100, 100),
		"fileName": "me.png",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loaded models.User
	require.NoError(t, database.DB.Preload("Picture").First(&loaded, "id = ?", user.ID).Error)
	pictureFile := loaded.Picture.FileName

	w = httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/users/me", nil)
	c.Set("userId", user.ID)
	DeleteAccount(c)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Error(t, database.DB.First(&models.User{}, "id = ?", user.ID).Error)
	assert.FileExists(t, filepath.Join(services.DeletedDir(), pictureFile))

	// The metadata row does not outlive the account.
	var count int64
	database.DB.Model(&models.Media{}).Where("id = ?", loaded.Picture.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteAccountCleansUpActivity(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	useTempStorage(t)

	doomed := makeUser("dd_doomed", "dd_doomed")
	friend := makeUser("dd_friend", "dd_friend")
	host := makeUser("dd_host", "dd_host")

	// Activity of every referencing kind: a friendship, an own group with
	// traffic from both sides, membership plus a message in somebody else's
	// group, and a profile picture.
	require.Equal(t, http.StatusCreated, doAddFriend(doomed.ID, "dd_friend").Code)

	owned := makeGroup("dd_owned", doomed.ID, "Owned", false, friend)
	database.DB.Create(&models.Message{ID: "dd_m1", SenderID: doomed.ID, ConversationID: owned.ID, Content: "mine"})
	database.DB.Create(&models.Message{ID: "dd_m2", SenderID: friend.ID, ConversationID: owned.ID, Content: "theirs"})

	hosted := makeGroup("dd_hosted", host.ID, "Hosted", false, doomed)
	database.DB.Create(&models.Message{ID: "dd_m3", SenderID: doomed.ID, ConversationID: hosted.ID, Content: "visiting"})
	database.DB.Create(&models.Message{ID: "dd_m4", SenderID: host.ID, ConversationID: hosted.ID, Content: "staying"})

	require.Equal(t, http.StatusOK, doSetProfilePicture(t, doomed.ID, map[string]string{
		"image":    pngBase64(t, 100, 100),
		"fileName": "me.png",
	}).Code)

	var loaded models.User
	require.NoError(t, database.DB.Preload("Picture").First(&loaded, "id = ?", doomed.ID).Error)
	pictureID := loaded.Picture.ID
	pictureFile := loaded.Picture.FileName

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/users/me", nil)
	c.Set("userId", doomed.ID)
	DeleteAccount(c)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Error(t, database.DB.First(&models.User{}, "id = ?", doomed.ID).Error)

	var count int64
	database.DB.Model(&models.Friend{}).
		Where("person_one_id = ? OR person_two_id = ?", doomed.ID, doomed.ID).
		Count(&count)
	assert.Equal(t, int64(0), count)

	// The owned conversation disappears with every message in it.
	assert.Error(t, database.DB.First(&models.Conversation{}, "id = ?", owned.ID).Error)
	database.DB.Model(&models.Message{}).Where("conversation_id = ?", owned.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// The hosted one survives without the deleted user's traces.
	assert.NoError(t, database.DB.First(&models.Conversation{}, "id = ?", hosted.ID).Error)
	assert.NotContains(t, groupMembers(hosted.ID), doomed.ID)
	database.DB.Model(&models.Message{}).Where("conversation_id = ?", hosted.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Picture row gone, file parked in the retention area.
	database.DB.Model(&models.Media{}).Where("id = ?", pictureID).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.FileExists(t, filepath.Join(services.DeletedDir(), pictureFile))
}

func TestGetMyGroups(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	u1 := makeUser("mg_u1", "mg_u1")
	u2 := makeUser("mg_u2", "mg_u2")
	u3 := makeUser("mg_u3", "mg_u3")

	makeGroup("mg_created", u1.ID, "Created by u1", false)
	makeGroup("mg_joined", u2.ID, "Joined by u1", false, u1)
	makeGroup("mg_unrelated", u3.ID, "Unrelated", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/users/me/groups", nil)
	c.Set("userId", u1.ID)
	GetMyGroups(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Groups []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Creator struct {
				Username string `json:"username"`
			} `json:"creator"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 2)

	seen := map[string]string{}
	for _, g := range resp.Groups {
		seen[g.ID] = g.Creator.Username
	}
	assert.Equal(t, "mg_u1", seen["mg_created"])
	assert.Equal(t, "mg_u2", seen["mg_joined"])
	assert.NotContains(t, seen, "mg_unrelated")
}
