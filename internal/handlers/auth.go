package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/services"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/utils"
)

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not all parameters are filled."})
		return
	}

	if len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters."})
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).Error; err == nil {
		if existing.Email == input.Email {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "This username is already taken."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	user := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		Password:     string(hashedPassword),
		ConfirmToken: utils.GenerateID(),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		logger.Warn().Err(err).Str("email", input.Email).Msg("Registration failed: unique violation")
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email is already taken"})
		return
	}

	// Delivery failures are logged, not surfaced: the account exists and the
	// confirmation mail can be re-triggered operationally.
	if err := services.SendConfirmationEmail(user.Email, user.ConfirmToken); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send confirmation email")
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered successfully")

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// ConfirmFromQuery handles the link clicked from the confirmation email.
func ConfirmFromQuery(c *gin.Context) {
	confirmAccount(c, c.Query("token"))
}

type ConfirmInput struct {
	Token string `json:"token" binding:"required"`
}

// ConfirmFromBody is the same confirmation flow driven by the frontend.
func ConfirmFromBody(c *gin.Context) {
	var input ConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}
	confirmAccount(c, input.Token)
}

func confirmAccount(c *gin.Context, token string) {
	if !utils.IsUUIDv4(token) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	var user models.User
	if err := database.DB.Where("confirm_token = ?", token).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	if user.Confirmed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Account already confirmed"})
		return
	}

	if err := database.DB.Model(&user).Update("confirmed", true).Error; err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to confirm account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("Account confirmed")
	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed successfully"})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		// Same message as a password mismatch to avoid user enumeration.
		logger.Warn().Str("email", input.Email).Msg("Login failed: user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.Confirmed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account not confirmed"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User logged in")
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout revokes the presented token for its remaining lifetime.
func Logout(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	claims, ok := claimsValue.(*utils.Claims)
	if !ok || claims == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	jti := claims.GetJTI()
	if jti == "" || claims.ExpiresAt == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
		return
	}

	if err := database.BlacklistToken(jti, ttl); err != nil {
		logger.Error().Err(err).Str("jti", jti).Msg("Failed to blacklist token")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
