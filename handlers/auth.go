package handlers

import (
	"errors"
	"net/http"
	"strings"

	"delivrya/catalog"
	"delivrya/config"
	"delivrya/middleware"
	"delivrya/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const emailTaken = "Cet email est déjà utilisé."

type SignupRequest struct {
	Prenom     string            `json:"prenom" binding:"required"`
	Nom        string            `json:"nom" binding:"required"`
	Email      string            `json:"email" binding:"required,email"`
	Telephone  string            `json:"telephone" binding:"required"`
	MotDePasse string            `json:"motDePasse" binding:"required"`
	Ville      string            `json:"ville" binding:"required"`
	Adresse    string            `json:"adresse" binding:"required"`
	Role       models.ClientRole `json:"role"`
}

type LoginRequest struct {
	Email      string            `json:"email" binding:"required"`
	MotDePasse string            `json:"motDePasse" binding:"required"`
	Role       models.ClientRole `json:"role"`
}

func knownCity(name string) bool {
	for _, c := range catalog.Cities() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Signup creates a client account. A taken email answers 409 with a plain
// text message the app shows under the email field.
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != models.RoleClient {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	if !knownCity(req.Ville) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown city", "cities": catalog.Cities()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.Client
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.String(http.StatusConflict, emailTaken)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		deps.Log.Error("lookup client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.MotDePasse), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	client := models.Client{
		Prenom:       req.Prenom,
		Nom:          req.Nom,
		Email:        email,
		Telephone:    req.Telephone,
		PasswordHash: string(hash),
		Ville:        req.Ville,
		Adresse:      req.Adresse,
		Role:         req.Role,
	}
	if err := config.DB.Create(&client).Error; err != nil {
		deps.Log.Error("create client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	deps.Log.Info("client signed up", zap.Uint("client_id", client.ID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"client":  client,
	})
}

// Login authenticates a client and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := config.DB.Where("email = ?", email).First(&client).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(req.MotDePasse)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if client.Role != req.Role {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := middleware.GenerateToken(&client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"client": gin.H{
			"id":    client.ID,
			"name":  client.FullName(),
			"email": client.Email,
			"role":  client.Role,
		},
	})
}

// GetProfile returns the authenticated client's profile
func GetProfile(c *gin.Context) {
	var client models.Client
	if err := config.DB.First(&client, middleware.GetClientID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client, "name": client.FullName()})
}
