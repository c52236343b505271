package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
)

type AuthController struct {
	approval *services.ApprovalService
	sessions *services.SessionService
}

func NewAuthController(approval *services.ApprovalService, sessions *services.SessionService) *AuthController {
	return &AuthController{approval: approval, sessions: sessions}
}

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// Register creates an account. Students are usable immediately; driver and
// admin requests come back pending and must be approved by an admin.
func (a *AuthController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.approval.Register(input.Name, input.Email, input.Password, input.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	if user.Status == models.StatusPending {
		c.JSON(http.StatusCreated, gin.H{"msg": "Registration request sent. Please wait for admin approval."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "User registered successfully"})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Login issues a token. The role field is optional; when the client says
// which portal it is logging into, a mismatch is rejected.
func (a *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := a.sessions.Login(input.Email, input.Password, input.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// CheckStatus is the public probe applicants use while waiting for a
// decision. For a pending request the requested role is reported.
func (a *AuthController) CheckStatus(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	status, role, err := a.approval.CheckStatus(email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "role": role})
}
