package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
)

// UserController exposes the approval workflow to admins plus the
// self-service profile endpoints.
type UserController struct {
	approval *services.ApprovalService
}

func NewUserController(approval *services.ApprovalService) *UserController {
	return &UserController{approval: approval}
}

// Dashboard echoes the authenticated identity for the SPA landing page.
func (u *UserController) Dashboard(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	c.JSON(http.StatusOK, gin.H{
		"msg":     "Welcome, " + user.Role + "!",
		"user_id": user.ID,
		"role":    user.Role,
		"name":    user.Name,
		"email":   user.Email,
	})
}

type updateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateUser applies a profile patch. Users can only edit themselves; admins
// can edit anyone. Role and status are not reachable from here.
func (u *UserController) UpdateUser(c *gin.Context) {
	targetID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	callerID := c.MustGet("user_id").(uint)
	if callerID != targetID && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := u.approval.UpdateProfile(targetID, services.ProfilePatch{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// PendingUsers lists every account awaiting a decision.
func (u *UserController) PendingUsers(c *gin.Context) {
	users, err := u.approval.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type decisionInput struct {
	Note string `json:"note"`
}

// ApproveUser grants a pending role request.
func (u *UserController) ApproveUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input decisionInput
	_ = c.ShouldBindJSON(&input) // note is optional, an empty body is fine

	user, err := u.approval.Approve(id, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User approved", "user": user})
}

// RejectUser declines a pending role request.
func (u *UserController) RejectUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input decisionInput
	_ = c.ShouldBindJSON(&input)

	user, err := u.approval.Reject(id, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User rejected", "user": user})
}

// ListUsers returns every account for the admin dashboard.
func (u *UserController) ListUsers(c *gin.Context) {
	users, err := u.approval.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes an account.
func (u *UserController) DeleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := u.approval.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
