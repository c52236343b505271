package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
)

type FeedbackController struct {
	feedback      services.FeedbackStore
	notifications services.NotificationStore
}

func NewFeedbackController(feedback services.FeedbackStore, notifications services.NotificationStore) *FeedbackController {
	return &FeedbackController{feedback: feedback, notifications: notifications}
}

type submitFeedbackInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit accepts rider feedback from anyone.
func (f *FeedbackController) Submit(c *gin.Context) {
	var input submitFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &models.Feedback{Name: input.Name, Email: input.Email, Message: input.Message}
	if err := f.feedback.Create(entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted successfully"})
}

// List returns all feedback, newest first (admin only).
func (f *FeedbackController) List(c *gin.Context) {
	list, err := f.feedback.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Delete removes a feedback entry and any notifications tied to its author.
func (f *FeedbackController) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	entry, err := f.feedback.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := f.feedback.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	if err := f.notifications.DeleteByEmail(entry.Email, models.NotifyFeedback); err != nil {
		logrus.WithError(err).Warn("failed to delete feedback notifications")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
