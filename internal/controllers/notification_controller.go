package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
)

// Number of per-bus notifications returned to riders.
const busNotificationLimit = 10

type NotificationController struct {
	notifications services.NotificationStore
}

func NewNotificationController(notifications services.NotificationStore) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List returns every notification, newest first.
func (n *NotificationController) List(c *gin.Context) {
	list, err := n.notifications.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type createNotificationInput struct {
	BusNumber string `json:"bus_number" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// Create publishes a rider-facing notice for a bus (admin only).
func (n *NotificationController) Create(c *gin.Context) {
	var input createNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bus number and message are required"})
		return
	}

	notification := &models.Notification{
		BusNumber: input.BusNumber,
		Message:   input.Message,
		Kind:      models.NotifyGeneral,
	}
	if err := n.notifications.Create(notification); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Notification created successfully", "notification": notification})
}

// Delete removes a notification (admin only).
func (n *NotificationController) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := n.notifications.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

// ListByBus returns the latest notices for one bus.
func (n *NotificationController) ListByBus(c *gin.Context) {
	list, err := n.notifications.ListByBus(c.Param("busNumber"), busNotificationLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
