package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
)

type ContactController struct {
	contacts      services.ContactStore
	notifications services.NotificationStore
}

func NewContactController(contacts services.ContactStore, notifications services.NotificationStore) *ContactController {
	return &ContactController{contacts: contacts, notifications: notifications}
}

type submitContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Submit accepts a contact form from anyone.
func (cc *ContactController) Submit(c *gin.Context) {
	var input submitContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	contact := &models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  models.ContactNew,
	}
	if err := cc.contacts.Create(contact); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Contact form submitted successfully"})
}

// List returns all submissions, newest first (admin only).
func (cc *ContactController) List(c *gin.Context) {
	contacts, err := cc.contacts.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// MarkRead flags a submission as read (admin only).
func (cc *ContactController) MarkRead(c *gin.Context) {
	cc.setStatus(c, models.ContactRead)
}

// MarkReplied flags a submission as replied (admin only).
func (cc *ContactController) MarkReplied(c *gin.Context) {
	cc.setStatus(c, models.ContactReplied)
}

func (cc *ContactController) setStatus(c *gin.Context, status string) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	contact, err := cc.contacts.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	contact.Status = status
	if err := cc.contacts.Save(contact); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

type replyInput struct {
	Reply string `json:"reply" binding:"required"`
}

// Reply records the admin's answer and notifies the submitter by email
// address through the notification feed.
func (cc *ContactController) Reply(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	var input replyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := cc.contacts.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	contact.Reply = input.Reply
	contact.Status = models.ContactReplied
	contact.RepliedAt = &now
	if err := cc.contacts.Save(contact); err != nil {
		respondError(c, err)
		return
	}

	notification := &models.Notification{
		UserEmail: contact.Email,
		Kind:      models.NotifyContactReply,
		ContactID: &contact.ID,
		Message:   "Reply to your contact submission: " + input.Reply,
	}
	if err := cc.notifications.Create(notification); err != nil {
		// The reply itself is saved; a lost notification is only logged.
		logrus.WithError(err).Warn("failed to create contact-reply notification")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply sent", "contact": contact})
}

// DeleteReply withdraws an answer and its notifications.
func (cc *ContactController) DeleteReply(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	contact, err := cc.contacts.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	contact.Reply = ""
	contact.Status = models.ContactRead
	contact.RepliedAt = nil
	if err := cc.contacts.Save(contact); err != nil {
		respondError(c, err)
		return
	}

	if err := cc.notifications.DeleteByContact(contact.ID, models.NotifyContactReply); err != nil {
		logrus.WithError(err).Warn("failed to delete contact-reply notifications")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted", "contact": contact})
}

// Delete removes a submission (admin only).
func (cc *ContactController) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	if err := cc.contacts.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
