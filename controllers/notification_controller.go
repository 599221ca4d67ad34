package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"partnership-management-api/config"
	"partnership-management-api/models"
	"partnership-management-api/services"
)

func currentUserID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case uint:
			return t, true
		case int:
			return uint(t), true
		case int64:
			return uint(t), true
		case float64:
			return uint(t), true
		}
	}
	return 0, false
}

func currentRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func validNotificationType(t string) bool {
	switch t {
	case models.NotificationTypePartnerships, models.NotificationTypeSystem, models.NotificationTypeAlerts:
		return true
	}
	return false
}

// notificationScope builds the base query: SuperAdmin sees every record,
// Admin only their own.
func notificationScope(c *gin.Context) *gorm.DB {
	query := config.DB.Model(&models.Notification{})
	if currentRole(c) != models.RoleSuperAdmin {
		userID, _ := currentUserID(c)
		query = query.Where("user_id = ?", userID)
	}
	return query
}

// GetNotifications lists notifications with type/read filters and pagination.
func GetNotifications(c *gin.Context) {
	query := notificationScope(c)

	if t := c.Query("type"); t != "" {
		if !validNotificationType(t) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification type"})
			return
		}
		query = query.Where("type = ?", t)
	}
	switch c.Query("is_read") {
	case "true":
		query = query.Where("is_read = ?", true)
	case "false":
		query = query.Where("is_read = ?", false)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var notifications []models.Notification
	err := query.Order("create_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
			"limit": limit,
		},
	})
}

// GetUnreadNotifications returns every unread notification in scope.
func GetUnreadNotifications(c *gin.Context) {
	var notifications []models.Notification
	err := notificationScope(c).
		Where("is_read = ?", false).
		Order("create_at DESC").
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

type createNotificationRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"required"`
	UserID  uint   `json:"user_id"`
}

// CreateNotification dispatches a manual event. Omitting user_id broadcasts
// to every Admin and SuperAdmin; either way, per-recipient preferences apply.
func CreateNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.DefaultNotifier.Dispatch(services.NotificationEvent{
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		UserID:  req.UserID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Notification created"})
}

// MarkNotificationRead flips the read flag on one owned notification.
func MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")

	result := notificationScope(c).
		Where("notification_id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification in scope as read.
func MarkAllNotificationsRead(c *gin.Context) {
	if err := notificationScope(c).Where("is_read = ?", false).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification removes one owned notification (any, for SuperAdmin).
func DeleteNotification(c *gin.Context) {
	id := c.Param("id")

	result := notificationScope(c).
		Where("notification_id = ?", id).
		Delete(&models.Notification{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// GetNotificationSettings returns the caller's settings, creating the default
// all-enabled row on first read.
func GetNotificationSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var settings models.NotificationSettings
	err := config.DB.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		settings = models.DefaultNotificationSettings(userID)
		if err := config.DB.Create(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type updateSettingsRequest struct {
	System      *bool `json:"system" binding:"required"`
	Partnership *bool `json:"partnership" binding:"required"`
	Alerts      *bool `json:"alerts" binding:"required"`
}

// UpdateNotificationSettings upserts the caller's category preferences.
func UpdateNotificationSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.NotificationSettings{
		UserID:      userID,
		System:      *req.System,
		Partnership: *req.Partnership,
		Alerts:      *req.Alerts,
	}

	var existing models.NotificationSettings
	err := config.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		settings.SettingsID = existing.SettingsID
		err = config.DB.Save(&settings).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		err = config.DB.Create(&settings).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated", "settings": settings})
}
