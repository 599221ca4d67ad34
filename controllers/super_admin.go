package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"partnership-management-api/config"
	"partnership-management-api/models"
	"partnership-management-api/services"
	"partnership-management-api/utils"
)

// sendMailFunc is swappable in tests.
var sendMailFunc = config.SendMail

type assignAdminRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	CampusID  string `json:"campus_id"`
	Role      string `json:"role" binding:"required"`
}

// AssignAdmin provisions an Admin or SuperAdmin account with a generated
// password, delivered by email. SuperAdmins carry no campus scope; Admins
// require one.
func AssignAdmin(c *gin.Context) {
	var req assignAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != models.RoleAdmin && req.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role specified"})
		return
	}
	if req.Role == models.RoleAdmin && req.CampusID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campus ID is required for Admin accounts"})
		return
	}

	req.Email = utils.SanitizeInput(req.Email)
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email is required"})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
		return
	}

	password, err := utils.GeneratePassword(12)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	hashed, err := services.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var campusID *string
	if req.Role == models.RoleAdmin {
		campusID = &req.CampusID
	}

	now := time.Now()
	user := models.User{
		FirstName: utils.SanitizeInput(req.FirstName),
		LastName:  utils.SanitizeInput(req.LastName),
		Email:     req.Email,
		Password:  hashed,
		Role:      req.Role,
		CampusID:  campusID,
		Status:    models.StatusActive,
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Credentials go out by email; the API response never carries the password.
	mailErr := sendMailFunc([]string{user.Email}, "Your partnership portal account",
		fmt.Sprintf("<p>An account has been created for you.</p><p>Temporary password: <b>%s</b></p><p>Please sign in and change it immediately.</p>", password))
	if mailErr != nil {
		log.Printf("Failed to send credentials to %s: %v", user.Email, mailErr)
	}

	err = services.DefaultNotifier.Dispatch(services.NotificationEvent{
		Title:   "User Account Created",
		Message: fmt.Sprintf("A new user account has been created for %s %s", user.FirstName, user.LastName),
		Type:    models.NotificationTypeSystem,
		UserID:  user.UserID,
	})
	if err != nil {
		log.Printf("Failed to dispatch account-created notification: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User assigned successfully",
		"email":     user.Email,
		"mail_sent": mailErr == nil,
	})
}

// GetAllUsers returns every account (SuperAdmin only).
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("delete_at IS NULL").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(users),
		"users": users,
	})
}

// GetUsers returns accounts visible to the caller: SuperAdmin sees all,
// Admin only their campus.
func GetUsers(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if currentRole(c) != models.RoleSuperAdmin {
		campusID, _ := c.Get("campusID")
		query = query.Where("campus_id = ?", campusID)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

// UpdateUser edits an account's profile fields (SuperAdmin only).
func UpdateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != nil && *req.Role != models.RoleAdmin && *req.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be SuperAdmin or Admin"})
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case models.StatusPending, models.StatusActive, models.StatusInactive:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}
	if req.Email != nil {
		email := utils.SanitizeInput(*req.Email)
		if !utils.ValidateEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email is required"})
			return
		}
		user.Email = email
	}

	if req.FirstName != nil {
		user.FirstName = utils.SanitizeInput(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = utils.SanitizeInput(*req.LastName)
	}
	if req.Role != nil {
		user.Role = *req.Role
		if user.Role == models.RoleSuperAdmin {
			user.CampusID = nil
		}
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	now := time.Now()
	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// DeleteUser soft-deletes an account (SuperAdmin only).
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	err := config.DB.Model(&user).Updates(map[string]interface{}{
		"delete_at": now,
		"update_at": now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
