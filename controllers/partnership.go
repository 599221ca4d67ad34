package controllers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"partnership-management-api/config"
	"partnership-management-api/models"
	"partnership-management-api/services"
	"partnership-management-api/utils"
)

type partnershipRequest struct {
	PartnerName          string `json:"partner_name" binding:"required"`
	PartnerAddress       string `json:"partner_address" binding:"required"`
	PartnerCountry       string `json:"partner_country" binding:"required"`
	OrganizationType     string `json:"organization_type" binding:"required"`
	InterestedDepartment string `json:"interested_department" binding:"required"`

	CollaborationAreas     string  `json:"collaboration_areas"`
	OtherCollaborationArea *string `json:"other_collaboration_area"`

	PotentialStartDate string `json:"potential_start_date" binding:"required"`
	Duration           string `json:"duration" binding:"required"`

	FundingAmount         float64 `json:"funding_amount" binding:"required"`
	Deliverables          *string `json:"deliverables"`
	ReportingRequirements *string `json:"reporting_requirements"`
	Description           string  `json:"description" binding:"required"`
	Scope                 *string `json:"scope"`
	MouFileURL            *string `json:"mou_file_url"`

	PartnerContactName  string `json:"partner_contact_name" binding:"required"`
	PartnerContactEmail string `json:"partner_contact_email" binding:"required,email"`
	PartnerContactPhone string `json:"partner_contact_phone" binding:"required"`
	LocalContactName    string `json:"local_contact_name" binding:"required"`
	LocalContactEmail   string `json:"local_contact_email" binding:"required,email"`
	LocalContactPhone   string `json:"local_contact_phone" binding:"required"`

	Status string `json:"status"`
}

func validPartnershipStatus(s string) bool {
	switch s {
	case models.PartnershipPending, models.PartnershipActive, models.PartnershipRejected:
		return true
	}
	return false
}

// dispatchPartnershipEvent broadcasts a partnership lifecycle event. Delivery
// is best-effort; failures are logged and never fail the request.
func dispatchPartnershipEvent(title, message string) {
	err := services.DefaultNotifier.Dispatch(services.NotificationEvent{
		Title:   title,
		Message: message,
		Type:    models.NotificationTypePartnerships,
	})
	if err != nil {
		log.Printf("Failed to dispatch partnership notification %q: %v", title, err)
	}
}

// CreatePartnership records a new partnership request and notifies admins.
func CreatePartnership(c *gin.Context) {
	var req partnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.PotentialStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid start date is required (YYYY-MM-DD)"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.PartnershipPending
	}
	if !validPartnershipStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: Active, Rejected, or Pending"})
		return
	}

	userID, _ := currentUserID(c)

	// SuperAdmins carry no campus scope; their records land on a default campus.
	campusID := "default_campus"
	if currentRole(c) != models.RoleSuperAdmin {
		if v, ok := c.Get("campusID"); ok {
			campusID = v.(string)
		}
	}

	now := time.Now()
	partnership := models.Partnership{
		PartnerName:            utils.SanitizeInput(req.PartnerName),
		PartnerAddress:         utils.SanitizeInput(req.PartnerAddress),
		PartnerCountry:         utils.SanitizeInput(req.PartnerCountry),
		OrganizationType:       req.OrganizationType,
		InterestedDepartment:   utils.SanitizeInput(req.InterestedDepartment),
		CollaborationAreas:     req.CollaborationAreas,
		OtherCollaborationArea: req.OtherCollaborationArea,
		PotentialStartDate:     startDate,
		Duration:               req.Duration,
		FundingAmount:          req.FundingAmount,
		Deliverables:           req.Deliverables,
		ReportingRequirements:  req.ReportingRequirements,
		Description:            utils.SanitizeInput(req.Description),
		Scope:                  req.Scope,
		MouFileURL:             req.MouFileURL,
		PartnerContactName:     utils.SanitizeInput(req.PartnerContactName),
		PartnerContactEmail:    req.PartnerContactEmail,
		PartnerContactPhone:    req.PartnerContactPhone,
		LocalContactName:       utils.SanitizeInput(req.LocalContactName),
		LocalContactEmail:      req.LocalContactEmail,
		LocalContactPhone:      req.LocalContactPhone,
		Status:                 status,
		CampusID:               campusID,
		CreatedBy:              userID,
		IsArchived:             false,
		CreateAt:               &now,
		UpdateAt:               &now,
	}

	if err := config.DB.Create(&partnership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create partnership"})
		return
	}

	dispatchPartnershipEvent(
		"New Partnership Request",
		fmt.Sprintf("%s has requested a new partnership", partnership.PartnerName),
	)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Partnership created successfully",
		"partnership": partnership,
	})
}

// GetPartnerships lists partnerships with status/archive/date filters.
func GetPartnerships(c *gin.Context) {
	query := config.DB.Model(&models.Partnership{})

	if status := c.Query("status"); status != "" {
		if !validPartnershipStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
			return
		}
		query = query.Where("status = ?", status)
	}
	switch c.Query("archived") {
	case "true":
		query = query.Where("is_archived = ?", true)
	case "false":
		query = query.Where("is_archived = ?", false)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("potential_start_date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("potential_start_date <= ?", endDate)
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partnerships"})
		return
	}

	var partnerships []models.Partnership
	err := query.Order("create_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&partnerships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partnerships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"partnerships": partnerships,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
			"limit": limit,
		},
	})
}

// GetPartnership returns one partnership by id.
func GetPartnership(c *gin.Context) {
	var partnership models.Partnership
	if err := config.DB.First(&partnership, "partnership_id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partnership": partnership})
}

// UpdatePartnership replaces the editable fields of a partnership.
func UpdatePartnership(c *gin.Context) {
	var partnership models.Partnership
	if err := config.DB.First(&partnership, "partnership_id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership not found"})
		return
	}

	var req partnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.PotentialStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid start date is required (YYYY-MM-DD)"})
		return
	}
	if req.Status != "" && !validPartnershipStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	now := time.Now()
	partnership.PartnerName = utils.SanitizeInput(req.PartnerName)
	partnership.PartnerAddress = utils.SanitizeInput(req.PartnerAddress)
	partnership.PartnerCountry = utils.SanitizeInput(req.PartnerCountry)
	partnership.OrganizationType = req.OrganizationType
	partnership.InterestedDepartment = utils.SanitizeInput(req.InterestedDepartment)
	partnership.CollaborationAreas = req.CollaborationAreas
	partnership.OtherCollaborationArea = req.OtherCollaborationArea
	partnership.PotentialStartDate = startDate
	partnership.Duration = req.Duration
	partnership.FundingAmount = req.FundingAmount
	partnership.Deliverables = req.Deliverables
	partnership.ReportingRequirements = req.ReportingRequirements
	partnership.Description = utils.SanitizeInput(req.Description)
	partnership.Scope = req.Scope
	partnership.MouFileURL = req.MouFileURL
	partnership.PartnerContactName = utils.SanitizeInput(req.PartnerContactName)
	partnership.PartnerContactEmail = req.PartnerContactEmail
	partnership.PartnerContactPhone = req.PartnerContactPhone
	partnership.LocalContactName = utils.SanitizeInput(req.LocalContactName)
	partnership.LocalContactEmail = req.LocalContactEmail
	partnership.LocalContactPhone = req.LocalContactPhone
	if req.Status != "" {
		partnership.Status = req.Status
	}
	partnership.UpdateAt = &now

	if err := config.DB.Save(&partnership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update partnership"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Partnership updated successfully",
		"partnership": partnership,
	})
}

// DeletePartnership removes a partnership record.
func DeletePartnership(c *gin.Context) {
	result := config.DB.Delete(&models.Partnership{}, "partnership_id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete partnership"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partnership deleted successfully"})
}

// setPartnershipStatus transitions a partnership and broadcasts the outcome.
func setPartnershipStatus(c *gin.Context, status, title, verb string) {
	var partnership models.Partnership
	if err := config.DB.First(&partnership, "partnership_id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership not found"})
		return
	}

	now := time.Now()
	partnership.Status = status
	partnership.UpdateAt = &now
	if err := config.DB.Save(&partnership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update partnership"})
		return
	}

	dispatchPartnershipEvent(title,
		fmt.Sprintf("The partnership with %s has been %s", partnership.PartnerName, verb))

	c.JSON(http.StatusOK, gin.H{
		"message":     "Partnership " + verb,
		"partnership": partnership,
	})
}

// ApprovePartnership activates a pending partnership.
func ApprovePartnership(c *gin.Context) {
	setPartnershipStatus(c, models.PartnershipActive, "Partnership Approved", "approved")
}

// RejectPartnership rejects a pending partnership.
func RejectPartnership(c *gin.Context) {
	setPartnershipStatus(c, models.PartnershipRejected, "Partnership Rejected", "rejected")
}

// ArchivePartnership hides a partnership from the default listings.
func ArchivePartnership(c *gin.Context) {
	var partnership models.Partnership
	if err := config.DB.First(&partnership, "partnership_id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership not found"})
		return
	}

	now := time.Now()
	partnership.IsArchived = true
	partnership.UpdateAt = &now
	if err := config.DB.Save(&partnership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive partnership"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partnership archived", "partnership": partnership})
}

type renewPartnershipRequest struct {
	PotentialStartDate string `json:"potential_start_date" binding:"required"`
	Duration           string `json:"duration" binding:"required"`
	MouFileURL         string `json:"mou_file_url" binding:"required"`
}

// RenewPartnership restarts an expiring partnership under a new agreement.
func RenewPartnership(c *gin.Context) {
	var partnership models.Partnership
	if err := config.DB.First(&partnership, "partnership_id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership not found"})
		return
	}

	var req renewPartnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.PotentialStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid start date is required (YYYY-MM-DD)"})
		return
	}

	now := time.Now()
	partnership.PotentialStartDate = startDate
	partnership.Duration = req.Duration
	partnership.MouFileURL = &req.MouFileURL
	partnership.Status = models.PartnershipActive
	partnership.IsArchived = false
	partnership.UpdateAt = &now

	if err := config.DB.Save(&partnership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to renew partnership"})
		return
	}

	dispatchPartnershipEvent("Partnership Renewed",
		fmt.Sprintf("The partnership with %s has been renewed", partnership.PartnerName))

	c.JSON(http.StatusOK, gin.H{
		"message":     "Partnership renewed",
		"partnership": partnership,
	})
}
