package models

import (
	"strconv"
	"strings"
	"time"
)

// Partnership status values stored in partnerships.status
const (
	PartnershipPending  = "Pending"
	PartnershipActive   = "Active"
	PartnershipRejected = "Rejected"
)

type Partnership struct {
	PartnershipID uint `gorm:"primaryKey;column:partnership_id" json:"partnership_id"`

	// Partner institution
	PartnerName          string `gorm:"column:partner_name" json:"partner_name"`
	PartnerAddress       string `gorm:"column:partner_address" json:"partner_address"`
	PartnerCountry       string `gorm:"column:partner_country" json:"partner_country"`
	OrganizationType     string `gorm:"column:organization_type" json:"organization_type"` // Academic|Research|NGO|INGO|Government|Private|Other
	InterestedDepartment string `gorm:"column:interested_department" json:"interested_department"`

	CollaborationAreas     string  `gorm:"column:collaboration_areas" json:"collaboration_areas"` // comma-separated
	OtherCollaborationArea *string `gorm:"column:other_collaboration_area" json:"other_collaboration_area,omitempty"`

	PotentialStartDate time.Time `gorm:"column:potential_start_date" json:"potential_start_date"`
	Duration           string    `gorm:"column:duration" json:"duration"` // "1 year" .. "5 years"

	FundingAmount         float64 `gorm:"column:funding_amount" json:"funding_amount"`
	Deliverables          *string `gorm:"column:deliverables" json:"deliverables,omitempty"`
	ReportingRequirements *string `gorm:"column:reporting_requirements" json:"reporting_requirements,omitempty"`
	Description           string  `gorm:"column:description" json:"description"`
	Scope                 *string `gorm:"column:scope" json:"scope,omitempty"`
	MouFileURL            *string `gorm:"column:mou_file_url" json:"mou_file_url,omitempty"`

	// Primary contacts
	PartnerContactName  string `gorm:"column:partner_contact_name" json:"partner_contact_name"`
	PartnerContactEmail string `gorm:"column:partner_contact_email" json:"partner_contact_email"`
	PartnerContactPhone string `gorm:"column:partner_contact_phone" json:"partner_contact_phone"`
	LocalContactName    string `gorm:"column:local_contact_name" json:"local_contact_name"`
	LocalContactEmail   string `gorm:"column:local_contact_email" json:"local_contact_email"`
	LocalContactPhone   string `gorm:"column:local_contact_phone" json:"local_contact_phone"`

	Status     string `gorm:"column:status" json:"status"` // Pending|Active|Rejected
	CampusID   string `gorm:"column:campus_id" json:"campus_id"`
	CreatedBy  uint   `gorm:"column:created_by" json:"created_by"`
	IsArchived bool   `gorm:"column:is_archived" json:"is_archived"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Partnership) TableName() string { return "partnerships" }

// ExpirationDate derives the end of the partnership from the start date and the
// "N years" duration label. Returns false when the duration cannot be parsed.
func (p *Partnership) ExpirationDate() (time.Time, bool) {
	fields := strings.Fields(p.Duration)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	years, err := strconv.Atoi(fields[0])
	if err != nil || years <= 0 {
		return time.Time{}, false
	}
	return p.PotentialStartDate.AddDate(years, 0, 0), true
}
