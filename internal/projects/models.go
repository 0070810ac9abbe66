package projects

import (
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	StatusInit     ProjectStatus = "INIT"
	StatusApproved ProjectStatus = "APPROVED"
	StatusRejected ProjectStatus = "REJECTED"
)

// Project represents a carbon credit project submitted by a seller company
type Project struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `json:"description"`
	Address        string         `json:"address"`
	CreditAmount   float64        `json:"credit_amount"`
	Price          float64        `json:"price"`
	Status         ProjectStatus  `gorm:"type:varchar(32);not null;default:'INIT';index" json:"status"`
	OwnerCompanyID int64          `gorm:"not null;index" json:"owner_company_id"`
	AuditBy        *int64         `json:"audit_by,omitempty"`
	Details        datatypes.JSON `json:"details"` // methodology, certificates, images
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
