package users

import "time"

type UserStatus string

const (
	StatusInit     UserStatus = "INIT"
	StatusApproved UserStatus = "APPROVED"
	StatusRejected UserStatus = "REJECTED"
)

type UserRole string

const (
	RoleSellerOrBuyer UserRole = "SELLER_OR_BUYER"
	RoleMediator      UserRole = "MEDIATOR"
	RoleAdmin         UserRole = "ADMIN"
)

// Company is the legal entity a marketplace user acts for.
type Company struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppUser is a registered marketplace account awaiting or past moderation.
type AppUser struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	Email      string     `gorm:"not null;uniqueIndex" json:"email"`
	Role       UserRole   `gorm:"type:varchar(32);not null" json:"role"`
	Status     UserStatus `gorm:"type:varchar(32);not null;default:'INIT';index" json:"status"`
	CompanyID  *int64     `gorm:"uniqueIndex" json:"company_id,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UpdateCompanyRequest binds the body of PUT /users/:userId/company.
type UpdateCompanyRequest struct {
	CompanyID *int64 `json:"company_id" binding:"omitempty,gt=0"`
}
