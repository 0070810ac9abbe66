package orders

import "time"

type OrderStatus string

const (
	StatusInit       OrderStatus = "INIT"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCancelled  OrderStatus = "CANCELLED"
	StatusDone       OrderStatus = "DONE"
)

// Order is a buyer company's purchase of credits from a project.
type Order struct {
	ID             int64       `gorm:"primaryKey" json:"id"`
	ProjectID      int64       `gorm:"not null;index" json:"project_id"`
	BuyerCompanyID int64       `gorm:"not null;index" json:"buyer_company_id"`
	Quantity       float64     `gorm:"not null" json:"quantity"`
	Status         OrderStatus `gorm:"type:varchar(32);not null;default:'INIT';index" json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
