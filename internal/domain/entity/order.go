package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a stored sales order
type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderDate     *time.Time     `gorm:"index" json:"order_date,omitempty"`
	CustomerName  string         `gorm:"size:255" json:"customer_name"`
	CustomerEmail string         `gorm:"size:255;index" json:"customer_email"`
	OrderStatus   string         `gorm:"size:50" json:"order_status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ToRecord maps the stored order onto the canonical analytics shape
func (o *Order) ToRecord() OrderRecord {
	rec := OrderRecord{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        enum.ParseOrderStatus(o.OrderStatus),
		Items:         make([]LineItem, 0, len(o.Lines)),
	}
	if o.OrderDate != nil {
		rec.Date = o.OrderDate.UTC()
	}
	for _, l := range o.Lines {
		rec.Items = append(rec.Items, LineItem{ProductName: l.ProductName, Quantity: l.Quantity})
	}
	return rec
}

// OrderLine is a product line of a stored order, joined to inventory by product name
type OrderLine struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductName string         `gorm:"size:255;not null;index" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}
