package model

import (
	"time"
)

type DinerOrder struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	DinerID     uint        `gorm:"not null;index" json:"-"`
	FranchiseID uint        `gorm:"not null;index" json:"franchiseId"`
	StoreID     uint        `gorm:"not null;index" json:"storeId"`
	Date        time.Time   `gorm:"autoCreateTime" json:"date"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (DinerOrder) TableName() string {
	return "diner_orders"
}

type OrderItem struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"-"`
	MenuID      uint    `gorm:"not null;index" json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderPage is one page of a diner's order history.
type OrderPage struct {
	DinerID uint         `json:"dinerId"`
	Orders  []DinerOrder `json:"orders"`
	Page    int          `json:"page"`
}
