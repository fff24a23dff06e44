package model

type MenuItem struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Image       string  `json:"image"`
	Price       float64 `gorm:"not null" json:"price"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
