package model

import "encoding/json"

// Franchise.Admins is nil in the public listing and non-nil (possibly empty)
// once the franchise has been populated with its admins.
type Franchise struct {
	ID     uint             `gorm:"primarykey" json:"id"`
	Name   string           `gorm:"uniqueIndex;not null" json:"name"`
	Admins []FranchiseAdmin `gorm:"-" json:"admins"`
	Stores []Store          `gorm:"foreignKey:FranchiseID" json:"stores"`
}

func (Franchise) TableName() string {
	return "franchises"
}

// MarshalJSON leaves out admins that were never loaded.
func (f Franchise) MarshalJSON() ([]byte, error) {
	type franchise Franchise
	if f.Admins != nil {
		return json.Marshal(franchise(f))
	}
	return json.Marshal(struct {
		franchise
		Admins []FranchiseAdmin `json:"admins,omitempty"`
	}{franchise: franchise(f)})
}

// HasAdmin reports whether userID is listed among the franchise's admins.
func (f *Franchise) HasAdmin(userID uint) bool {
	for _, a := range f.Admins {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// FranchiseAdmin is the public view of a user administering a franchise.
type FranchiseAdmin struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Store struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	FranchiseID  uint     `gorm:"not null;index" json:"franchiseId,omitempty"`
	Name         string   `gorm:"not null" json:"name"`
	TotalRevenue *float64 `gorm:"->;-:migration" json:"totalRevenue,omitempty"` // 주문 항목 합계 (조회 전용, 관리자 화면)
}

func (Store) TableName() string {
	return "stores"
}

// FranchisePage is one page of a franchise listing.
type FranchisePage struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more"`
}
