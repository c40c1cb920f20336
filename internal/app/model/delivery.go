package model

import "time"

// Delivery는 회원의 배송지입니다. 기본 배송지는 회원당 하나만 유지됩니다.
type Delivery struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	MemberID     uint      `gorm:"not null;index" json:"member_id"`
	CustomerName string    `gorm:"type:varchar(100);not null" json:"customer_name"`
	PhoneNumber  string    `gorm:"type:varchar(30);not null" json:"phone_number"`
	Address      string    `gorm:"type:varchar(500);not null" json:"address"`
	IsDefault    bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

type DeliveryMemo struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	Memo      string    `gorm:"type:varchar(255);not null" json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (DeliveryMemo) TableName() string {
	return "delivery_memos"
}
