package model

import "time"

// Member는 외부 인증 서비스에서 동기화된 회원 행입니다.
// 이 서비스는 회원을 생성하지 않고 검증만 합니다.
type Member struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Cart          *Cart          `gorm:"foreignKey:MemberID" json:"cart,omitempty"`
	Deliveries    []Delivery     `gorm:"foreignKey:MemberID" json:"deliveries,omitempty"`
	DeliveryMemos []DeliveryMemo `gorm:"foreignKey:MemberID" json:"delivery_memos,omitempty"`
	Orders        []Order        `gorm:"foreignKey:MemberID" json:"orders,omitempty"`
}

func (Member) TableName() string {
	return "members"
}
