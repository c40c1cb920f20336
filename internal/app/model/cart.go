package model

import "time"

// Cart는 회원당 하나만 존재하며 첫 담기 시점에 지연 생성됩니다.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex" json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Member    Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	CartItems []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"cart_items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem의 Quantity는 옵션 항목이 자체 수량을 가질 때 0입니다.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    uint      `gorm:"not null;index" json:"cart_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cart        Cart         `gorm:"foreignKey:CartID" json:"-"`
	Product     Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	OptionItems []OptionItem `gorm:"foreignKey:CartItemID;constraint:OnDelete:CASCADE" json:"option_items,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type OptionItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CartItemID     uint      `gorm:"not null;index" json:"cart_item_id"`
	OptionQuantity int       `gorm:"not null;default:0" json:"option_quantity"`
	IsDeleted      bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	CartItem          CartItem           `gorm:"foreignKey:CartItemID" json:"-"`
	CartOptionDetails []CartOptionDetail `gorm:"foreignKey:OptionItemID;constraint:OnDelete:CASCADE" json:"cart_option_details,omitempty"`
}

func (OptionItem) TableName() string {
	return "option_items"
}

// CartOptionDetail은 옵션 항목과 옵션 상세의 연결 행입니다.
type CartOptionDetail struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	OptionItemID   uint      `gorm:"not null;index" json:"option_item_id"`
	OptionDetailID uint      `gorm:"not null;index" json:"option_detail_id"`
	CreatedAt      time.Time `json:"created_at"`

	OptionItem   OptionItem   `gorm:"foreignKey:OptionItemID" json:"-"`
	OptionDetail OptionDetail `gorm:"foreignKey:OptionDetailID" json:"option_detail,omitempty"`
}

func (CartOptionDetail) TableName() string {
	return "cart_option_details"
}
