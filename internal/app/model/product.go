package model

import "time"

type SellingStatus string // 카탈로그 판매 상태
type OptionType string    // 옵션 그룹 유형

const (
	SellingStatusOpen    SellingStatus = "OPEN"    // 판매 중
	SellingStatusStop    SellingStatus = "STOP"    // 판매 중지
	SellingStatusSoldout SellingStatus = "SOLDOUT" // 품절
	SellingStatusError   SellingStatus = "ERROR"   // 카탈로그 오류

	OptionTypeSelect     OptionType = "SELECT"      // 선택형 옵션
	OptionTypeInput      OptionType = "INPUT"       // 입력형 옵션
	OptionTypeAddProduct OptionType = "ADD_PRODUCT" // 추가 상품
)

// Product는 외부 카탈로그 서비스의 로컬 미러 행입니다.
// ShippingFee만 이 서비스가 직접 관리하며, 나머지 컬럼은 주문 시점과
// 야간 스케줄러에서 카탈로그 응답으로 덮어씁니다.
type Product struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	BrandName     string        `gorm:"type:varchar(100);not null" json:"brand_name"`
	ProductName   string        `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductCode   string        `gorm:"type:varchar(100)" json:"product_code,omitempty"`
	DiscountRate  float64       `gorm:"default:0" json:"discount_rate"`
	SellingStatus SellingStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"selling_status"`
	Price         int64         `gorm:"not null" json:"price"`
	SalePrice     int64         `gorm:"not null" json:"sale_price"`
	ShippingFee   int64         `gorm:"not null;default:100" json:"shipping_fee"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	OptionGroups []OptionGroup `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"option_groups,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

type OptionGroup struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	ProductID  uint       `gorm:"not null;index" json:"product_id"`
	OptionName string     `gorm:"type:varchar(100);not null" json:"option_name"`
	OptionType OptionType `gorm:"type:varchar(20);not null" json:"option_type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Product       Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	OptionDetails []OptionDetail `gorm:"foreignKey:OptionGroupID;constraint:OnDelete:CASCADE" json:"option_details,omitempty"`
}

func (OptionGroup) TableName() string {
	return "option_groups"
}

type OptionDetail struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	OptionGroupID uint      `gorm:"not null;index" json:"option_group_id"`
	OptionValue   string    `gorm:"type:varchar(255);not null" json:"option_value"`
	OptionPrice   int64     `gorm:"not null;default:0" json:"option_price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	OptionGroup OptionGroup `gorm:"foreignKey:OptionGroupID" json:"option_group,omitempty"`
}

func (OptionDetail) TableName() string {
	return "option_details"
}
