package model

import "time"

type OrderStatus string           // 주문 상태 코드
type OrderItemStatus string       // 주문 항목 상태 코드
type ReversalType string          // 취소/환불 진행 단계
type RefundShippingFeeType string // 반품 배송비 부담 주체
type CancelRequester string       // 취소 요청 주체

const (
	OrderStatusBeforePayment     OrderStatus = "BEFORE_PAYMENT"     // 결제 전
	OrderStatusCompletePayment   OrderStatus = "COMPLETE_PAYMENT"   // 결제 완료
	OrderStatusBeforeDelivery    OrderStatus = "BEFORE_DELIVERY"    // 배송 전
	OrderStatusInDelivery        OrderStatus = "IN_DELIVERY"        // 배송 중
	OrderStatusCompletedDelivery OrderStatus = "COMPLETED_DELIVERY" // 배송 완료
	OrderStatusInReturn          OrderStatus = "IN_RETURN"          // 반품 진행 중
	OrderStatusReturn            OrderStatus = "RETURN"             // 반품 완료
	OrderStatusFullCancel        OrderStatus = "FULL_CANCEL"        // 전체 취소
	OrderStatusPartialCancel     OrderStatus = "PARTIAL_CANCEL"     // 부분 취소
	OrderStatusFullRefund        OrderStatus = "FULL_REFUND"        // 전체 환불
	OrderStatusPartialRefund     OrderStatus = "PARTIAL_REFUND"     // 부분 환불
	OrderStatusConfirmed         OrderStatus = "CONFIRMED"          // 구매 확정

	OrderItemStatusBefore         OrderItemStatus = "BEFORE"          // 결제 전
	OrderItemStatusSuccess        OrderItemStatus = "SUCCESS"         // 결제 완료
	OrderItemStatusFailed         OrderItemStatus = "FAILED"          // 결제 실패
	OrderItemStatusApplyRefund    OrderItemStatus = "APPLY_REFUND"    // 환불 신청
	OrderItemStatusCompleteRefund OrderItemStatus = "COMPLETE_REFUND" // 환불 완료
	OrderItemStatusCompleteCancel OrderItemStatus = "COMPLETE_CANCEL" // 취소 완료
	OrderItemStatusConfirmed      OrderItemStatus = "CONFIRMED"       // 구매 확정

	ReversalTypeApplyRefund           ReversalType = "APPLY_REFUND"            // 전체 환불 신청
	ReversalTypeApplyPartialRefund    ReversalType = "APPLY_PARTIAL_REFUND"    // 부분 환불 신청
	ReversalTypeCompleteFullCancel    ReversalType = "COMPLETE_FULL_CANCEL"    // 전체 취소 완료
	ReversalTypeCompletePartialCancel ReversalType = "COMPLETE_PARTIAL_CANCEL" // 부분 취소 완료
	ReversalTypeCompleteFullRefund    ReversalType = "COMPLETE_FULL_REFUND"    // 전체 환불 완료
	ReversalTypeCompletePartialRefund ReversalType = "COMPLETE_PARTIAL_REFUND" // 부분 환불 완료

	RefundShippingFeeBuyer  RefundShippingFeeType = "BUYER_RESPONSIBILITY"  // 구매자 부담
	RefundShippingFeeSeller RefundShippingFeeType = "SELLER_RESPONSIBILITY" // 판매자 부담

	CancelRequesterAdmin CancelRequester = "ADMIN"
	CancelRequesterUser  CancelRequester = "USER"
)

// Order는 결제·취소·환불의 기준이 되는 주문 헤더입니다. 배송지 스냅샷
// 컬럼들은 결제 확정 시점에 Delivery/DeliveryMemo에서 복사됩니다.
type Order struct {
	ID                    uint                  `gorm:"primarykey" json:"id"`
	MemberID              uint                  `gorm:"not null;index" json:"member_id"`
	TotalAmount           int64                 `gorm:"not null" json:"total_amount"`
	ShippingFee           int64                 `gorm:"not null;default:0" json:"shipping_fee"`
	PointAmount           int64                 `gorm:"not null;default:0" json:"point_amount"`
	CouponAmount          int64                 `gorm:"not null;default:0" json:"coupon_amount"`
	Commission            int64                 `gorm:"not null;default:0" json:"commission"`
	OrderStatus           OrderStatus           `gorm:"type:varchar(30);not null;default:'BEFORE_PAYMENT'" json:"order_status"`
	ReversalType          ReversalType          `gorm:"type:varchar(30)" json:"reversal_type,omitempty"`
	RefundShippingFeeType RefundShippingFeeType `gorm:"type:varchar(30)" json:"refund_shipping_fee_type,omitempty"`
	ReasonForReversal     string                `gorm:"type:text" json:"reason_for_reversal,omitempty"`
	CustomerName          string                `gorm:"type:varchar(100)" json:"customer_name,omitempty"`
	PhoneNumber           string                `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	Address               string                `gorm:"type:varchar(500)" json:"address,omitempty"`
	DeliveryMemo          string                `gorm:"type:varchar(255)" json:"delivery_memo,omitempty"`
	PaymentID             string                `gorm:"type:varchar(100);index" json:"payment_id,omitempty"`
	PayMethod             PayMethod             `gorm:"type:varchar(30)" json:"pay_method,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`

	Member     Member      `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	Payments   []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem은 주문 시점의 상품 스냅샷입니다. 미러 상품이 이후에 갱신돼도
// 이 행의 가격과 이름은 변하지 않습니다.
type OrderItem struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	OrderID         uint            `gorm:"not null;index" json:"order_id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	BrandName       string          `gorm:"type:varchar(100);not null" json:"brand_name"`
	ProductName     string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductCode     string          `gorm:"type:varchar(100)" json:"product_code,omitempty"`
	DiscountRate    float64         `gorm:"default:0" json:"discount_rate"`
	Price           int64           `gorm:"not null" json:"price"`
	SalePrice       int64           `gorm:"not null" json:"sale_price"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	OrderItemStatus OrderItemStatus `gorm:"type:varchar(30);not null;default:'BEFORE'" json:"order_item_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Order              Order               `gorm:"foreignKey:OrderID" json:"-"`
	Product            Product             `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	OrderOptionDetails []OrderOptionDetail `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE" json:"order_option_details,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type OrderOptionDetail struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	OrderItemID    uint       `gorm:"not null;index" json:"order_item_id"`
	OptionDetailID uint       `gorm:"not null;index" json:"option_detail_id"`
	OptionName     string     `gorm:"type:varchar(100);not null" json:"option_name"`
	OptionValue    string     `gorm:"type:varchar(255);not null" json:"option_value"`
	OptionPrice    int64      `gorm:"not null;default:0" json:"option_price"`
	OptionType     OptionType `gorm:"type:varchar(20);not null" json:"option_type"`
	CreatedAt      time.Time  `json:"created_at"`

	OrderItem    OrderItem    `gorm:"foreignKey:OrderItemID" json:"-"`
	OptionDetail OptionDetail `gorm:"foreignKey:OptionDetailID" json:"option_detail,omitempty"`
}

func (OrderOptionDetail) TableName() string {
	return "order_option_details"
}

type ReversalScope string  // 취소/환불 범위
type ReversalIntent string // 취소/환불 구분

const (
	ReversalScopeFull    ReversalScope = "FULL"
	ReversalScopePartial ReversalScope = "PARTIAL"

	ReversalIntentCancel ReversalIntent = "CANCEL"
	ReversalIntentRefund ReversalIntent = "REFUND"
)

// ReversalOutcome은 취소/환불 완료 시 각 행이 가져야 할 목표 상태 묶음입니다.
type ReversalOutcome struct {
	OrderStatus         OrderStatus
	ReversalType        ReversalType
	OrderItemStatus     OrderItemStatus
	PaymentStatus       PaymentStatus
	PaymentReversalType PaymentReversalType
}

type reversalKey struct {
	Scope  ReversalScope
	Intent ReversalIntent
}

var reversalOutcomes = map[reversalKey]ReversalOutcome{
	{ReversalScopeFull, ReversalIntentCancel}: {
		OrderStatus:         OrderStatusFullCancel,
		ReversalType:        ReversalTypeCompleteFullCancel,
		OrderItemStatus:     OrderItemStatusCompleteCancel,
		PaymentStatus:       PaymentStatusCanceled,
		PaymentReversalType: PaymentReversalFullCancel,
	},
	{ReversalScopePartial, ReversalIntentCancel}: {
		OrderStatus:         OrderStatusPartialCancel,
		ReversalType:        ReversalTypeCompletePartialCancel,
		OrderItemStatus:     OrderItemStatusCompleteCancel,
		PaymentStatus:       PaymentStatusPartialCanceled,
		PaymentReversalType: PaymentReversalPartialCancel,
	},
	{ReversalScopeFull, ReversalIntentRefund}: {
		OrderStatus:         OrderStatusFullRefund,
		ReversalType:        ReversalTypeCompleteFullRefund,
		OrderItemStatus:     OrderItemStatusCompleteRefund,
		PaymentStatus:       PaymentStatusCanceled,
		PaymentReversalType: PaymentReversalFullRefund,
	},
	{ReversalScopePartial, ReversalIntentRefund}: {
		OrderStatus:         OrderStatusPartialRefund,
		ReversalType:        ReversalTypeCompletePartialRefund,
		OrderItemStatus:     OrderItemStatusCompleteRefund,
		PaymentStatus:       PaymentStatusPartialCanceled,
		PaymentReversalType: PaymentReversalPartialRefund,
	},
}

// ReversalOutcomeFor는 (범위, 구분) 조합의 목표 상태를 돌려줍니다.
func ReversalOutcomeFor(scope ReversalScope, intent ReversalIntent) (ReversalOutcome, bool) {
	outcome, ok := reversalOutcomes[reversalKey{Scope: scope, Intent: intent}]
	return outcome, ok
}

// CancelableOrderStatuses는 취소/환불 완료 처리가 허용되는 주문 상태입니다.
var CancelableOrderStatuses = []OrderStatus{
	OrderStatusInReturn,
	OrderStatusCompletePayment,
	OrderStatusBeforeDelivery,
	OrderStatusCompletedDelivery,
}

func (s OrderStatus) Cancelable() bool {
	for _, allowed := range CancelableOrderStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}
