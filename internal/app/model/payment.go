package model

import "time"

type PaymentStatus string       // 결제 상태 코드 (게이트웨이 상태와 동일한 리터럴)
type PaymentReversalType string // 결제 역방향 처리 유형
type PayMethod string           // 결제 수단

const (
	PaymentStatusFailed               PaymentStatus = "FAILED"
	PaymentStatusCanceled             PaymentStatus = "CANCELED"
	PaymentStatusPaid                 PaymentStatus = "PAID"
	PaymentStatusPartialCanceled      PaymentStatus = "PARTIAL_CANCELED"
	PaymentStatusPayPending           PaymentStatus = "PAY_PENDING"
	PaymentStatusReady                PaymentStatus = "READY"
	PaymentStatusVirtualAccountIssued PaymentStatus = "VIRTUAL_ACCOUNT_ISSUED"
	PaymentStatusForgery              PaymentStatus = "FORGERY" // 금액 위변조 의심

	PaymentReversalFullRefund    PaymentReversalType = "FULL_REFUND"
	PaymentReversalPartialRefund PaymentReversalType = "PARTIAL_REFUND"
	PaymentReversalFullCancel    PaymentReversalType = "FULL_CANCEL"
	PaymentReversalPartialCancel PaymentReversalType = "PARTIAL_CANCEL"

	PayMethodCard            PayMethod = "CARD"
	PayMethodTransfer        PayMethod = "TRANSFER"
	PayMethodMobile          PayMethod = "MOBILE"
	PayMethodGiftCertificate PayMethod = "GIFT_CERTIFICATE"
	PayMethodEasyPay         PayMethod = "EASY_PAY"
	PayMethodPaypal          PayMethod = "PAYPAL"
	PayMethodAlipay          PayMethod = "ALIPAY"
)

// StockDecreaseStatuses는 재고 차감 메시지를 발행해야 하는 결제 상태입니다.
var StockDecreaseStatuses = []PaymentStatus{
	PaymentStatusPaid,
	PaymentStatusVirtualAccountIssued,
	PaymentStatusReady,
	PaymentStatusPayPending,
}

func (s PaymentStatus) TriggersStockDecrease() bool {
	for _, allowed := range StockDecreaseStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Payment는 주문에 대한 결제/취소 이력의 추가 전용 행입니다.
// 정방향과 역방향 모두 한 건당 한 행을 남깁니다.
type Payment struct {
	ID                  uint                `gorm:"primarykey" json:"id"`
	OrderID             uint                `gorm:"not null;index" json:"order_id"`
	PaymentID           string              `gorm:"type:varchar(100);not null;index" json:"payment_id"`
	PayMethod           PayMethod           `gorm:"type:varchar(30);not null" json:"pay_method"`
	PaymentStatus       PaymentStatus       `gorm:"type:varchar(30);not null" json:"payment_status"`
	PaymentAmount       int64               `gorm:"not null" json:"payment_amount"`
	PaymentReversalType PaymentReversalType `gorm:"type:varchar(30)" json:"payment_reversal_type,omitempty"`
	CancelAmount        int64               `gorm:"not null;default:0" json:"cancel_amount"`
	RefundShippingFee   int64               `gorm:"not null;default:0" json:"refund_shipping_fee"`
	ReasonForReversal   string              `gorm:"type:text" json:"reason_for_reversal,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
