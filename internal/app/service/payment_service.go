package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/sjlee/order-api/internal/queue"
	"github.com/sjlee/order-api/pkg/logger"
	"github.com/sjlee/order-api/pkg/payment/portone"
	"gorm.io/gorm"
)

const refundShippingFeeAmount = 5000 // 구매자 부담 반품 배송비(원)

var (
	// ErrOrderNotReversible은 취소/환불이 허용되지 않는 주문 상태입니다.
	ErrOrderNotReversible = errors.New("This order can't be canceled or refunded")

	// ErrPartialNeedsItemIDs는 대상 항목 없는 부분 취소/환불 요청입니다.
	ErrPartialNeedsItemIDs = errors.New("Partial reversal need to orderItemIds.")

	// ErrNoRefundApply는 환불 신청이 없는 주문의 환불 완료 시도입니다.
	ErrNoRefundApply = errors.New("There is no refund apply.")

	// ErrCancellationNotSucceeded는 게이트웨이 취소가 확정되지 않은 경우입니다.
	ErrCancellationNotSucceeded = errors.New("cancellation is not succeeded.")

	// ErrItemAlreadyReversed는 이미 취소/환불/확정된 항목의 재처리 시도입니다.
	ErrItemAlreadyReversed = errors.New("Status is already refund or cancel or confirmed")
)

type PaymentInput struct {
	PaymentID      string          `json:"payment_id" binding:"required"`
	OrderID        uint            `json:"order_id" binding:"required"`
	PayMethod      model.PayMethod `json:"pay_method" binding:"required"`
	DeliveryID     uint            `json:"delivery_id" binding:"required"`
	DeliveryMemoID uint            `json:"delivery_memo_id"`
	PointAmount    int64           `json:"point_amount"`
	CouponAmount   int64           `json:"coupon_amount"`
}

type GatewayCancelInput struct {
	Amount        int64             `json:"amount"`
	TaxFreeAmount int64             `json:"tax_free_amount"`
	VATAmount     int64             `json:"vat_amount"`
	Reason        string            `json:"reason"`
	Requester     portone.Requester `json:"requester" binding:"required"`
}

type CancelPaymentInput struct {
	OrderID      uint               `json:"order_id" binding:"required"`
	OrderItemIDs []uint             `json:"order_item_ids"`
	IsPartial    bool               `json:"is_partial"`
	Cancel       GatewayCancelInput `json:"cancel" binding:"required"`
}

// Environment는 프론트엔드 결제 위젯 초기화에 필요한 식별자입니다.
type Environment struct {
	StoreID    string `json:"store_id"`
	ChannelKey string `json:"channel_key"`
}

type PaymentService interface {
	Pay(ctx context.Context, email string, input PaymentInput) (*model.Payment, error)
	CancelPayment(ctx context.Context, email string, input CancelPaymentInput) (*model.Payment, error)
	GetPayment(email string, paymentRowID uint) (*model.Payment, error)
	GetPayments(email string, orderID uint, page, limit int) ([]model.Payment, int64, error)
	GetEnvironment() Environment
}

type paymentService struct {
	db            *gorm.DB
	portoneClient *portone.Client
	publisher     queue.Publisher
}

func NewPaymentService(db *gorm.DB, portoneClient *portone.Client, publisher queue.Publisher) PaymentService {
	return &paymentService{
		db:            db,
		portoneClient: portoneClient,
		publisher:     publisher,
	}
}

// Pay는 게이트웨이 결제를 주문과 대사하고 결과를 기록합니다.
// 게이트웨이 조회는 읽기 전용이므로 트랜잭션 밖에서 수행합니다.
func (s *paymentService) Pay(ctx context.Context, email string, input PaymentInput) (*model.Payment, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	if _, err := memberRepo.Validate(email); err != nil {
		return nil, err
	}

	gwPayment, err := s.portoneClient.GetPayment(ctx, input.PaymentID)
	if err != nil {
		logger.Error("Failed to fetch payment from gateway", err, map[string]interface{}{
			"payment_id": input.PaymentID,
			"order_id":   input.OrderID,
		})
		return nil, err
	}

	var payment *model.Payment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := repository.NewOrderRepository(tx)
		deliveryRepo := repository.NewDeliveryRepository(tx)
		paymentRepo := repository.NewPaymentRepository(tx)

		order, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}

		delivery, err := deliveryRepo.GetByID(input.DeliveryID)
		if err != nil {
			return err
		}

		var memo *model.DeliveryMemo
		if input.DeliveryMemoID != 0 {
			memo, err = deliveryRepo.GetMemoByID(input.DeliveryMemoID)
			if err != nil {
				return err
			}
		}

		// 위변조 검사: 주문 금액과 게이트웨이 승인 금액이 포인트/쿠폰을
		// 감안하고도 맞지 않으면 FORGERY로 기록하고 커밋한다.
		status := model.PaymentStatus(gwPayment.Status)
		expected := order.TotalAmount + order.ShippingFee
		settled := gwPayment.Amount.Total + input.CouponAmount + input.PointAmount
		if expected != settled {
			status = model.PaymentStatusForgery
			logger.Error("Payment amount mismatch detected", fmt.Errorf("expected %d, settled %d", expected, settled), map[string]interface{}{
				"order_id":   order.ID,
				"payment_id": input.PaymentID,
			})
		}

		if status == model.PaymentStatusPaid {
			order.OrderStatus = model.OrderStatusCompletePayment
			for i := range order.OrderItems {
				order.OrderItems[i].OrderItemStatus = model.OrderItemStatusSuccess
				if err := orderRepo.SaveItem(&order.OrderItems[i]); err != nil {
					return err
				}
			}
		}

		row := model.Payment{
			OrderID:       order.ID,
			PaymentID:     input.PaymentID,
			PayMethod:     input.PayMethod,
			PaymentStatus: status,
			PaymentAmount: gwPayment.Amount.Total,
		}
		if err := paymentRepo.Create(&row); err != nil {
			return err
		}

		// 배송지 스냅샷을 주문에 복사
		order.CustomerName = delivery.CustomerName
		order.PhoneNumber = delivery.PhoneNumber
		order.Address = delivery.Address
		if memo != nil {
			order.DeliveryMemo = memo.Memo
		}
		order.PaymentID = input.PaymentID
		order.PayMethod = input.PayMethod
		order.PointAmount = input.PointAmount
		order.CouponAmount = input.CouponAmount
		if err := orderRepo.Save(order); err != nil {
			return err
		}

		payment = &row
		payment.Order = *order
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 재고 차감 메시지는 커밋 이후 발행하고, 실패해도 결제 결과에는
	// 영향을 주지 않는다.
	if payment.PaymentStatus.TriggersStockDecrease() {
		items := make([]queue.StockItem, 0, len(payment.Order.OrderItems))
		for _, item := range payment.Order.OrderItems {
			items = append(items, queue.StockItem{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		if err := s.publisher.PublishStockDecrease(ctx, items); err != nil {
			logger.Error("Failed to publish stock decrease message", err, map[string]interface{}{
				"order_id":   payment.OrderID,
				"payment_id": payment.PaymentID,
			})
		}
	}

	logger.Info("Payment reconciled", map[string]interface{}{
		"email":          email,
		"order_id":       payment.OrderID,
		"payment_status": payment.PaymentStatus,
	})
	return payment, nil
}

// CancelPayment은 취소/환불을 게이트웨이와 로컬 상태에 함께 반영합니다.
// 게이트웨이 취소 호출은 로컬 검증이 전부 통과한 뒤 트랜잭션 안에서
// 수행되며, 이후의 로컬 쓰기 실패는 전체 작업 실패로 보고됩니다.
func (s *paymentService) CancelPayment(ctx context.Context, email string, input CancelPaymentInput) (*model.Payment, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	if _, err := memberRepo.Validate(email); err != nil {
		return nil, err
	}

	var payment *model.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := repository.NewOrderRepository(tx)
		paymentRepo := repository.NewPaymentRepository(tx)

		order, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}

		if !order.OrderStatus.Cancelable() {
			return fmt.Errorf("%w. status: %s", ErrOrderNotReversible, order.OrderStatus)
		}
		if input.IsPartial && len(input.OrderItemIDs) == 0 {
			return ErrPartialNeedsItemIDs
		}

		cancel := input.Cancel
		var refundShippingFee int64

		// 관리자가 사유 없이 호출하면 환불 완료 경로: 신청 단계에서
		// 보관한 사유와 배송비 부담 정보를 꺼내 쓴다.
		intent := model.ReversalIntentCancel
		if cancel.Requester == portone.RequesterAdmin {
			intent = model.ReversalIntentRefund
			if cancel.Reason == "" {
				if order.ReversalType != model.ReversalTypeApplyRefund &&
					order.ReversalType != model.ReversalTypeApplyPartialRefund {
					return ErrNoRefundApply
				}
				cancel.Reason = order.ReasonForReversal
				if order.RefundShippingFeeType == model.RefundShippingFeeBuyer {
					refundShippingFee = refundShippingFeeAmount
				}
			}
		}

		scope := model.ReversalScopeFull
		if input.IsPartial {
			scope = model.ReversalScopePartial
		}
		outcome, ok := model.ReversalOutcomeFor(scope, intent)
		if !ok {
			return fmt.Errorf("no reversal outcome for scope %s, intent %s", scope, intent)
		}

		items := order.OrderItems
		if input.IsPartial {
			items, err = orderRepo.GetItemsByIDs(input.OrderItemIDs)
			if err != nil {
				return err
			}
		}
		for i := range items {
			status := items[i].OrderItemStatus
			if status != model.OrderItemStatusApplyRefund && status != model.OrderItemStatusSuccess {
				return fmt.Errorf("%w. status: %s", ErrItemAlreadyReversed, status)
			}
		}

		resp, err := s.portoneClient.CancelPayment(ctx, order.PaymentID, portone.CancelRequest{
			Amount:        cancel.Amount,
			TaxFreeAmount: cancel.TaxFreeAmount,
			VATAmount:     cancel.VATAmount,
			Reason:        cancel.Reason,
			Requester:     cancel.Requester,
		})
		if err != nil {
			logger.Error("Gateway cancel failed", err, map[string]interface{}{
				"order_id":   order.ID,
				"payment_id": order.PaymentID,
			})
			return err
		}
		cancellation := resp.Cancellation
		if cancellation.Status != portone.CancellationSucceeded {
			return fmt.Errorf("%w status: %s", ErrCancellationNotSucceeded, cancellation.Status)
		}

		for i := range items {
			items[i].OrderItemStatus = outcome.OrderItemStatus
			if err := orderRepo.SaveItem(&items[i]); err != nil {
				return err
			}
		}

		order.OrderStatus = outcome.OrderStatus
		order.ReversalType = outcome.ReversalType
		order.ReasonForReversal = cancellation.Reason
		if err := orderRepo.Save(order); err != nil {
			return err
		}

		row := model.Payment{
			OrderID:             order.ID,
			PaymentID:           order.PaymentID,
			PayMethod:           order.PayMethod,
			PaymentStatus:       outcome.PaymentStatus,
			PaymentAmount:       cancellation.TotalAmount,
			PaymentReversalType: outcome.PaymentReversalType,
			CancelAmount:        cancellation.TotalAmount,
			RefundShippingFee:   refundShippingFee,
			ReasonForReversal:   cancellation.Reason,
		}
		if err := paymentRepo.Create(&row); err != nil {
			return err
		}

		payment = &row
		payment.Order = *order
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment reversal completed", map[string]interface{}{
		"email":          email,
		"order_id":       payment.OrderID,
		"payment_status": payment.PaymentStatus,
		"reversal_type":  payment.PaymentReversalType,
	})
	return payment, nil
}

func (s *paymentService) GetPayment(email string, paymentRowID uint) (*model.Payment, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	paymentRepo := repository.NewPaymentRepository(s.db)

	if _, err := memberRepo.Validate(email); err != nil {
		return nil, err
	}
	return paymentRepo.GetByID(paymentRowID)
}

func (s *paymentService) GetPayments(email string, orderID uint, page, limit int) ([]model.Payment, int64, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	orderRepo := repository.NewOrderRepository(s.db)
	paymentRepo := repository.NewPaymentRepository(s.db)

	if _, err := memberRepo.Validate(email); err != nil {
		return nil, 0, err
	}
	if _, err := orderRepo.GetByID(orderID); err != nil {
		return nil, 0, err
	}

	offset, limit := normalizePage(page, limit)
	return paymentRepo.FindByOrderID(orderID, offset, limit)
}

func (s *paymentService) GetEnvironment() Environment {
	cfg := s.portoneClient.GetConfig()
	return Environment{
		StoreID:    cfg.StoreID,
		ChannelKey: cfg.ChannelKey,
	}
}
