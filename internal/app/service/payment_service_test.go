package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/queue"
	"github.com/sjlee/order-api/pkg/payment/portone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// capturingPublisher는 발행된 재고 차감 메시지를 기록만 합니다.
type capturingPublisher struct {
	published [][]queue.StockItem
}

func (p *capturingPublisher) PublishStockDecrease(_ context.Context, items []queue.StockItem) error {
	p.published = append(p.published, items)
	return nil
}

func newPortOneClient(t *testing.T, handler http.HandlerFunc) *portone.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := portone.NewClient(portone.Config{
		APISecret:  "test-secret",
		StoreID:    "store-test",
		ChannelKey: "channel-test",
		BaseURL:    server.URL,
	})
	require.NoError(t, err)
	return client
}

// gatewayPayment는 GET /payments/{id}에 고정 응답을 주는 핸들러입니다.
func gatewayPayment(status string, total int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(portone.Payment{
			Status: status,
			ID:     strings.TrimPrefix(r.URL.Path, "/payments/"),
			Amount: portone.PaymentAmount{Total: total, Paid: total},
		})
	}
}

// gatewayCancel은 POST .../cancel에 고정 취소 결과를 주는 핸들러입니다.
func gatewayCancel(status string, totalAmount int64, reason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req portone.CancelRequest
		json.NewDecoder(r.Body).Decode(&req)
		if reason == "" {
			reason = req.Reason
		}
		json.NewEncoder(w).Encode(portone.CancelResponse{
			Cancellation: portone.Cancellation{
				Status:      status,
				ID:          "cancel-1",
				TotalAmount: totalAmount,
				Reason:      reason,
			},
		})
	}
}

func seedPaidOrder(t *testing.T, gdb *gorm.DB, memberID, productID uint, status model.OrderStatus, itemStatus model.OrderItemStatus) *model.Order {
	t.Helper()
	order := seedOrder(t, gdb, memberID, status, 24000, 3000)
	require.NoError(t, gdb.Model(order).Updates(map[string]interface{}{
		"payment_id": "pay-1",
		"pay_method": model.PayMethodCard,
	}).Error)
	order.PaymentID = "pay-1"
	order.PayMethod = model.PayMethodCard
	seedOrderItem(t, gdb, order.ID, productID, itemStatus, 24000, 2)
	return order
}

func TestPay(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedOrder(t, gdb, member.ID, model.OrderStatusBeforePayment, 24000, 3000)
	seedOrderItem(t, gdb, order.ID, product.ID, model.OrderItemStatusBefore, 24000, 2)
	delivery := seedDelivery(t, gdb, member.ID, true)
	memo := model.DeliveryMemo{MemberID: member.ID, Memo: "문 앞에 놓아주세요"}
	require.NoError(t, gdb.Create(&memo).Error)

	client := newPortOneClient(t, gatewayPayment("PAID", 27000))
	publisher := &capturingPublisher{}
	svc := NewPaymentService(gdb, client, publisher)

	payment, err := svc.Pay(context.Background(), member.Email, PaymentInput{
		PaymentID:      "pay-1",
		OrderID:        order.ID,
		PayMethod:      model.PayMethodCard,
		DeliveryID:     delivery.ID,
		DeliveryMemoID: memo.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, payment.PaymentStatus)
	assert.Equal(t, int64(27000), payment.PaymentAmount)

	var refreshed model.Order
	require.NoError(t, gdb.Preload("OrderItems").First(&refreshed, order.ID).Error)
	assert.Equal(t, model.OrderStatusCompletePayment, refreshed.OrderStatus)
	assert.Equal(t, "pay-1", refreshed.PaymentID)
	assert.Equal(t, delivery.CustomerName, refreshed.CustomerName)
	assert.Equal(t, delivery.Address, refreshed.Address)
	assert.Equal(t, memo.Memo, refreshed.DeliveryMemo)
	for _, item := range refreshed.OrderItems {
		assert.Equal(t, model.OrderItemStatusSuccess, item.OrderItemStatus)
	}

	// 커밋 후 재고 차감 메시지가 발행된다.
	require.Len(t, publisher.published, 1)
	require.Len(t, publisher.published[0], 1)
	assert.Equal(t, product.ID, publisher.published[0][0].ProductID)
	assert.Equal(t, 2, publisher.published[0][0].Quantity)
}

func TestPay_WithPointsAndCoupon(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedOrder(t, gdb, member.ID, model.OrderStatusBeforePayment, 24000, 3000)
	seedOrderItem(t, gdb, order.ID, product.ID, model.OrderItemStatusBefore, 24000, 2)
	delivery := seedDelivery(t, gdb, member.ID, true)

	// 주문 27000원에서 포인트 2000 + 쿠폰 5000을 쓰고 20000원만 결제
	client := newPortOneClient(t, gatewayPayment("PAID", 20000))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	payment, err := svc.Pay(context.Background(), member.Email, PaymentInput{
		PaymentID:    "pay-1",
		OrderID:      order.ID,
		PayMethod:    model.PayMethodCard,
		DeliveryID:   delivery.ID,
		PointAmount:  2000,
		CouponAmount: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, payment.PaymentStatus)

	var refreshed model.Order
	require.NoError(t, gdb.First(&refreshed, order.ID).Error)
	assert.Equal(t, int64(2000), refreshed.PointAmount)
	assert.Equal(t, int64(5000), refreshed.CouponAmount)
}

func TestPay_Forgery(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedOrder(t, gdb, member.ID, model.OrderStatusBeforePayment, 24000, 3000)
	seedOrderItem(t, gdb, order.ID, product.ID, model.OrderItemStatusBefore, 24000, 2)
	delivery := seedDelivery(t, gdb, member.ID, true)

	// 게이트웨이 승인 금액이 주문 금액보다 작다.
	client := newPortOneClient(t, gatewayPayment("PAID", 1000))
	publisher := &capturingPublisher{}
	svc := NewPaymentService(gdb, client, publisher)

	payment, err := svc.Pay(context.Background(), member.Email, PaymentInput{
		PaymentID:  "pay-1",
		OrderID:    order.ID,
		PayMethod:  model.PayMethodCard,
		DeliveryID: delivery.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusForgery, payment.PaymentStatus)

	// 주문은 결제 완료로 넘어가지 않고, 재고 메시지도 나가지 않는다.
	var refreshed model.Order
	require.NoError(t, gdb.First(&refreshed, order.ID).Error)
	assert.Equal(t, model.OrderStatusBeforePayment, refreshed.OrderStatus)
	assert.Empty(t, publisher.published)
}

func TestCancelPayment_FullCancel(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusCompletePayment, model.OrderItemStatusSuccess)

	client := newPortOneClient(t, gatewayCancel(portone.CancellationSucceeded, 27000, ""))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	payment, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID: order.ID,
		Cancel: GatewayCancelInput{
			Amount:    27000,
			Reason:    "단순 변심",
			Requester: portone.RequesterUser,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCanceled, payment.PaymentStatus)
	assert.Equal(t, model.PaymentReversalFullCancel, payment.PaymentReversalType)
	assert.Equal(t, int64(27000), payment.CancelAmount)
	assert.Equal(t, "단순 변심", payment.ReasonForReversal)
	assert.Zero(t, payment.RefundShippingFee)

	var refreshed model.Order
	require.NoError(t, gdb.Preload("OrderItems").First(&refreshed, order.ID).Error)
	assert.Equal(t, model.OrderStatusFullCancel, refreshed.OrderStatus)
	assert.Equal(t, model.ReversalTypeCompleteFullCancel, refreshed.ReversalType)
	for _, item := range refreshed.OrderItems {
		assert.Equal(t, model.OrderItemStatusCompleteCancel, item.OrderItemStatus)
	}
}

func TestCancelPayment_PartialCancel(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusCompletePayment, model.OrderItemStatusSuccess)
	target := seedOrderItem(t, gdb, order.ID, product.ID, model.OrderItemStatusSuccess, 12000, 1)

	client := newPortOneClient(t, gatewayCancel(portone.CancellationSucceeded, 12000, ""))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	payment, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID:      order.ID,
		OrderItemIDs: []uint{target.ID},
		IsPartial:    true,
		Cancel: GatewayCancelInput{
			Amount:    12000,
			Reason:    "옵션 착오",
			Requester: portone.RequesterUser,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPartialCanceled, payment.PaymentStatus)
	assert.Equal(t, model.PaymentReversalPartialCancel, payment.PaymentReversalType)

	var refreshed model.Order
	require.NoError(t, gdb.Preload("OrderItems").First(&refreshed, order.ID).Error)
	assert.Equal(t, model.OrderStatusPartialCancel, refreshed.OrderStatus)

	// 대상 항목만 취소 완료로 바뀐다.
	for _, item := range refreshed.OrderItems {
		if item.ID == target.ID {
			assert.Equal(t, model.OrderItemStatusCompleteCancel, item.OrderItemStatus)
		} else {
			assert.Equal(t, model.OrderItemStatusSuccess, item.OrderItemStatus)
		}
	}
}

func TestCancelPayment_PartialNeedsItemIDs(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusCompletePayment, model.OrderItemStatusSuccess)

	client := newPortOneClient(t, gatewayCancel(portone.CancellationSucceeded, 12000, ""))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	_, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID:   order.ID,
		IsPartial: true,
		Cancel: GatewayCancelInput{
			Amount:    12000,
			Reason:    "옵션 착오",
			Requester: portone.RequesterUser,
		},
	})
	assert.ErrorIs(t, err, ErrPartialNeedsItemIDs)
}

func TestCancelPayment_NotCancelable(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusBeforePayment, model.OrderItemStatusBefore)

	client := newPortOneClient(t, gatewayCancel(portone.CancellationSucceeded, 27000, ""))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	_, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID: order.ID,
		Cancel: GatewayCancelInput{
			Reason:    "단순 변심",
			Requester: portone.RequesterUser,
		},
	})
	assert.ErrorIs(t, err, ErrOrderNotReversible)
}

func TestCancelPayment_AdminRefundCompletion(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusInReturn, model.OrderItemStatusApplyRefund)

	// 환불 신청 단계에서 보관된 사유와 배송비 부담 정보
	require.NoError(t, gdb.Model(order).Updates(map[string]interface{}{
		"reversal_type":            model.ReversalTypeApplyRefund,
		"refund_shipping_fee_type": model.RefundShippingFeeBuyer,
		"reason_for_reversal":      "파손",
	}).Error)

	var sentReason string
	client := newPortOneClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req portone.CancelRequest
		json.NewDecoder(r.Body).Decode(&req)
		sentReason = req.Reason
		json.NewEncoder(w).Encode(portone.CancelResponse{
			Cancellation: portone.Cancellation{
				Status:      portone.CancellationSucceeded,
				TotalAmount: 27000,
				Reason:      req.Reason,
			},
		})
	})
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	payment, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID: order.ID,
		Cancel: GatewayCancelInput{
			Amount:    27000,
			Requester: portone.RequesterAdmin,
		},
	})
	require.NoError(t, err)

	// 신청 시 보관한 사유가 게이트웨이 요청에 실린다.
	assert.Equal(t, "파손", sentReason)
	assert.Equal(t, model.PaymentStatusCanceled, payment.PaymentStatus)
	assert.Equal(t, model.PaymentReversalFullRefund, payment.PaymentReversalType)
	assert.Equal(t, int64(refundShippingFeeAmount), payment.RefundShippingFee)

	var refreshed model.Order
	require.NoError(t, gdb.Preload("OrderItems").First(&refreshed, order.ID).Error)
	assert.Equal(t, model.OrderStatusFullRefund, refreshed.OrderStatus)
	assert.Equal(t, model.ReversalTypeCompleteFullRefund, refreshed.ReversalType)
	for _, item := range refreshed.OrderItems {
		assert.Equal(t, model.OrderItemStatusCompleteRefund, item.OrderItemStatus)
	}
}

func TestCancelPayment_AdminRefundWithoutApply(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusCompletePayment, model.OrderItemStatusSuccess)

	client := newPortOneClient(t, gatewayCancel(portone.CancellationSucceeded, 27000, ""))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	_, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID: order.ID,
		Cancel: GatewayCancelInput{
			Amount:    27000,
			Requester: portone.RequesterAdmin,
		},
	})
	assert.ErrorIs(t, err, ErrNoRefundApply)
}

func TestCancelPayment_ItemAlreadyReversed(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusCompletePayment, model.OrderItemStatusCompleteCancel)

	client := newPortOneClient(t, gatewayCancel(portone.CancellationSucceeded, 27000, ""))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	_, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID: order.ID,
		Cancel: GatewayCancelInput{
			Amount:    27000,
			Reason:    "단순 변심",
			Requester: portone.RequesterUser,
		},
	})
	assert.ErrorIs(t, err, ErrItemAlreadyReversed)
}

func TestCancelPayment_CancellationNotSucceeded(t *testing.T) {
	gdb := setupDB(t)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	order := seedPaidOrder(t, gdb, member.ID, product.ID, model.OrderStatusCompletePayment, model.OrderItemStatusSuccess)

	client := newPortOneClient(t, gatewayCancel(portone.CancellationRequested, 27000, ""))
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	_, err := svc.CancelPayment(context.Background(), member.Email, CancelPaymentInput{
		OrderID: order.ID,
		Cancel: GatewayCancelInput{
			Amount:    27000,
			Reason:    "단순 변심",
			Requester: portone.RequesterUser,
		},
	})
	assert.ErrorIs(t, err, ErrCancellationNotSucceeded)

	// 취소 확정 실패 시 주문 상태는 그대로다.
	var refreshed model.Order
	require.NoError(t, gdb.First(&refreshed, order.ID).Error)
	assert.Equal(t, model.OrderStatusCompletePayment, refreshed.OrderStatus)
}

func TestGetEnvironment(t *testing.T) {
	gdb := setupDB(t)

	client := newPortOneClient(t, func(w http.ResponseWriter, r *http.Request) {})
	svc := NewPaymentService(gdb, client, &capturingPublisher{})

	env := svc.GetEnvironment()
	assert.Equal(t, "store-test", env.StoreID)
	assert.Equal(t, "channel-test", env.ChannelKey)
}
