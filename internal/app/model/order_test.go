package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReversalOutcomeFor(t *testing.T) {
	tests := []struct {
		name    string
		scope   ReversalScope
		intent  ReversalIntent
		outcome ReversalOutcome
	}{
		{
			name:   "full cancel",
			scope:  ReversalScopeFull,
			intent: ReversalIntentCancel,
			outcome: ReversalOutcome{
				OrderStatus:         OrderStatusFullCancel,
				ReversalType:        ReversalTypeCompleteFullCancel,
				OrderItemStatus:     OrderItemStatusCompleteCancel,
				PaymentStatus:       PaymentStatusCanceled,
				PaymentReversalType: PaymentReversalFullCancel,
			},
		},
		{
			name:   "partial cancel",
			scope:  ReversalScopePartial,
			intent: ReversalIntentCancel,
			outcome: ReversalOutcome{
				OrderStatus:         OrderStatusPartialCancel,
				ReversalType:        ReversalTypeCompletePartialCancel,
				OrderItemStatus:     OrderItemStatusCompleteCancel,
				PaymentStatus:       PaymentStatusPartialCanceled,
				PaymentReversalType: PaymentReversalPartialCancel,
			},
		},
		{
			name:   "full refund",
			scope:  ReversalScopeFull,
			intent: ReversalIntentRefund,
			outcome: ReversalOutcome{
				OrderStatus:         OrderStatusFullRefund,
				ReversalType:        ReversalTypeCompleteFullRefund,
				OrderItemStatus:     OrderItemStatusCompleteRefund,
				PaymentStatus:       PaymentStatusCanceled,
				PaymentReversalType: PaymentReversalFullRefund,
			},
		},
		{
			name:   "partial refund",
			scope:  ReversalScopePartial,
			intent: ReversalIntentRefund,
			outcome: ReversalOutcome{
				OrderStatus:         OrderStatusPartialRefund,
				ReversalType:        ReversalTypeCompletePartialRefund,
				OrderItemStatus:     OrderItemStatusCompleteRefund,
				PaymentStatus:       PaymentStatusPartialCanceled,
				PaymentReversalType: PaymentReversalPartialRefund,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := ReversalOutcomeFor(tt.scope, tt.intent)
			require.True(t, ok)
			assert.Equal(t, tt.outcome, outcome)
		})
	}

	t.Run("unknown combination", func(t *testing.T) {
		_, ok := ReversalOutcomeFor("HALF", ReversalIntentCancel)
		assert.False(t, ok)
	})
}

func TestOrderStatusCancelable(t *testing.T) {
	cancelable := []OrderStatus{
		OrderStatusInReturn,
		OrderStatusCompletePayment,
		OrderStatusBeforeDelivery,
		OrderStatusCompletedDelivery,
	}
	for _, status := range cancelable {
		assert.True(t, status.Cancelable(), "expected %s to be cancelable", status)
	}

	notCancelable := []OrderStatus{
		OrderStatusBeforePayment,
		OrderStatusInDelivery,
		OrderStatusReturn,
		OrderStatusFullCancel,
		OrderStatusPartialCancel,
		OrderStatusFullRefund,
		OrderStatusPartialRefund,
		OrderStatusConfirmed,
	}
	for _, status := range notCancelable {
		assert.False(t, status.Cancelable(), "expected %s to not be cancelable", status)
	}
}

func TestPaymentStatusTriggersStockDecrease(t *testing.T) {
	triggering := []PaymentStatus{
		PaymentStatusPaid,
		PaymentStatusVirtualAccountIssued,
		PaymentStatusReady,
		PaymentStatusPayPending,
	}
	for _, status := range triggering {
		assert.True(t, status.TriggersStockDecrease(), "expected %s to trigger stock decrease", status)
	}

	nonTriggering := []PaymentStatus{
		PaymentStatusFailed,
		PaymentStatusCanceled,
		PaymentStatusPartialCanceled,
		PaymentStatusForgery,
	}
	for _, status := range nonTriggering {
		assert.False(t, status.TriggersStockDecrease(), "expected %s to not trigger stock decrease", status)
	}
}
