package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/sjlee/order-api/internal/app/service"
	"github.com/sjlee/order-api/pkg/payment/portone"
	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int    // HTTP 상태 코드
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError는 서비스/저장소 에러를 HTTP 응답으로 옮길 정보로 변환합니다.
// 원문 에러 메시지는 식별자를 포함하므로 그대로 노출합니다.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "서버 오류가 발생했습니다",
		}
	}

	switch {
	// 회원
	case errors.Is(err, repository.ErrMemberNotFound):
		return info(http.StatusNotFound, MemberNotFound, err)
	case errors.Is(err, repository.ErrMemberNotVerified):
		return info(http.StatusForbidden, MemberNotVerified, err)

	// 검증
	case errors.Is(err, repository.ErrEmptyIDList):
		return info(http.StatusBadRequest, ValidationEmptyIDList, err)
	case errors.Is(err, service.ErrQuantityMissing):
		return info(http.StatusBadRequest, CartQuantityMissing, err)
	case errors.Is(err, service.ErrOptionProductMismatch):
		return info(http.StatusBadRequest, OptionProductMismatch, err)

	// 상품/옵션
	case errors.Is(err, repository.ErrProductNotFound):
		return info(http.StatusNotFound, ProductNotFound, err)
	case errors.Is(err, repository.ErrProductNotSelling),
		errors.Is(err, service.ErrNotSellingProduct):
		return info(http.StatusBadRequest, ProductNotSelling, err)
	case errors.Is(err, repository.ErrOptionDetailsNotFound),
		errors.Is(err, repository.ErrOptionItemNotFound):
		return info(http.StatusNotFound, OptionNotFound, err)

	// 장바구니
	case errors.Is(err, repository.ErrCartItemNotFound),
		errors.Is(err, repository.ErrCartItemsNotFound):
		return info(http.StatusNotFound, CartItemNotFound, err)
	case errors.Is(err, service.ErrCartNotFound):
		return info(http.StatusNotFound, CartNotFound, err)

	// 주문
	case errors.Is(err, repository.ErrOrderNotFound):
		return info(http.StatusNotFound, OrderNotFound, err)
	case errors.Is(err, repository.ErrOrderItemsNotFound):
		return info(http.StatusNotFound, OrderItemNotFound, err)
	case errors.Is(err, service.ErrShippingFeeMismatch):
		return info(http.StatusBadRequest, OrderShippingFeeWrong, err)
	case errors.Is(err, service.ErrOrderNotCompletedDelivery),
		errors.Is(err, service.ErrOrderNotReversible):
		return info(http.StatusConflict, OrderNotReversible, err)
	case errors.Is(err, service.ErrOrderItemNotSuccess),
		errors.Is(err, service.ErrItemAlreadyReversed):
		return info(http.StatusConflict, OrderItemStateConflict, err)
	case errors.Is(err, service.ErrNoRefundApply):
		return info(http.StatusConflict, OrderRefundNotApplied, err)

	// 결제
	case errors.Is(err, repository.ErrPaymentNotFound):
		return info(http.StatusNotFound, PaymentNotFound, err)
	case errors.Is(err, service.ErrPartialNeedsItemIDs):
		return info(http.StatusBadRequest, PaymentPartialNeedsIDs, err)
	case errors.Is(err, service.ErrCancellationNotSucceeded):
		return info(http.StatusConflict, PaymentCancelFailed, err)
	case errors.Is(err, portone.ErrPaymentNotFound):
		return info(http.StatusNotFound, PaymentNotFound, err)
	case errors.Is(err, portone.ErrInvalidRequest):
		return info(http.StatusBadRequest, PaymentGatewayError, err)
	case errors.Is(err, portone.ErrUnauthorized),
		errors.Is(err, portone.ErrPaymentFailed),
		errors.Is(err, portone.ErrNetworkError):
		return info(http.StatusBadGateway, PaymentGatewayError, err)

	// 배송
	case errors.Is(err, repository.ErrDeliveryNotFound),
		errors.Is(err, repository.ErrDefaultDeliveryNotFound),
		errors.Is(err, repository.ErrNotOwnDelivery):
		return info(http.StatusNotFound, DeliveryNotFound, err)
	case errors.Is(err, repository.ErrDeliveryMemoNotFound),
		errors.Is(err, repository.ErrRecentMemoNotFound),
		errors.Is(err, repository.ErrNotOwnDeliveryMemo):
		return info(http.StatusNotFound, DeliveryMemoNotFound, err)

	// GORM 기본 에러
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: "요청한 데이터를 찾을 수 없습니다",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	// PostgreSQL 제약 위반
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceAlreadyExists,
			Message: "이미 존재하는 데이터입니다",
		}
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceConflict,
			Message: "참조하는 데이터를 찾을 수 없거나 연결된 데이터가 있습니다",
		}
	}

	// 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusBadGateway,
			Code:    InternalExternalAPI,
			Message: "외부 서비스 연결에 실패했습니다. 잠시 후 다시 시도해주세요",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요",
	}
}

func info(status int, code string, err error) ErrorInfo {
	return ErrorInfo{Status: status, Code: code, Message: err.Error()}
}
