package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // 로그인 필요
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED" // 토큰 만료
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // 잘못된 토큰

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // 접근 권한 없음

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationEmptyIDList  = "VALIDATION_EMPTY_ID_LIST" // 빈 ID 목록
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 회원 (MEMBER_) ====================
	MemberNotFound    = "MEMBER_NOT_FOUND"    // 회원 없음
	MemberNotVerified = "MEMBER_NOT_VERIFIED" // 미인증 회원

	// ==================== 상품 (PRODUCT_) ====================
	ProductNotFound       = "PRODUCT_NOT_FOUND"       // 상품 없음
	ProductNotSelling     = "PRODUCT_NOT_SELLING"     // 판매 중 아님
	OptionNotFound        = "OPTION_NOT_FOUND"        // 옵션 없음
	OptionProductMismatch = "OPTION_PRODUCT_MISMATCH" // 다른 상품의 옵션

	// ==================== 장바구니 (CART_) ====================
	CartNotFound        = "CART_NOT_FOUND"        // 장바구니 없음
	CartItemNotFound    = "CART_ITEM_NOT_FOUND"   // 장바구니 항목 없음
	CartQuantityMissing = "CART_QUANTITY_MISSING" // 수량/옵션 누락

	// ==================== 주문 (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"           // 주문 없음
	OrderItemNotFound      = "ORDER_ITEM_NOT_FOUND"      // 주문 항목 없음
	OrderShippingFeeWrong  = "ORDER_SHIPPING_FEE_WRONG"  // 배송비 불일치
	OrderNotReversible     = "ORDER_NOT_REVERSIBLE"      // 취소/환불 불가 상태
	OrderRefundNotApplied  = "ORDER_REFUND_NOT_APPLIED"  // 환불 신청 없음
	OrderItemStateConflict = "ORDER_ITEM_STATE_CONFLICT" // 항목 상태 충돌

	// ==================== 결제 (PAYMENT_) ====================
	PaymentNotFound        = "PAYMENT_NOT_FOUND"         // 결제 이력 없음
	PaymentGatewayError    = "PAYMENT_GATEWAY_ERROR"     // 게이트웨이 오류
	PaymentCancelFailed    = "PAYMENT_CANCEL_FAILED"     // 취소 미확정
	PaymentPartialNeedsIDs = "PAYMENT_PARTIAL_NEEDS_IDS" // 부분 취소 대상 누락

	// ==================== 배송 (DELIVERY_) ====================
	DeliveryNotFound     = "DELIVERY_NOT_FOUND"      // 배송지 없음
	DeliveryMemoNotFound = "DELIVERY_MEMO_NOT_FOUND" // 배송 메모 없음

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
)
