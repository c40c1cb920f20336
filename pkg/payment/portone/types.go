package portone

// Requester identifies who asked for a cancellation
type Requester string

const (
	RequesterAdmin Requester = "ADMIN"
	RequesterUser  Requester = "USER"
)

// Cancellation statuses returned by the gateway
const (
	CancellationFailed    = "FAILED"
	CancellationRequested = "REQUESTED"
	CancellationSucceeded = "SUCCEEDED"
)

// PaymentAmount is the amount breakdown of a gateway payment
type PaymentAmount struct {
	Total            int64 `json:"total"`
	TaxFree          int64 `json:"taxFree"`
	VAT              int64 `json:"vat"`
	Supply           int64 `json:"supply"`
	Discount         int64 `json:"discount"`
	Paid             int64 `json:"paid"`
	Cancelled        int64 `json:"cancelled"`
	CancelledTaxFree int64 `json:"cancelledTaxFree"`
}

// Payment is the gateway view of a payment, fetched for reconciliation
type Payment struct {
	Status        string        `json:"status"`
	ID            string        `json:"id"`
	TransactionID string        `json:"transactionId"`
	RequestedAt   string        `json:"requestedAt"`
	UpdatedAt     string        `json:"updatedAt"`
	OrderName     string        `json:"orderName"`
	Amount        PaymentAmount `json:"amount"`
}

// Cancellation is one cancel/refund executed at the gateway
type Cancellation struct {
	Status        string `json:"status"`
	ID            string `json:"id"`
	TotalAmount   int64  `json:"totalAmount"`
	TaxFreeAmount int64  `json:"taxFreeAmount"`
	VATAmount     int64  `json:"vatAmount"`
	Reason        string `json:"reason"`
	RequestedAt   string `json:"requestedAt"`
	CancelledAt   string `json:"cancelledAt,omitempty"`
}

// CancelRequest is the body of a cancel call. StoreID is filled in by the client.
type CancelRequest struct {
	StoreID       string    `json:"storeId,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	TaxFreeAmount int64     `json:"taxFreeAmount,omitempty"`
	VATAmount     int64     `json:"vatAmount,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Requester     Requester `json:"requester"`
}

// CancelResponse wraps the cancellation echoed back by the gateway
type CancelResponse struct {
	Cancellation Cancellation `json:"cancellation"`
}

// ErrorResponse is the gateway error body
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
