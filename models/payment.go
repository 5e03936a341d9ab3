package models

// ChargeRequest asks the payment gateway to open a charge for a booking.
type ChargeRequest struct {
	OrderID     string
	Amount      int64
	Currency    string
	PayerID     string
	PayerEmail  string
	Description string
	Metadata    map[string]string
}

// ChargeToken is the gateway's handle the client completes payment against.
type ChargeToken struct {
	OrderID string `json:"orderId"`
	Token   string `json:"token"`
}

// Gateway result statuses. Exactly one result arrives per charge.
const (
	GatewayStatusSuccess = "success"
	GatewayStatusPending = "pending"
	GatewayStatusError   = "error"
)

// GatewayResult is the asynchronous outcome reported by the payment gateway.
type GatewayResult struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
