package dto

// CreatePayinRequest is the request body for pay-in order creation.
type CreatePayinRequest struct {
	Channel     string  `json:"channel" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	OrderID     string  `json:"order_id" binding:"max=64"` // optional; generated when empty
	CallbackURL string  `json:"callback_url" binding:"omitempty,url"`
	SkipURL     string  `json:"skip_url" binding:"omitempty,url"`
	Param       string  `json:"param" binding:"max=512"`
}

// PayinResponse is the response body for a created pay-in order.
type PayinResponse struct {
	OrderID    string            `json:"order_id"`
	ID         string            `json:"id"`
	Amount     float64           `json:"amount"`
	Fee        float64           `json:"fee"`
	PaymentURL string            `json:"payment_url,omitempty"`
	DeepLinks  map[string]string `json:"deep_links,omitempty"`
}

// OrderStatusResponse is the response body for order status queries.
type OrderStatusResponse struct {
	OrderID   string  `json:"order_id"`
	ID        string  `json:"id"`
	Channel   string  `json:"channel"`
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	NetAmount float64 `json:"net_amount"`
	Status    string  `json:"status"`
	Reference string  `json:"reference,omitempty"`
	CreatedAt string  `json:"created_at"`
	SettledAt *string `json:"settled_at,omitempty"`
}

// CreatePayoutRequest is the request body for payout creation.
type CreatePayoutRequest struct {
	Channel       string  `json:"channel" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	OrderID       string  `json:"order_id" binding:"max=64"`
	AccountNumber string  `json:"account_number"`
	AccountName   string  `json:"account_name"`
	IFSC          string  `json:"ifsc"`
	Wallet        string  `json:"wallet"` // UPI / wallet address; alternative to account details
}

// PayoutResponse is the response body for a created payout order.
type PayoutResponse struct {
	OrderID         string  `json:"order_id"`
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	Fee             float64 `json:"fee"`
	TotalDeduction  float64 `json:"total_deduction"`
	Status          string  `json:"status"`
	HoldForApproval bool    `json:"hold_for_approval"`
}

// SubmitUTRRequest is the request body for the manual settlement path.
type SubmitUTRRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	UTR     string `json:"utr" binding:"required"`
}

// AdminCreatePayoutRequest is the back-office manual payout entry. These
// orders are always held for approval.
type AdminCreatePayoutRequest struct {
	MerchantID    string  `json:"merchant_id" binding:"required"`
	Channel       string  `json:"channel" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	OrderID       string  `json:"order_id" binding:"max=64"`
	AccountNumber string  `json:"account_number"`
	AccountName   string  `json:"account_name"`
	IFSC          string  `json:"ifsc"`
	Wallet        string  `json:"wallet"`
}

// AdminPayoutDecisionRequest is the request body for payout approval or
// rejection. Reference is required on approval, Reason on rejection.
type AdminPayoutDecisionRequest struct {
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}
