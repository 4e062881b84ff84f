package payment

type InitiateRequest struct {
	BookingID string  `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`

	// deposit holds are pre-authorized instead of charged
	PaymentType string `json:"payment_type" binding:"omitempty,oneof=deposit full partial"`
}

type InitiateResponse struct {
	OrderNumber string       `json:"order_number"`
	GatewayURL  string       `json:"gateway_url"`
	Form        *GatewayForm `json:"form"`
}

type NotificationRequest struct {
	SignatureVersion   string `form:"Ds_SignatureVersion"`
	MerchantParameters string `form:"Ds_MerchantParameters" binding:"required"`
	Signature          string `form:"Ds_Signature" binding:"required"`
}

type VerifyRequest struct {
	OrderNumber       string `json:"order_number" binding:"required"`
	ResponseCode      string `json:"response_code" binding:"required"`
	AuthorizationCode string `json:"authorization_code"`

	// MerchantParams and Signature are present when the browser return URL
	// carried the gateway's signed blob. FromSuccessPage marks the redirect
	// from the gateway's own success page, where a stale signature is logged
	// instead of rejected.
	MerchantParams  string `json:"merchant_params"`
	Signature       string `json:"signature"`
	FromSuccessPage bool   `json:"from_success_page"`
}

type VerifyResponse struct {
	OrderNumber    string  `json:"order_number"`
	PaymentStatus  string  `json:"payment_status"`
	BookingID      string  `json:"booking_id,omitempty"`
	BookingStatus  string  `json:"booking_status,omitempty"`
	AmountPaid     float64 `json:"amount_paid,omitempty"`
	RequiresAction string  `json:"requires_action,omitempty"`
	WinningBooking string  `json:"winning_booking_id,omitempty"`
}
