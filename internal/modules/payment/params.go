package payment

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"camperrent/internal/config"
	"camperrent/internal/domain"
)

const (
	// Purchase and pre-authorization; the deposit hold uses the latter.
	TransactionPurchase = "0"
	TransactionPreAuth  = "1"

	consumerLanguageES = "001"

	maxProductDescription = 125
)

// GatewayForm is what the browser posts to the gateway to start a payment.
type GatewayForm struct {
	SignatureVersion   string `json:"Ds_SignatureVersion"`
	MerchantParameters string `json:"Ds_MerchantParameters"`
	Signature          string `json:"Ds_Signature"`
}

// NotificationParams is the decoded Ds_MerchantParameters of a gateway
// callback. Only the fields reconciliation needs are kept.
type NotificationParams struct {
	Amount            string `json:"Ds_Amount"`
	Currency          string `json:"Ds_Currency"`
	Order             string `json:"Ds_Order"`
	Response          string `json:"Ds_Response"`
	AuthorisationCode string `json:"Ds_AuthorisationCode"`
	Date              string `json:"Ds_Date"`
	Hour              string `json:"Ds_Hour"`
}

// NewOrderNumber builds the gateway order id, YYMMDDHHMMSS plus
// centiseconds cut to the gateway's 12-character limit.
func NewOrderNumber(now time.Time) string {
	s := now.Format("060102150405") + fmt.Sprintf("%02d", now.Nanosecond()/1e7)
	return s[:12]
}

// BuildGatewayForm encodes the merchant parameters and signs them.
func BuildGatewayForm(signer *Signer, cfg config.RedsysConfig, orderNumber string, amount float64, description, customerEmail, transactionType string) (*GatewayForm, error) {
	if transactionType == "" {
		transactionType = TransactionPurchase
	}
	if len(description) > maxProductDescription {
		description = description[:maxProductDescription]
	}

	params := map[string]string{
		"DS_MERCHANT_AMOUNT":             strconv.FormatInt(toMinorUnits(amount), 10),
		"DS_MERCHANT_ORDER":              orderNumber,
		"DS_MERCHANT_MERCHANTCODE":       cfg.MerchantCode,
		"DS_MERCHANT_CURRENCY":           cfg.Currency,
		"DS_MERCHANT_TRANSACTIONTYPE":    transactionType,
		"DS_MERCHANT_TERMINAL":           cfg.Terminal,
		"DS_MERCHANT_MERCHANTURL":        cfg.NotificationURL,
		"DS_MERCHANT_URLOK":              cfg.URLOk,
		"DS_MERCHANT_URLKO":              cfg.URLKo,
		"DS_MERCHANT_PRODUCTDESCRIPTION": description,
		"DS_MERCHANT_CONSUMERLANGUAGE":   consumerLanguageES,
	}
	if customerEmail != "" {
		params["DS_MERCHANT_TITULAR"] = customerEmail
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	paramsB64 := base64.StdEncoding.EncodeToString(raw)

	signature, err := signer.Sign(orderNumber, paramsB64)
	if err != nil {
		return nil, err
	}

	return &GatewayForm{
		SignatureVersion:   SignatureVersion,
		MerchantParameters: paramsB64,
		Signature:          signature,
	}, nil
}

// DecodeMerchantParams tolerates both standard and URL-safe base64, padded
// or not, since notification POSTs arrive URL-safe.
func DecodeMerchantParams(merchantParamsB64 string) (*NotificationParams, error) {
	normalized := strings.ReplaceAll(merchantParamsB64, "-", "+")
	normalized = strings.ReplaceAll(normalized, "_", "/")
	if pad := len(normalized) % 4; pad != 0 {
		normalized += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid merchant parameters encoding: %w", err)
	}
	var p NotificationParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid merchant parameters payload: %w", err)
	}
	return &p, nil
}

// AmountFromMinorUnits converts the gateway's cent string back to euros.
func AmountFromMinorUnits(s string) (float64, error) {
	cents, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return float64(cents) / 100, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// IsSuccessResponse reports whether the gateway authorized the transaction.
// Codes 0 to 99 are authorizations.
func IsSuccessResponse(responseCode string) bool {
	code, err := strconv.Atoi(responseCode)
	if err != nil {
		return false
	}
	return code >= 0 && code <= 99
}

// StatusFromResponseCode maps the gateway verdict onto a payment status:
// 0..99 authorized, 900 cancelled, anything else (or unparseable) failed.
func StatusFromResponseCode(responseCode string) domain.PaymentStatus {
	code, err := strconv.Atoi(responseCode)
	switch {
	case err != nil:
		return domain.PaymentFailed
	case code >= 0 && code <= 99:
		return domain.PaymentCompleted
	case code == 900:
		return domain.PaymentCancelled
	default:
		return domain.PaymentFailed
	}
}
