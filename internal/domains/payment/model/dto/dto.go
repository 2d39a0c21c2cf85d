package dto

import "stay/internal/domains/payment/model"

// NotificationRequest is the gateway's HTTP notification body.
type NotificationRequest struct {
	OrderID           string `json:"order_id"           validate:"required"`
	StatusCode        string `json:"status_code"        validate:"required"`
	GrossAmount       string `json:"gross_amount"       validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"      validate:"required"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}

func (r *NotificationRequest) ToModel() model.Notification {
	return model.Notification{
		OrderID:           r.OrderID,
		StatusCode:        r.StatusCode,
		GrossAmount:       r.GrossAmount,
		TransactionStatus: r.TransactionStatus,
		FraudStatus:       r.FraudStatus,
		SignatureKey:      r.SignatureKey,
	}
}

type NotificationResponse struct {
	OrderID string `json:"order_id"`
	Applied bool   `json:"applied"`
	Status  string `json:"status,omitempty"`
}
