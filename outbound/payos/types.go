package payos

import "strings"

type ItemData struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type PaymentData struct {
	OrderCode   int64      `json:"orderCode"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description"`
	Items       []ItemData `json:"items"`
	CancelUrl   string     `json:"cancelUrl"`
	ReturnUrl   string     `json:"returnUrl"`
	Signature   string     `json:"signature,omitempty"`
}

type CreatePaymentResult struct {
	PaymentLinkId string `json:"paymentLinkId"`
	OrderCode     int64  `json:"orderCode"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	CheckoutUrl   string `json:"checkoutUrl"`
	QrCode        string `json:"qrCode"`
}

type PaymentLinkInformation struct {
	Id              string `json:"id"`
	OrderCode       int64  `json:"orderCode"`
	Amount          int64  `json:"amount"`
	AmountPaid      int64  `json:"amountPaid"`
	AmountRemaining int64  `json:"amountRemaining"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// Paid reports whether the provider considers the payment settled. The
// status string wins when present; amount reconciliation covers providers
// that settle without flipping the status.
func (info PaymentLinkInformation) Paid() bool {
	if strings.EqualFold(info.Status, "PAID") {
		return true
	}

	return info.AmountPaid >= info.Amount && info.Amount > 0
}
