package model

import "strings"

type CheckoutRequest struct {
	TicketIds []string `json:"ticket_ids" validate:"required,min=1,dive,required"`
	Amount    int64    `json:"amount" validate:"required,min=1"`
}

type CheckoutResponse struct {
	OrderCode   int64  `json:"order_code"`
	CheckoutUrl string `json:"checkout_url"`
}

type PaymentResultResponse struct {
	OrderCode    int64        `json:"order_code"`
	State        PaymentState `json:"state"`
	Status       string       `json:"status,omitempty"`
	Amount       int64        `json:"amount,omitempty"`
	AmountPaid   int64        `json:"amount_paid,omitempty"`
	TicketsCount int          `json:"tickets_count"`
	Message      string       `json:"message"`
}

// PaymentState is the explicit settlement state of one checkout batch,
// keyed by its payment order code.
type PaymentState string

const (
	PaymentStateInitiated      PaymentState = "INITIATED"
	PaymentStateAwaitingReturn PaymentState = "AWAITING_RETURN"
	PaymentStatePaid           PaymentState = "PAID"
	PaymentStateFailed         PaymentState = "FAILED"
	PaymentStateCancelled      PaymentState = "CANCELLED"
)

// DerivePaymentState computes the settlement state of a checkout batch from
// the tickets carrying its order code and the status string last reported by
// the payment gateway. Ticket rows are authoritative for PAID: once every
// ticket in the batch is marked paid the state is PAID regardless of what
// the gateway query returned.
func DerivePaymentState(ticketsInBatch int, allTicketsPaid bool, gatewayStatus string) PaymentState {
	if ticketsInBatch == 0 {
		return PaymentStateInitiated
	}

	if allTicketsPaid {
		return PaymentStatePaid
	}

	switch strings.ToUpper(gatewayStatus) {
	case "PAID":
		return PaymentStatePaid
	case "CANCELLED":
		return PaymentStateCancelled
	case "EXPIRED", "FAILED":
		return PaymentStateFailed
	default:
		return PaymentStateAwaitingReturn
	}
}
