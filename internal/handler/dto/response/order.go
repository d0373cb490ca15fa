package response

import "github.com/google/uuid"

type OrderCreatedResponse struct {
	OrderID uuid.UUID `json:"order_id"`
}

type LineAddedResponse struct {
	LineID uuid.UUID `json:"line_id"`
}

type PaymentRecordedResponse struct {
	PaymentID      uuid.UUID `json:"payment_id"`
	RemainingCents int64     `json:"remaining_cents"`
}

type FinalizedResponse struct {
	ReceiptID  uuid.UUID `json:"receipt_id"`
	ReceiptSeq uint64    `json:"receipt_seq"`
}
