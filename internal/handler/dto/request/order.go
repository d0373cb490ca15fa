package request

import (
	"tillpoint/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	CustomerID          *uuid.UUID `json:"customer_id"`
	TaxRuleName         string     `json:"tax_rule_name" binding:"required"`
	TaxRatePercent      float64    `json:"tax_rate_percent" binding:"min=0,max=100"`
	DiscountPercent     *float64   `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	DiscountAmountCents *int64     `json:"discount_amount_cents" binding:"omitempty,min=0"`
	DiscountPreTax      *bool      `json:"discount_pre_tax"`
}

func (r *CreateOrderRequest) ToInput() commands.CreateDraftInput {
	preTax := true
	if r.DiscountPreTax != nil {
		preTax = *r.DiscountPreTax
	}
	return commands.CreateDraftInput{
		CustomerID:          r.CustomerID,
		TaxRuleName:         r.TaxRuleName,
		TaxRatePercent:      r.TaxRatePercent,
		DiscountPercent:     r.DiscountPercent,
		DiscountAmountCents: r.DiscountAmountCents,
		DiscountPreTax:      preTax,
	}
}

type AddLineRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type UpdateLineRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type RecordPaymentRequest struct {
	Method      string  `json:"method" binding:"required,oneof=cash card store_credit"`
	AmountCents int64   `json:"amount_cents" binding:"required,min=1"`
	AuthRef     *string `json:"auth_ref"`
}
