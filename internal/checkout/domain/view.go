package domain

// Wire shapes returned to MCP clients. Field names follow the checkout
// session format the host renders, so they stay snake_case.

type PriceView struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type ItemView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Quantity    int64     `json:"quantity"`
	Description string    `json:"description"`
	Price       PriceView `json:"price"`
}

type LineItemView struct {
	ID          string   `json:"id"`
	Quantity    int64    `json:"quantity"`
	BaseAmount  int64    `json:"base_amount"`
	Subtotal    int64    `json:"subtotal"`
	TotalAmount int64    `json:"total_amount"`
	Total       int64    `json:"total"`
	Item        ItemView `json:"item"`
}

type PaymentProviderView struct {
	Provider                string   `json:"provider"`
	MerchantID              string   `json:"merchant_id"`
	SupportedPaymentMethods []string `json:"supported_payment_methods"`
}

type TotalView struct {
	Type        string `json:"type"`
	DisplayText string `json:"display_text"`
	Amount      int64  `json:"amount"`
}

type LinkView struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type SessionView struct {
	ID              string              `json:"id"`
	PaymentProvider PaymentProviderView `json:"payment_provider"`
	Status          string              `json:"status"`
	Currency        string              `json:"currency"`
	PaymentMode     string              `json:"payment_mode"`
	LineItems       []LineItemView      `json:"line_items"`
	Totals          []TotalView         `json:"totals"`
	Links           []LinkView          `json:"links"`
}

type OrderView struct {
	ID                string `json:"id"`
	CheckoutSessionID string `json:"checkout_session_id"`
	Status            string `json:"status"`
}

type CompletionErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CompletionView is the complete_checkout result. Status is "confirmed" when
// the payment authorized and "failed" otherwise, with Error carrying the
// machine code for failures.
type CompletionView struct {
	Status string               `json:"status"`
	Order  OrderView            `json:"order"`
	Error  *CompletionErrorView `json:"error,omitempty"`
}

func (v *CompletionView) Confirmed() bool {
	return v.Status == "confirmed"
}
