package domain

import "context"

type Outcome string

const (
	// OutcomeAuthorized means the gateway accepted the payment.
	OutcomeAuthorized Outcome = "authorized"
	// OutcomeDeclined means the gateway explicitly refused the payment.
	// Declines are terminal; nothing is retried.
	OutcomeDeclined Outcome = "declined"
)

// AuthorizationRequest describes a single payment authorization. Token is an
// opaque delegated payment token; raw card data never passes through this
// service.
type AuthorizationRequest struct {
	TransactionReference string
	Token                string
	Amount               int64
	Currency             string
	CustomerEmail        string
}

// AuthorizationResult is the interpreted gateway response. ErrorName and
// ErrorMessage are populated from the provider payload when the outcome is
// declined.
type AuthorizationResult struct {
	Outcome      Outcome
	ErrorName    string
	ErrorMessage string
}

// Authorizer performs exactly one authorization attempt per call. A non-nil
// error means the gateway could not be reached or answered garbage (transport
// or parse failure), distinct from an explicit decline, which is reported in
// the result.
type Authorizer interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error)
}
