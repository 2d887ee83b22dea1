package worldpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/railzwaylabs/swagshop/internal/config"
	"github.com/railzwaylabs/swagshop/internal/payment/domain"
	"go.uber.org/zap"
)

const paymentsPath = "/api/payments"

const defaultTimeout = 10 * time.Second

type Adapter struct {
	baseURL  string
	username string
	password string
	entity   string
	client   *http.Client
	log      *zap.Logger
	attempts *prometheus.CounterVec
}

func New(cfg config.Config, log *zap.Logger, reg *prometheus.Registry) domain.Authorizer {
	timeout := cfg.Worldpay.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swagshop_gateway_authorizations_total",
		Help: "Payment authorization attempts by interpreted outcome.",
	}, []string{"outcome"})
	reg.MustRegister(attempts)

	return &Adapter{
		baseURL:  strings.TrimRight(cfg.Worldpay.BaseURL, "/"),
		username: cfg.Worldpay.Username,
		password: cfg.Worldpay.Password,
		entity:   cfg.Merchant.Entity,
		client:   &http.Client{Timeout: timeout},
		log:      log.Named("payment.worldpay"),
		attempts: attempts,
	}
}

type authorizationRequest struct {
	TransactionReference string      `json:"transactionReference"`
	Merchant             merchant    `json:"merchant"`
	Instruction          instruction `json:"instruction"`
	Customer             *customer   `json:"customer,omitempty"`
}

type merchant struct {
	Entity string `json:"entity"`
}

type instruction struct {
	Narrative         narrative         `json:"narrative"`
	Value             value             `json:"value"`
	PaymentInstrument paymentInstrument `json:"paymentInstrument"`
}

type narrative struct {
	Line1 string `json:"line1"`
}

type value struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type paymentInstrument struct {
	Type      string `json:"type"`
	TokenHref string `json:"tokenHref"`
}

type customer struct {
	Email string `json:"email"`
}

type authorizationResponse struct {
	Outcome            string `json:"outcome"`
	ErrorName          string `json:"errorName"`
	Message            string `json:"message"`
	RefusalCode        string `json:"refusalCode"`
	RefusalDescription string `json:"refusalDescription"`
}

// Authorize sends exactly one authorization request. No retries and no
// idempotency key: a duplicate call for the same transaction reference is a
// second authorization attempt at the gateway.
func (a *Adapter) Authorize(ctx context.Context, req domain.AuthorizationRequest) (*domain.AuthorizationResult, error) {
	payload := authorizationRequest{
		TransactionReference: req.TransactionReference,
		Merchant:             merchant{Entity: a.entity},
		Instruction: instruction{
			Narrative: narrative{Line1: "Swag Shop"},
			Value:     value{Currency: req.Currency, Amount: req.Amount},
			PaymentInstrument: paymentInstrument{
				Type:      "checkout/token",
				TokenHref: req.Token,
			},
		},
	}
	if req.CustomerEmail != "" {
		payload.Customer = &customer{Email: req.CustomerEmail}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		a.attempts.WithLabelValues("gateway_error").Inc()
		return nil, fmt.Errorf("failed to marshal authorization request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+paymentsPath, bytes.NewReader(body))
	if err != nil {
		a.attempts.WithLabelValues("gateway_error").Inc()
		return nil, fmt.Errorf("failed to build authorization request: %w", err)
	}
	httpReq.SetBasicAuth(a.username, a.password)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	a.log.Info("authorization request",
		zap.String("transaction_reference", req.TransactionReference),
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency))

	resp, err := a.client.Do(httpReq)
	if err != nil {
		a.attempts.WithLabelValues("gateway_error").Inc()
		return nil, fmt.Errorf("authorization request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		a.attempts.WithLabelValues("gateway_error").Inc()
		return nil, fmt.Errorf("failed to read authorization response: %w", err)
	}

	var parsed authorizationResponse
	parseErr := json.Unmarshal(respBody, &parsed)

	a.log.Info("authorization response",
		zap.String("transaction_reference", req.TransactionReference),
		zap.Int("status", resp.StatusCode),
		zap.String("outcome", parsed.Outcome),
		zap.Duration("duration", time.Since(start)))

	// A non-2xx status is an explicit refusal from the gateway, parseable or
	// not. Only a garbled 2xx body counts as a gateway failure.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.attempts.WithLabelValues("declined").Inc()
		return declined(parsed, fmt.Sprintf("gateway returned %d", resp.StatusCode)), nil
	}

	if parseErr != nil {
		a.attempts.WithLabelValues("gateway_error").Inc()
		return nil, fmt.Errorf("failed to parse authorization response: %w", parseErr)
	}

	if parsed.Outcome != string(domain.OutcomeAuthorized) {
		a.attempts.WithLabelValues("declined").Inc()
		return declined(parsed, fmt.Sprintf("payment not authorized: %s", parsed.Outcome)), nil
	}

	a.attempts.WithLabelValues("authorized").Inc()
	return &domain.AuthorizationResult{Outcome: domain.OutcomeAuthorized}, nil
}

func declined(parsed authorizationResponse, fallback string) *domain.AuthorizationResult {
	result := &domain.AuthorizationResult{
		Outcome:      domain.OutcomeDeclined,
		ErrorName:    parsed.ErrorName,
		ErrorMessage: parsed.Message,
	}
	if result.ErrorName == "" {
		result.ErrorName = parsed.RefusalCode
	}
	if result.ErrorMessage == "" {
		result.ErrorMessage = parsed.RefusalDescription
	}
	if result.ErrorMessage == "" {
		result.ErrorMessage = fallback
	}
	return result
}
