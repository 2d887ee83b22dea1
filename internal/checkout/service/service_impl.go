package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	cartdomain "github.com/railzwaylabs/swagshop/internal/cart/domain"
	catalogdomain "github.com/railzwaylabs/swagshop/internal/catalog/domain"
	"github.com/railzwaylabs/swagshop/internal/checkout/domain"
	"github.com/railzwaylabs/swagshop/internal/config"
	paymentdomain "github.com/railzwaylabs/swagshop/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParams struct {
	fx.In

	Catalog catalogdomain.Service
	Carts   cartdomain.Store
	Gateway paymentdomain.Authorizer
	Repo    domain.Repository
	GenID   *snowflake.Node
	Config  config.Config
	Logger  *zap.Logger
}

type ServiceImpl struct {
	catalog catalogdomain.Service
	carts   cartdomain.Store
	gateway paymentdomain.Authorizer
	repo    domain.Repository
	genID   *snowflake.Node
	cfg     config.Config
	logger  *zap.Logger
}

func New(p ServiceParams) domain.Service {
	return &ServiceImpl{
		catalog: p.Catalog,
		carts:   p.Carts,
		gateway: p.Gateway,
		repo:    p.Repo,
		genID:   p.GenID,
		cfg:     p.Config,
		logger:  p.Logger.Named("checkout.service"),
	}
}

func (s *ServiceImpl) CreateSession(ctx context.Context, mcpSessionID string, explicit cartdomain.Cart) (*domain.SessionView, error) {
	cart := explicit
	switch {
	case s.cfg.Shop.DemoBundle:
		cart = cartdomain.Cart{"tshirt": 1, "cup": 1}
	case cart == nil:
		var err error
		cart, err = s.carts.Get(ctx, mcpSessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
	}

	// Stable line item order regardless of map iteration.
	productIDs := make([]string, 0, len(cart))
	for id := range cart {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	currency := s.cfg.Merchant.Currency
	lineItems := make([]domain.LineItemView, 0, len(productIDs))
	var totalAmount int64
	for idx, productID := range productIDs {
		quantity := cart[productID]
		if quantity <= 0 {
			continue
		}
		product, err := s.catalog.Find(productID)
		if err != nil {
			s.logger.Warn("skipping unknown product in cart",
				zap.String("mcp_session_id", mcpSessionID),
				zap.String("product_id", productID))
			continue
		}
		lineTotal := product.UnitAmount * quantity
		totalAmount += lineTotal
		lineItems = append(lineItems, domain.LineItemView{
			ID:          fmt.Sprintf("li_%d_%d", idx, time.Now().UnixMilli()),
			Quantity:    quantity,
			BaseAmount:  lineTotal,
			Subtotal:    lineTotal,
			TotalAmount: lineTotal,
			Total:       lineTotal,
			Item: domain.ItemView{
				ID:          product.ID,
				Name:        product.Name,
				Quantity:    quantity,
				Description: product.Name,
				Price: domain.PriceView{
					Amount:   product.UnitAmount,
					Currency: currency,
				},
			},
		})
	}

	if len(lineItems) == 0 || totalAmount == 0 {
		return nil, domain.ErrEmptyCart
	}

	itemsJSON, err := json.Marshal(lineItems)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line items: %w", err)
	}

	session := &domain.CheckoutSession{
		ID:           "sess_" + uuid.NewString(),
		MCPSessionID: mcpSessionID,
		Status:       domain.SessionStatusReadyForPayment,
		Currency:     currency,
		LineItems:    itemsJSON,
		AmountTotal:  totalAmount,
	}
	if err := s.repo.InsertSession(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("failed to persist checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("checkout_session_id", session.ID),
		zap.String("mcp_session_id", mcpSessionID),
		zap.Int64("amount_total", totalAmount))

	return s.sessionView(session, lineItems), nil
}

func (s *ServiceImpl) Complete(ctx context.Context, mcpSessionID string, in domain.CompleteInput) (*domain.CompletionView, error) {
	session, err := s.repo.FindSessionByID(ctx, nil, in.CheckoutSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	if session.Status == domain.SessionStatusCompleted && session.OrderID != "" {
		order, err := s.repo.FindOrderByID(ctx, nil, session.OrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to load order: %w", err)
		}
		if order != nil {
			return confirmedView(order), nil
		}
	}

	// The authorization must run to completion even if the caller drops the
	// connection mid-call; otherwise money could move with no record here.
	result, err := s.gateway.Authorize(context.WithoutCancel(ctx), paymentdomain.AuthorizationRequest{
		TransactionReference: session.ID,
		Token:                in.PaymentToken,
		Amount:               session.AmountTotal,
		Currency:             session.Currency,
		CustomerEmail:        in.BuyerEmail,
	})
	if err != nil {
		s.logger.Error("payment gateway failure",
			zap.String("checkout_session_id", session.ID),
			zap.Error(err))
		return s.recordFailure(ctx, session, domain.ErrorCodeGateway, "payment gateway unavailable")
	}
	if result.Outcome != paymentdomain.OutcomeAuthorized {
		message := result.ErrorMessage
		if message == "" {
			message = "payment declined"
		}
		return s.recordFailure(ctx, session, domain.ErrorCodeDeclined, message)
	}

	order := &domain.Order{
		ID:                "order_" + s.genID.Generate().String(),
		CheckoutSessionID: session.ID,
		Status:            domain.OrderStatusCompleted,
	}
	if err := s.repo.InsertOrder(ctx, nil, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	session.Status = domain.SessionStatusCompleted
	session.OrderID = order.ID
	if err := s.repo.UpdateSession(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("failed to update checkout session: %w", err)
	}

	cartSessionID := session.MCPSessionID
	if cartSessionID == "" {
		cartSessionID = mcpSessionID
	}
	if err := s.carts.Reset(ctx, cartSessionID); err != nil {
		// Payment already went through; an uncleared cart is recoverable.
		s.logger.Warn("failed to clear cart after completion",
			zap.String("mcp_session_id", cartSessionID),
			zap.Error(err))
	}

	s.logger.Info("checkout completed",
		zap.String("checkout_session_id", session.ID),
		zap.String("order_id", order.ID))

	return confirmedView(order), nil
}

// recordFailure persists a failed order for the attempt and leaves the
// session ready for another try. The cart is never touched on failure.
func (s *ServiceImpl) recordFailure(ctx context.Context, session *domain.CheckoutSession, code, message string) (*domain.CompletionView, error) {
	order := &domain.Order{
		ID:                "order_" + s.genID.Generate().String(),
		CheckoutSessionID: session.ID,
		Status:            domain.OrderStatusFailed,
		ErrorCode:         code,
		ErrorMessage:      message,
	}
	if err := s.repo.InsertOrder(ctx, nil, order); err != nil {
		s.logger.Error("failed to persist failed order",
			zap.String("checkout_session_id", session.ID),
			zap.Error(err))
	}
	return &domain.CompletionView{
		Status: "failed",
		Order: domain.OrderView{
			ID:                order.ID,
			CheckoutSessionID: session.ID,
			Status:            domain.OrderStatusFailed,
		},
		Error: &domain.CompletionErrorView{
			Code:    code,
			Message: message,
		},
	}, nil
}

func (s *ServiceImpl) sessionView(session *domain.CheckoutSession, lineItems []domain.LineItemView) *domain.SessionView {
	return &domain.SessionView{
		ID: session.ID,
		PaymentProvider: domain.PaymentProviderView{
			Provider:                "worldpay",
			MerchantID:              s.cfg.Merchant.ID,
			SupportedPaymentMethods: []string{"card"},
		},
		Status:      session.Status,
		Currency:    session.Currency,
		PaymentMode: "test",
		LineItems:   lineItems,
		Totals: []domain.TotalView{
			{Type: "total", DisplayText: "Total", Amount: session.AmountTotal},
		},
		Links: []domain.LinkView{
			{Type: "terms_of_use", URL: s.cfg.Merchant.TermsURL},
			{Type: "privacy_policy", URL: s.cfg.Merchant.PrivacyURL},
		},
	}
}

func confirmedView(order *domain.Order) *domain.CompletionView {
	return &domain.CompletionView{
		Status: "confirmed",
		Order: domain.OrderView{
			ID:                order.ID,
			CheckoutSessionID: order.CheckoutSessionID,
			Status:            domain.OrderStatusCompleted,
		},
	}
}
