package services

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"

	"gompa/pkg/utils"
)

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type PaymentOrder struct {
	ID       string
	Amount   int64 // paise
	Currency string
	Receipt  string
	KeyID    string
}

// PaymentGateway creates payment orders the client completes in checkout.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (*PaymentOrder, error)
}

type razorpayGateway struct {
	client *razorpay.Client
	cfg    RazorpayConfig
	logger *zap.Logger
}

// NewRazorpayGateway returns a gateway that fails every order when the keys
// are missing.
func NewRazorpayGateway(cfg RazorpayConfig, logger *zap.Logger) PaymentGateway {
	g := &razorpayGateway{cfg: cfg, logger: logger.Named("razorpay")}
	if cfg.KeyID != "" && cfg.KeySecret != "" {
		g.client = razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	}
	return g
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (*PaymentOrder, error) {
	if g.client == nil {
		return nil, fmt.Errorf("%w: gateway not configured", utils.ErrPaymentGateway)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	noteData := make(map[string]interface{}, len(notes))
	for k, v := range notes {
		noteData[k] = v
	}
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
		"notes":    noteData,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Warn("order creation failed", zap.String("receipt", receipt), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrPaymentGateway, err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: order id missing", utils.ErrPaymentGateway)
	}
	return &PaymentOrder{
		ID:       id,
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
		KeyID:    g.cfg.KeyID,
	}, nil
}
