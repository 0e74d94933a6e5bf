package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
)

//go:generate mockgen -source=payment.go -destination=mock_payment.go -package=consumer

const PaymentPaidKey = "payment.paid"

type Ledger interface {
	Credit(ctx context.Context, userID, amount int64, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error)
}

type PaymentPaid struct {
	PaymentID string `json:"payment_id" validate:"required"`
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	Tokens    int64  `json:"tokens" validate:"required,gt=0"`
}

// PaymentConsumer credits purchased tokens. The payment id is the ledger
// reference, so a redelivered message is acknowledged without a second credit.
type PaymentConsumer struct {
	ch       *amqp.Channel
	queue    string
	ledger   Ledger
	validate *validator.Validate
}

func NewPaymentConsumer(ch *amqp.Channel, exchange, queue string, ledger Ledger) (*PaymentConsumer, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(q.Name, PaymentPaidKey, exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind %s: %w", PaymentPaidKey, err)
	}
	if err := ch.Qos(8, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &PaymentConsumer{ch: ch, queue: q.Name, ledger: ledger, validate: validator.New()}, nil
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *PaymentConsumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	zap.L().Info("Payment consumer started", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping payment consumer")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("payment deliveries channel closed")
			}
			c.Handle(ctx, d)
		}
	}
}

func (c *PaymentConsumer) Handle(ctx context.Context, d amqp.Delivery) {
	var msg PaymentPaid
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		zap.L().Error("Malformed payment message", zap.String("message_id", d.MessageId), zap.Error(err))
		_ = d.Reject(false)
		return
	}
	if err := c.validate.Struct(msg); err != nil {
		zap.L().Error("Invalid payment message", zap.String("payment_id", msg.PaymentID), zap.Error(err))
		_ = d.Reject(false)
		return
	}

	ref := domain.Reference{Type: domain.RefPayment, ID: msg.PaymentID}
	_, err := c.ledger.Credit(ctx, msg.UserID, msg.Tokens, domain.TxPurchase, ref)
	switch {
	case err == nil:
		zap.L().Info("Tokens purchased", zap.Int64("user_id", msg.UserID), zap.Int64("tokens", msg.Tokens), zap.String("payment_id", msg.PaymentID))
		_ = d.Ack(false)
	case errors.Is(err, ledgerservice.ErrDuplicateReference):
		zap.L().Info("Payment already credited", zap.String("payment_id", msg.PaymentID))
		_ = d.Ack(false)
	default:
		zap.L().Error("Failed to credit payment", zap.String("payment_id", msg.PaymentID), zap.Int64("user_id", msg.UserID), zap.Error(err))
		_ = d.Nack(false, true)
	}
}
