package notifier

import (
	"context"
	"errors"
	"fmt"

	"IDXScreener/internal/model"
)

// ErrTransmission wraps every failure to hand a message to its transport.
var ErrTransmission = errors.New("transmission failure")

// Notifier delivers a message over one channel. Each Send is a single attempt.
type Notifier interface {
	Send(ctx context.Context, msg model.Message) error
	Name() string
}

// Delivery is the user-facing result of a send.
type Delivery struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Deliver sends msg once and reports the outcome without returning an error.
func Deliver(ctx context.Context, n Notifier, msg model.Message) Delivery {
	if err := n.Send(ctx, msg); err != nil {
		return Delivery{Message: fmt.Sprintf("Failed to send %s: %v", n.Name(), err)}
	}
	if msg.To != "" {
		return Delivery{OK: true, Message: fmt.Sprintf("Sent to %s", msg.To)}
	}
	return Delivery{OK: true, Message: fmt.Sprintf("Sent via %s", n.Name())}
}

func transmissionErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransmission, err)
}
