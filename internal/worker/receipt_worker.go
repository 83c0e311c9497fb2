package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotelier/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	maxSendAttempts  = 3
	sendRetryBackoff = 2 * time.Second
)

// ReceiptJobPayload is the job envelope pushed to QueueReceipts when a
// payment settles a booking's bill.
type ReceiptJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ReceiptWorker sends payment receipt emails. Every SMTP call goes through
// the circuit breaker so a downed relay fast-fails instead of blocking the
// pool, and exhausted jobs are parked in the DLQ.
type ReceiptWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewReceiptWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *ReceiptWorker {
	return &ReceiptWorker{mailer: mailer, cb: cb}
}

func (w *ReceiptWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("receipt_worker: empty to_email, skipping")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		lastErr = w.cb.Execute(func() error {
			return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body)
		})
		if lastErr == nil {
			log.Info().Str("to", payload.ToEmail).Msg("receipt_worker: receipt sent")
			return
		}
		if errors.Is(lastErr, infra.ErrCircuitOpen) {
			// Relay is known down; retrying within this job is pointless.
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(sendRetryBackoff * time.Duration(attempt)):
		}
	}

	log.Error().Err(lastErr).Str("to", payload.ToEmail).Msg("receipt_worker: giving up")
	SendToDLQ(ctx, rdb, QueueReceipts, "receipt", raw, lastErr.Error(), maxSendAttempts)
}
