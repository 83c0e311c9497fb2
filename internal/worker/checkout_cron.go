package worker

import (
	"context"
	"time"

	"hotelier/internal/model"
	"hotelier/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sweepBatchSize = 50

// CheckoutSweeper deactivates bookings whose stay window has passed without
// an explicit check-out, and flips their rooms to cleaning. It runs as a
// periodic background goroutine next to the worker pool.
type CheckoutSweeper struct {
	bookings repository.BookingRepository
	rooms    RoomStatusSetter
	interval time.Duration
}

// RoomStatusSetter is the slice of the room service the sweeper needs.
type RoomStatusSetter interface {
	SetStatus(ctx context.Context, id uuid.UUID, status, reason string, bookingID *uuid.UUID) error
}

func NewCheckoutSweeper(bookings repository.BookingRepository, rooms RoomStatusSetter, interval time.Duration) *CheckoutSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CheckoutSweeper{bookings: bookings, rooms: rooms, interval: interval}
}

// Start launches the sweep loop. It respects the context for graceful shutdown.
func (s *CheckoutSweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Info().Dur("interval", s.interval).Msg("checkout_sweep: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("checkout_sweep: shutting down")
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *CheckoutSweeper) sweep(ctx context.Context) {
	expired, err := s.bookings.ListExpiredActive(ctx, time.Now().UTC(), sweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("checkout_sweep: query failed")
		return
	}
	if len(expired) == 0 {
		return
	}

	log.Info().Int("count", len(expired)).Msg("checkout_sweep: closing expired bookings")

	for i := range expired {
		b := &expired[i]
		now := time.Now().UTC()
		b.IsActive = false
		b.CheckedOutAt = &now
		if err := s.bookings.Update(ctx, b); err != nil {
			log.Error().Err(err).Str("booking_id", b.ID.String()).Msg("checkout_sweep: deactivate failed")
			continue
		}
		if err := s.rooms.SetStatus(ctx, b.RoomID, model.RoomStatusCleaning, "stay window expired", &b.ID); err != nil {
			log.Error().Err(err).Str("room_id", b.RoomID.String()).Msg("checkout_sweep: room status failed")
		}
	}
}
