package jobs

import (
	"context"
	"time"

	"camperrent/internal/domain"

	"github.com/robfig/cron/v3"
)

type expiringBookings interface {
	ListExpiredPending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
	CancelWithNote(ctx context.Context, id, note string, at time.Time) error
}

// ExpiryJob cancels pending bookings nobody ever paid for, so stale
// checkouts stop cluttering the back office. Pending bookings never block
// availability, this is purely hygiene.
type ExpiryJob struct {
	bookings expiringBookings
	ttl      time.Duration
	loggerf  func(format string, args ...interface{})

	cron *cron.Cron
}

func NewExpiryJob(bookings expiringBookings, ttl time.Duration, loggerf func(format string, args ...interface{})) *ExpiryJob {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &ExpiryJob{
		bookings: bookings,
		ttl:      ttl,
		loggerf:  loggerf,
	}
}

// Start schedules the sweep every hour. Call Stop on shutdown.
func (j *ExpiryJob) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return err
	}
	j.cron.Start()
	j.loggerf("level=info msg=pending booking expiry job scheduled ttl=%s", j.ttl)
	return nil
}

func (j *ExpiryJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// Run performs one sweep. Exposed so tests and operators can trigger it
// directly.
func (j *ExpiryJob) Run(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-j.ttl)

	expired, err := j.bookings.ListExpiredPending(ctx, cutoff)
	if err != nil {
		j.loggerf("level=error msg=expiry sweep failed err=%v", err)
		return
	}

	for _, b := range expired {
		note := "Auto-cancelled: no payment received within the reservation window."
		if err := j.bookings.CancelWithNote(ctx, b.ID, note, time.Now().UTC()); err != nil {
			j.loggerf("level=error msg=expiry cancel failed booking_id=%s err=%v", b.ID, err)
			continue
		}
		j.loggerf("level=info msg=pending booking expired booking_number=%s created_at=%s", b.BookingNumber, b.CreatedAt.Format(time.RFC3339))
	}
}
