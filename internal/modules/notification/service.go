package notification

import (
	"context"
	"fmt"
	"time"

	"camperrent/internal/domain"
)

// Service turns booking and payment events into customer emails and
// operator alerts. A nil email client disables mail without disabling the
// alert stream.
type Service struct {
	email   *EmailClient
	hub     *AlertHub
	loggerf func(format string, args ...interface{})
}

func NewService(email *EmailClient, hub *AlertHub, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{email: email, hub: hub, loggerf: loggerf}
}

func (s *Service) BookingCreated(ctx context.Context, b *domain.Booking) error {
	subject := fmt.Sprintf("Booking request %s received", b.BookingNumber)
	body := fmt.Sprintf(`
		<h2>We have your booking request</h2>
		<p>Hi %s,</p>
		<p>Your booking <strong>%s</strong> is registered for %s to %s
		(%d days, %.2f EUR total). It will be confirmed as soon as your
		payment goes through.</p>`,
		b.CustomerName, b.BookingNumber,
		b.PickupDate.Format("2 Jan 2006"), b.DropoffDate.Format("2 Jan 2006"),
		b.Days, b.TotalPrice)
	return s.send(ctx, b.CustomerEmail, b.CustomerName, subject, body)
}

// PaymentReceived picks the first-payment or the balance-settled template
// by whether this payment opened the booking.
func (s *Service) PaymentReceived(ctx context.Context, b *domain.Booking, p *domain.Payment, firstPayment bool) error {
	var subject, body string
	if firstPayment {
		subject = fmt.Sprintf("Booking %s confirmed", b.BookingNumber)
		body = fmt.Sprintf(`
			<h2>Your booking is confirmed</h2>
			<p>Hi %s,</p>
			<p>We received %.2f EUR for booking <strong>%s</strong>.
			Paid so far: %.2f of %.2f EUR.</p>
			<p>Pickup: %s. See you there!</p>`,
			b.CustomerName, p.Amount, b.BookingNumber,
			b.AmountPaid, b.TotalPrice,
			b.PickupDate.Format("2 Jan 2006"))
	} else {
		subject = fmt.Sprintf("Payment received for booking %s", b.BookingNumber)
		body = fmt.Sprintf(`
			<h2>Payment received</h2>
			<p>Hi %s,</p>
			<p>We received another %.2f EUR for booking <strong>%s</strong>.
			Paid so far: %.2f of %.2f EUR.</p>`,
			b.CustomerName, p.Amount, b.BookingNumber,
			b.AmountPaid, b.TotalPrice)
	}
	return s.send(ctx, b.CustomerEmail, b.CustomerName, subject, body)
}

// PaymentConflict alerts the back office that money arrived for dates that
// are already taken. The customer is deliberately not mailed; an operator
// decides between refund and reassignment first.
func (s *Service) PaymentConflict(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	delivered := 0
	if s.hub != nil {
		delivered = s.hub.Broadcast(Alert{
			Type:    "payment_conflict",
			Message: fmt.Sprintf("Payment %s for booking %s needs refund or reassignment", p.OrderNumber, b.BookingNumber),
			Data: map[string]interface{}{
				"booking_id":     b.ID,
				"booking_number": b.BookingNumber,
				"order_number":   p.OrderNumber,
				"amount":         p.Amount,
				"vehicle_id":     b.VehicleID,
			},
			CreatedAt: time.Now().UTC(),
		})
	}
	s.loggerf("level=warn msg=payment conflict alert broadcast order_number=%s sessions=%d", p.OrderNumber, delivered)
	return nil
}

func (s *Service) send(ctx context.Context, toEmail, toName, subject, body string) error {
	if s.email == nil {
		s.loggerf("level=info msg=email disabled, skipping subject=%q to=%s", subject, toEmail)
		return nil
	}
	return s.email.Send(ctx, toEmail, toName, subject, body)
}
