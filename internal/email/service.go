package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"plumbdesk/internal/logger"
	"plumbdesk/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Type    string    `json:"type"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues outbound mail in Redis and delivers it through SendGrid's
// SMTP relay. Delivery is best-effort: callers never fail a booking or a
// payment because an email could not be sent.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Type:    "generic",
		Created: time.Now(),
	})
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", job.Subject, job.To)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
			metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "success")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// SendBookingConfirmation tells the customer their visit is in the diary.
func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, service, date, slot string) error {
	subject := "Booking Confirmed - " + service
	body := fmt.Sprintf(`Hi %s,

Your booking is confirmed!

Service: %s
Date: %s
Time: %s

If you need to change anything, just reply to this email.

- PlumbDesk`, name, service, date, slot)

	return s.enqueue(ctx, EmailJob{
		To: to, Name: name, Subject: subject, Body: body,
		Type: "booking_confirmation", Created: time.Now(),
	})
}

// SendBookingNotification alerts the office about a new booking request.
func (s *Service) SendBookingNotification(ctx context.Context, to, customerName, service, date, slot, address string) error {
	subject := "New Booking: " + service + " on " + date
	body := fmt.Sprintf(`New booking received.

Customer: %s
Service: %s
Date: %s
Time: %s
Address: %s`, customerName, service, date, slot, address)

	return s.enqueue(ctx, EmailJob{
		To: to, Name: "Office", Subject: subject, Body: body,
		Type: "booking_notification", Created: time.Now(),
	})
}

func (s *Service) SendBookingCancellation(ctx context.Context, to, name, service, date, slot string) error {
	subject := "Booking Cancelled - " + service
	body := fmt.Sprintf(`Hi %s,

Your booking has been cancelled:

Service: %s
Date: %s
Time: %s

- PlumbDesk`, name, service, date, slot)

	return s.enqueue(ctx, EmailJob{
		To: to, Name: name, Subject: subject, Body: body,
		Type: "booking_cancellation", Created: time.Now(),
	})
}

// SendPaymentLink delivers a hosted checkout link to the customer.
func (s *Service) SendPaymentLink(ctx context.Context, to, name, linkURL string, amount decimal.Decimal) error {
	subject := "Payment Request - PlumbDesk"
	body := fmt.Sprintf(`Hi %s,

Please use the secure link below to pay your outstanding balance of GBP %s:

%s

The link expires in 7 days.

- PlumbDesk`, name, amount.StringFixed(2), linkURL)

	return s.enqueue(ctx, EmailJob{
		To: to, Name: name, Subject: subject, Body: body,
		Type: "payment_link", Created: time.Now(),
	})
}
