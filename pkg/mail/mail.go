package mail

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/yksanjo/email-warmup-service/pkg/config"
	"github.com/yksanjo/email-warmup-service/pkg/metrics"
)

// Message carries one warm-up delivery: the recipient plus the contextual
// metadata rendered into the body.
type Message struct {
	Recipient string
	Day       int
	SentAt    time.Time
}

// Sender attempts a single warm-up delivery. A failure is reported for
// logging and counting only; the controller never branches on the reason.
type Sender interface {
	Send(msg Message) error
	Host() string
}

type sender struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.SugaredLogger
}

// NewSender creates a gomail-backed sender from the SMTP configuration.
// The authenticated user doubles as the From address, matching the warm-up
// use case of building reputation for that identity.
func NewSender(cfg config.Mail, log *zap.SugaredLogger) Sender {
	log = log.Named("mail")
	log.Infow("Initializing mail sender",
		"host", cfg.Host,
		"port", cfg.Port,
		"user", cfg.User)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)

	// Unauthenticated relays leave User empty; fall back to a sender
	// address so the message still carries a From header.
	from := cfg.User
	if from == "" {
		from = "warmup@localhost"
	}

	return &sender{
		dialer: d,
		from:   from,
		log:    log,
	}
}

func (s *sender) Send(m Message) error {
	text, err := RenderText(BodyParams{SentAt: m.SentAt, Day: m.Day})
	if err != nil {
		return fmt.Errorf("failed to render text body: %w", err)
	}
	html, err := RenderHTML(BodyParams{SentAt: m.SentAt, Day: m.Day})
	if err != nil {
		return fmt.Errorf("failed to render html body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.Recipient)
	msg.SetHeader("Subject", fmt.Sprintf("Warm-up email %s", m.SentAt.Format("2006-01-02 15:04")))
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(msg); err != nil {
		metrics.MailSendFailure.WithLabelValues(s.Host()).Inc()
		return err
	}

	s.log.Debugw("Warm-up mail sent", "recipient", m.Recipient, "day", m.Day)
	metrics.MailSendSuccess.WithLabelValues(s.Host()).Inc()
	return nil
}

func (s *sender) Host() string {
	return s.dialer.Host
}
