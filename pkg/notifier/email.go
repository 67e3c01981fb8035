package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/metrics"

	"go.uber.org/zap"
)

// fixedAlertBody is sent for every individual alert. The body deliberately
// does not describe the triggering item; it only says stock was found at the
// selected store. Keep it that way.
const fixedAlertBody = "Subject: Stock alert\r\n\r\nYour item is available at your selected store!\r\n"

// EmailNotifier is the individual notification channel (SMTP over TLS)
type EmailNotifier struct {
	config *config.EmailConfig
}

// NewEmailNotifier creates an email notifier
func NewEmailNotifier(cfg *config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{config: cfg}
}

// NotifyStore sends the individual alert for one store. The store and items
// are logged but not rendered into the message body.
func (e *EmailNotifier) NotifyStore(ctx context.Context, storeName string, items []string) error {
	logger.Info("Sending individual stock alert",
		zap.String("store", storeName),
		zap.Int("items", len(items)))
	return e.sendFixedAlert(ctx)
}

// AlertAppointments sends the appointment-summary alert
func (e *EmailNotifier) AlertAppointments(ctx context.Context) error {
	logger.Info("Sending appointment summary alert")
	return e.sendFixedAlert(ctx)
}

func (e *EmailNotifier) sendFixedAlert(ctx context.Context) error {
	if !e.config.Enabled {
		logger.Debug("Email notifications disabled")
		return nil
	}
	if e.config.Sender == "" || e.config.Receiver == "" {
		return fmt.Errorf("email sender or receiver not configured")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", e.config.SMTPHost, e.config.SMTPPort)
	tlsConfig := &tls.Config{ServerName: e.config.SMTPHost}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		metrics.RecordNotificationFailure("email")
		return fmt.Errorf("smtp dial failed: %w", err)
	}

	client, err := smtp.NewClient(conn, e.config.SMTPHost)
	if err != nil {
		conn.Close()
		metrics.RecordNotificationFailure("email")
		return fmt.Errorf("smtp client failed: %w", err)
	}
	defer client.Close()

	if e.config.Password != "" {
		auth := smtp.PlainAuth("", e.config.Sender, e.config.Password, e.config.SMTPHost)
		if err := client.Auth(auth); err != nil {
			metrics.RecordNotificationFailure("email")
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(e.config.Sender); err != nil {
		metrics.RecordNotificationFailure("email")
		return fmt.Errorf("smtp mail failed: %w", err)
	}
	if err := client.Rcpt(e.config.Receiver); err != nil {
		metrics.RecordNotificationFailure("email")
		return fmt.Errorf("smtp rcpt failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		metrics.RecordNotificationFailure("email")
		return fmt.Errorf("smtp data failed: %w", err)
	}
	if _, err := w.Write([]byte(fixedAlertBody)); err != nil {
		w.Close()
		metrics.RecordNotificationFailure("email")
		return fmt.Errorf("smtp write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		metrics.RecordNotificationFailure("email")
		return fmt.Errorf("smtp close failed: %w", err)
	}

	metrics.RecordNotificationSent("email")
	return client.Quit()
}
