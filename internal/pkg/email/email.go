package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

// SMTPSender delivers forum notifications over SMTP. It implements the
// services.Sender contract: recipients, from address, subject, a template
// key, and template data.
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger,
	}
}

// Send renders the template for the given key and delivers it to every
// recipient. When SMTP credentials are not configured the message is logged
// instead, which keeps development setups working without a mail server.
func (s *SMTPSender) Send(recipients []string, from string, subject string, templateKey string, data map[string]interface{}) error {
	if len(recipients) == 0 {
		return nil
	}

	body, err := renderTemplate(templateKey, data)
	if err != nil {
		return err
	}

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Strs("recipients", recipients).
			Str("subject", subject).
			Str("template", templateKey).
			Msg("SMTP credentials not configured - notification not sent")
		return nil
	}

	return s.sendHTMLEmail(recipients, from, subject, body)
}

func renderTemplate(templateKey string, data map[string]interface{}) (string, error) {
	subject, _ := data["subject"].(string)
	body, _ := data["body"].(string)
	authorName, _ := data["authorName"].(string)
	replierName, _ := data["replierName"].(string)

	switch templateKey {
	case "new_discussion":
		return fmt.Sprintf(`
			<html><body>
			<p>A new discussion was started by %s:</p>
			<h3>%s</h3>
			<blockquote>%s</blockquote>
			</body></html>
		`, authorName, subject, body), nil

	case "new_discussion_user":
		return fmt.Sprintf(`
			<html><body>
			<p>Hello %s,</p>
			<p>Your discussion <strong>%s</strong> was created. You will be
			notified when somebody replies.</p>
			</body></html>
		`, authorName, subject), nil

	case "new_post":
		return fmt.Sprintf(`
			<html><body>
			<p>Hello %s,</p>
			<p>%s posted a new reply in <strong>%s</strong>:</p>
			<blockquote>%s</blockquote>
			</body></html>
		`, authorName, replierName, subject, body), nil

	default:
		return "", fmt.Errorf("unknown notification template %q", templateKey)
	}
}

// sendHTMLEmail sends an HTML email
func (s *SMTPSender) sendHTMLEmail(recipients []string, from, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(from); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		for _, rcpt := range recipients {
			if err = client.Rcpt(rcpt); err != nil {
				return fmt.Errorf("failed to set recipient: %w", err)
			}
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(serverAddress, auth, from, recipients, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
