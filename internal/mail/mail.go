package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

var ErrorInvalidHeader = errors.New("header value contains a line break")

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Transport delivers a single message.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

// NewTransport returns an SMTP transport, or a logging transport when no host is configured.
func NewTransport(config Config) Transport {
	if config.Host == "" {
		return &logTransport{}
	}
	return &smtpTransport{config: config, timeout: 30 * time.Second}
}

type logTransport struct{}

func (t *logTransport) Send(ctx context.Context, msg *Message) error {
	log.Infof("smtp not configured, dropping mail to %s: %s", msg.To, msg.Subject)
	return nil
}

type smtpTransport struct {
	config  Config
	timeout time.Duration
}

func (t *smtpTransport) Send(ctx context.Context, msg *Message) error {
	if strings.ContainsAny(msg.To, "\r\n") || strings.ContainsAny(t.config.From, "\r\n") {
		return ErrorInvalidHeader
	}
	addr := net.JoinHostPort(t.config.Host, fmt.Sprint(t.config.Port))

	dialer := &net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to smtp server: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.config.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if t.config.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: t.config.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("starting tls: %w", err)
		}
	}

	if t.config.User != "" && t.config.Password != "" {
		auth := smtp.PlainAuth("", t.config.User, t.config.Password, t.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp authentication: %w", err)
		}
	}

	if err := client.Mail(t.config.From); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("starting message: %w", err)
	}
	if _, err := writer.Write([]byte(t.build(msg))); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing message: %w", err)
	}

	// the message is accepted once Data is closed
	_ = client.Quit()
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerText folds line breaks out of a header value and encodes it when it is not plain ASCII.
func headerText(value string) string {
	return mime.QEncoding.Encode("utf-8", strings.TrimSpace(lineBreaks.Replace(value)))
}

func (t *smtpTransport) build(msg *Message) string {
	var sb strings.Builder
	fromName := t.config.FromName
	if fromName == "" {
		fromName = "CyberMaker"
	}
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", headerText(fromName), lineBreaks.Replace(t.config.From)))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", lineBreaks.Replace(msg.To)))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", headerText(msg.Subject)))
	sb.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(msg.HTML)
	return sb.String()
}
