package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"aquasentry-srv/pkg/log"
)

const defaultTimeout = 15 * time.Second

// SMTPNotifier implements Notifier over SMTP.
type SMTPNotifier struct {
	l      log.Logger
	cfg    Config
	dialer Dialer
}

var _ Notifier = &SMTPNotifier{}

// New creates an SMTP-backed Notifier.
func New(l log.Logger, cfg Config) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.From == "" {
		return nil, ErrFromRequired
	}
	if err := validateAddress(cfg.From); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &SMTPNotifier{
		l:   l,
		cfg: cfg,
		dialer: &netDialer{
			timeout:    cfg.Timeout,
			useTLS:     cfg.UseTLS,
			serverName: cfg.Host,
		},
	}, nil
}

// SetDialer replaces the SMTP dialer. Used by tests.
func (n *SMTPNotifier) SetDialer(d Dialer) {
	n.dialer = d
}

// Send delivers one HTML message to a single recipient.
func (n *SMTPNotifier) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	if err := validateAddress(to); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	client, err := n.dialer.DialContext(ctx, addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer client.Close()

	if !n.cfg.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
				return fmt.Errorf("%w: starttls: %v", ErrSendFailed, err)
			}
		}
	}

	if n.cfg.Username != "" {
		auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrSendFailed, err)
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("%w: mail from: %v", ErrSendFailed, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("%w: rcpt to: %v", ErrSendFailed, err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: data: %v", ErrSendFailed, err)
	}
	if _, err := wc.Write(buildMessage(n.cfg.From, to, subject, htmlBody)); err != nil {
		wc.Close()
		return fmt.Errorf("%w: write: %v", ErrSendFailed, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrSendFailed, err)
	}

	return client.Quit()
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	sb.WriteString("\r\n")
	return []byte(sb.String())
}

func validateAddress(addr string) error {
	if strings.ContainsAny(addr, "\r\n\x00") {
		return ErrAddressInvalid
	}
	return nil
}

// netDialer is the production Dialer over net/smtp.
type netDialer struct {
	timeout    time.Duration
	useTLS     bool
	serverName string
}

func (d *netDialer) DialContext(ctx context.Context, addr string) (Client, error) {
	dialCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	nd := &net.Dialer{}
	conn, err := nd.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if d.useTLS {
		conn = tls.Client(conn, &tls.Config{ServerName: d.serverName})
	}

	if d.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(d.timeout))
	}

	c, err := smtp.NewClient(conn, d.serverName)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &smtpClient{c}, nil
}

// smtpClient adapts *smtp.Client to the Client interface
// (Data returns an interface instead of io.WriteCloser).
type smtpClient struct {
	*smtp.Client
}

func (c *smtpClient) Data() (WriteCloser, error) {
	return c.Client.Data()
}
