package mail

import (
	"context"
	"crypto/tls"
	"net/smtp"
	"time"
)

// Config is the SMTP transport configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool // implicit TLS; otherwise STARTTLS is attempted when offered
	Timeout  time.Duration
}

// Dialer creates SMTP connections. Injectable for tests.
type Dialer interface {
	DialContext(ctx context.Context, addr string) (Client, error)
}

// Client is the subset of *smtp.Client used by the sender.
type Client interface {
	StartTLS(config *tls.Config) error
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (WriteCloser, error)
	Quit() error
	Close() error
	Extension(ext string) (bool, string)
}

// WriteCloser is the message body writer returned by Data.
type WriteCloser interface {
	Write(p []byte) (n int, err error)
	Close() error
}
