package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"net/smtp"
	"strings"
	"testing"
)

type fakeClient struct {
	from    string
	rcpts   []string
	body    bytes.Buffer
	quitted bool
}

func (f *fakeClient) StartTLS(*tls.Config) error      { return nil }
func (f *fakeClient) Auth(smtp.Auth) error            { return nil }
func (f *fakeClient) Mail(from string) error          { f.from = from; return nil }
func (f *fakeClient) Rcpt(to string) error            { f.rcpts = append(f.rcpts, to); return nil }
func (f *fakeClient) Quit() error                     { f.quitted = true; return nil }
func (f *fakeClient) Close() error                    { return nil }
func (f *fakeClient) Extension(string) (bool, string) { return false, "" }

type fakeWriteCloser struct{ buf *bytes.Buffer }

func (w fakeWriteCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w fakeWriteCloser) Close() error                { return nil }

func (f *fakeClient) Data() (WriteCloser, error) {
	return fakeWriteCloser{buf: &f.body}, nil
}

type fakeDialer struct{ client *fakeClient }

func (d *fakeDialer) DialContext(context.Context, string) (Client, error) {
	return d.client, nil
}

func TestSMTPNotifier_Send(t *testing.T) {
	n, err := New(nil, Config{Host: "smtp.example.com", Port: 587, From: "alerts@example.com"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fc := &fakeClient{}
	n.SetDialer(&fakeDialer{client: fc})

	if err := n.Send(context.Background(), "op@example.com", "Water Quality Digest", "<h1>3 alerts</h1>"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if fc.from != "alerts@example.com" {
		t.Errorf("MAIL FROM = %q, want alerts@example.com", fc.from)
	}
	if len(fc.rcpts) != 1 || fc.rcpts[0] != "op@example.com" {
		t.Errorf("RCPT TO = %v, want [op@example.com]", fc.rcpts)
	}
	msg := fc.body.String()
	if !strings.Contains(msg, "Content-Type: text/html") {
		t.Errorf("message missing HTML content type:\n%s", msg)
	}
	if !strings.Contains(msg, "<h1>3 alerts</h1>") {
		t.Errorf("message missing body:\n%s", msg)
	}
	if !fc.quitted {
		t.Error("client was not quit after send")
	}
}

func TestSMTPNotifier_Send_RejectsCRLFAddress(t *testing.T) {
	n, err := New(nil, Config{Host: "smtp.example.com", Port: 587, From: "alerts@example.com"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n.SetDialer(&fakeDialer{client: &fakeClient{}})

	err = n.Send(context.Background(), "evil@example.com\r\nBcc: spam@example.com", "s", "b")
	if err != ErrAddressInvalid {
		t.Errorf("Send() error = %v, want ErrAddressInvalid", err)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "missing host", cfg: Config{From: "a@b.c"}, wantErr: ErrHostRequired},
		{name: "missing from", cfg: Config{Host: "h"}, wantErr: ErrFromRequired},
		{name: "crlf in from", cfg: Config{Host: "h", From: "a@b.c\r\n"}, wantErr: ErrAddressInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(nil, tt.cfg); err != tt.wantErr {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
