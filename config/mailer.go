package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

var (
	smtpHost = os.Getenv("SMTP_HOST")
	smtpPort = func() int {
		p, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if p == 0 {
			p = 587
		}
		return p
	}()
	smtpUser      = os.Getenv("SMTP_USER")
	smtpPass      = os.Getenv("SMTP_PASS")
	smtpFrom      = os.Getenv("SMTP_FROM") // e.g. "BGV Platform <no-reply@your.org>"
	skipTLSVerify = os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1"
)

// SMTPCredential carries a per-tenant SMTP account looked up from the database.
// Zero-value fields fall back to the environment configuration.
type SMTPCredential struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPCredential) withDefaults() SMTPCredential {
	if c.Host == "" {
		c.Host = smtpHost
	}
	if c.Port == 0 {
		c.Port = smtpPort
	}
	if c.Username == "" {
		c.Username = smtpUser
	}
	if c.Password == "" {
		c.Password = smtpPass
	}
	if c.From == "" {
		c.From = smtpFrom
	}
	return c
}

// SendMail sends an HTML mail using the environment SMTP configuration.
func SendMail(to []string, subject, html string) error {
	return SendMailWith(SMTPCredential{}, to, nil, subject, html, nil)
}

// SendMailWith sends an HTML mail using the given credential, attaching the
// listed file paths. Empty credential fields fall back to environment values.
func SendMailWith(cred SMTPCredential, to, cc []string, subject, html string, attachments []string) error {
	if len(to) == 0 {
		return nil
	}
	cred = cred.withDefaults()
	if cred.Host == "" || cred.From == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", cred.From)
	m.SetHeader("To", to...)
	if len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	for _, path := range attachments {
		m.Attach(path)
	}

	d := mail.NewDialer(cred.Host, cred.Port, cred.Username, cred.Password)

	// Force STARTTLS on port 587 (Gmail/Office365 compatible).
	d.StartTLSPolicy = mail.MandatoryStartTLS

	d.TLSConfig = &tls.Config{
		ServerName:         cred.Host,
		InsecureSkipVerify: skipTLSVerify, // dev only: set SMTP_SKIP_TLS_VERIFY=1 to skip cert checks
	}

	return d.DialAndSend(m)
}
