package utils

import (
	"errors"
	"fmt"
	"net/smtp"
)

// Mailer sends best-effort notification emails. Delivery failures are the
// caller's problem to log; they never fail a request.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewMailer(host, port, username, password, from string) *Mailer {
	return &Mailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

// Notify tells a user that listings of their interest changed since their
// last visit.
func (m *Mailer) Notify(toEmail string) error {
	subject := "There have been updates since your last visit to Facilitai!"
	body := "Hello! Listings of your interest were updated since your last visit."
	return m.send(toEmail, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.Host == "" || m.Username == "" {
		return errors.New("mailer not configured")
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg))
}
