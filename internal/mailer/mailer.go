package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends moderation outcome notifications to sellers over SMTP.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

func (m *Mailer) SendProductApprovedEmail(to, productName string) error {
	body := fmt.Sprintf("Your product '%s' has been approved and is now visible to buyers.", productName)
	return m.send(to, "Product Approved", body)
}

func (m *Mailer) SendProductRejectedEmail(to, productName, reason string) error {
	body := fmt.Sprintf("Your product '%s' was rejected by moderation.\n\nReason: %s\n\nYou can review the feedback and submit a new listing.", productName, reason)
	return m.send(to, "Product Rejected", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
