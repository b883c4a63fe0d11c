package service

import (
	"fmt"
	"strings"
	"time"

	mail "github.com/go-mail/mail/v2"
	"github.com/kevinaaaquil/dailypulse/backend/models"
)

// Mailer sends payment receipts over SMTP with mandatory STARTTLS.
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	d := mail.NewDialer(host, port, username, password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.Timeout = 15 * time.Second
	return &Mailer{dialer: d, from: from}
}

func (m *Mailer) SendReceipt(p *models.Payment) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", p.Email)
	msg.SetHeader("Subject", "Your Daily Pulse premium receipt")
	msg.SetBody("text/plain", ReceiptBody(p))
	return m.dialer.DialAndSend(msg)
}

// ReceiptBody renders the plain-text receipt for a recorded payment.
func ReceiptBody(p *models.Payment) string {
	var b strings.Builder
	b.WriteString("Thank you for subscribing to Daily Pulse premium.\n\n")
	fmt.Fprintf(&b, "Amount: $%.2f\n", p.Price)
	fmt.Fprintf(&b, "Transaction: %s\n", p.TransactionID)
	fmt.Fprintf(&b, "Date: %s\n", p.Date.UTC().Format(time.RFC1123))
	return b.String()
}
