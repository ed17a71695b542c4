package infra

import (
	"fmt"
	"net/smtp"

	"github.com/diyath7/small-shop-system/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound notification emails.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendLowStockAlert mails a reorder notification for one product.
func (m *Mailer) SendLowStockAlert(to, productName string, remaining, reorderLevel int) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Low stock: %s", productName)
	e.Text = []byte(fmt.Sprintf(
		"Stock for %s is down to %d units (reorder level %d). Consider placing a purchase order.",
		productName, remaining, reorderLevel))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
