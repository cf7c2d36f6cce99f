package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendAffiliateGrantEmail notifies a customer that a discount code has been
// assigned to them as an affiliate code with the given commission rate.
func SendAffiliateGrantEmail(to, discountCode string, commission int) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		LogDebug("SMTP not configured, skipping affiliate grant email to %s", to)
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "You are now an affiliate partner")

	body := fmt.Sprintf(`
		<h2>Welcome aboard!</h2>
		<p>The discount code below has been linked to your account. Every time
		an order uses it, you earn a commission on the discounted items.</p>
		<h1 style="color: #4CAF50; font-size: 28px; letter-spacing: 3px;">%s</h1>
		<p>Your commission rate is <strong>%d%%</strong> of the pre-discount
		item value.</p>
	`, discountCode, commission)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
