package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"
)

// SendVerificationEmail delivers a verification code. The code itself lives
// in Redis with a TTL; this only handles delivery.
func SendVerificationEmail(to, code string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@hyperlocal.market"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Your verification code")
	msg.SetBodyString(mail.TypeTextHTML, verificationHTML(code))

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending verification email to", to)
	return client.DialAndSend(msg)
}

func verificationHTML(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 480px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Verify your account</h2>
		<p>Your verification code is:</p>
		<p style="font-size: 32px; letter-spacing: 6px; font-weight: bold;">%s</p>
		<p>The code expires in 10 minutes. If you did not request it, ignore this email.</p>
	</div>
</body>
</html>`, code)
}
