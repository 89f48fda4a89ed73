package mailer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends the transactional notices of the platform. Failures are
// surfaced to the caller immediately; there is no retry queue.
type Mailer interface {
	SendVerificationCode(to, name, code string) error
	SendPasswordReset(to, name, resetLink string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer reads SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and
// MAIL_FROM from the environment.
func NewSMTPMailer() Mailer {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "localhost"
	}

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "no-reply@dufaa.com"
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")),
		from:   from,
	}
}

func (m *smtpMailer) SendVerificationCode(to, name, code string) error {
	subject := "رمز التحقق الخاص بك"
	body := fmt.Sprintf(
		"<div dir=\"rtl\"><p>مرحبًا %s،</p><p>رمز التحقق الخاص بك هو: <b>%s</b></p><p>الرمز صالح لمدة عشر دقائق.</p></div>",
		name, code,
	)
	return m.send(to, subject, body)
}

func (m *smtpMailer) SendPasswordReset(to, name, resetLink string) error {
	subject := "إعادة تعيين كلمة المرور"
	body := fmt.Sprintf(
		"<div dir=\"rtl\"><p>مرحبًا %s،</p><p>لإعادة تعيين كلمة المرور اضغط على الرابط التالي:</p><p><a href=\"%s\">%s</a></p><p>الرابط صالح لمدة ثلاثين دقيقة ويستخدم مرة واحدة فقط.</p></div>",
		name, resetLink, resetLink,
	)
	return m.send(to, subject, body)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
