package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer ส่งเมลแบบ best-effort: คนเรียกต้อง log error เอง
// ห้ามให้เมลล้มแล้วพา request หลักล้มตาม
type Mailer interface {
	SendPasswordReset(to, resetLink string) error
}

type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (m *SMTPMailer) SendPasswordReset(to, resetLink string) error {
	subject := "Reset your ReStro password"
	body := fmt.Sprintf(
		"You requested a password reset.\r\n\r\n"+
			"Open this link to choose a new password (valid for 1 hour):\r\n%s\r\n\r\n"+
			"If you did not request this, you can ignore this email.\r\n",
		resetLink,
	)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.From, to, subject, body,
	))

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, msg)
}

// LogMailer ใช้ตอน dev/ไม่ได้ตั้ง SMTP
type LogMailer struct{}

func (LogMailer) SendPasswordReset(to, resetLink string) error {
	log.Printf("mailer: password reset for %s → %s", to, resetLink)
	return nil
}
