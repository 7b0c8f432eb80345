package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// MailSender is satisfied by *gomail.Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email mails the applicant when the form asks for email notifications.
type Email struct {
	sender MailSender
	from   string
}

func NewEmail(sender MailSender, from string) *Email {
	return &Email{sender: sender, from: from}
}

// NewSMTPEmail returns nil when no SMTP host is configured.
func NewSMTPEmail(host string, port int, user, password, from string) *Email {
	if strings.TrimSpace(host) == "" {
		return nil
	}
	return NewEmail(gomail.NewDialer(host, port, user, password), from)
}

func (n *Email) RecruitmentAccepted(ctx context.Context, a Acceptance) error {
	if !a.SendEmail || strings.TrimSpace(a.ApplicantEmail) == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	title := a.FormTitle.Or()
	text := fmt.Sprintf("Dear %s,\n\nYour application for %s has been accepted.\n\n%s க்கான உங்கள் விண்ணப்பம் ஏற்கப்பட்டது.\n",
		a.ApplicantName, title.En, title.Ta)
	body := fmt.Sprintf("<p>Dear %s,</p><p>Your application for <strong>%s</strong> has been accepted.</p><p>%s க்கான உங்கள் விண்ணப்பம் ஏற்கப்பட்டது.</p>",
		html.EscapeString(a.ApplicantName), html.EscapeString(title.En), html.EscapeString(title.Ta))

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", a.ApplicantEmail)
	m.SetHeader("Subject", "Application accepted: "+title.En)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send acceptance email to %s: %w", a.ApplicantEmail, err)
	}
	return nil
}
