// Package mailer sends the thank-you email for donation offers.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"text/template"

	"homerelief/pkg/types"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks SendGrid when an API key is configured and the console mailer
// otherwise.
func New(cfg *types.Config, logger *logrus.Logger) Mailer {
	if cfg.SendgridAPIKey == "" {
		return NewConsoleMailer(logger)
	}
	return NewSendgridMailer(cfg.SendgridAPIKey, cfg.MailFromName, cfg.MailFromAddress)
}

type SendgridMailer struct {
	key  string
	from *sgmail.Email
	send func(req rest.Request) (*rest.Response, error)
}

func NewSendgridMailer(key, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		key:  key,
		from: sgmail.NewEmail(fromName, fromEmail),
		send: sendgrid.API,
	}
}

func (m *SendgridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return v3
}

func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := m.send(req)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

type ConsoleMailer struct {
	logger *logrus.Logger
}

func NewConsoleMailer(logger *logrus.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.logger.WithFields(logrus.Fields{
		"to":      msg.ToEmail,
		"subject": msg.Subject,
	}).Info(msg.Text)
	return nil
}

var donationThanks = template.Must(template.New("donation_thanks").Parse(
	`Dear {{.Name}},

Thank you for offering {{.Support}} support to families rebuilding their homes after the floods.
A relief coordinator will contact you to arrange the next steps.

Home Relief
`))

// DonationThanks builds the message sent after a donation offer with an email
// address is recorded.
func DonationThanks(offer *types.DonationOffer) (Message, error) {
	if offer.Email == nil || *offer.Email == "" {
		return Message{}, fmt.Errorf("donation offer %s has no email", offer.ID)
	}

	var buf bytes.Buffer
	err := donationThanks.Execute(&buf, map[string]string{
		"Name":    offer.Name,
		"Support": string(offer.SupportType),
	})
	if err != nil {
		return Message{}, fmt.Errorf("render donation thanks: %w", err)
	}

	return Message{
		ToName:  offer.Name,
		ToEmail: *offer.Email,
		Subject: "Thank you for your donation offer",
		Text:    buf.String(),
	}, nil
}
