package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"nyayasetu/config"
	"nyayasetu/httpclient"
	"nyayasetu/models"
)

const brevoBaseURL = "https://api.brevo.com"

// Brevo sends transactional email through the Brevo REST API.
type Brevo struct {
	client   *httpclient.BaseClient
	apiKey   string
	receiver string
}

func NewBrevo(cfg config.AppConfig) *Brevo {
	return &Brevo{
		client:   httpclient.NewBaseClient(brevoBaseURL),
		apiKey:   cfg.BrevoApiKey,
		receiver: cfg.ContactEmail,
	}
}

// Configured reports whether credentials are present. When they are not,
// contact submissions are still stored, just not forwarded by mail.
func (b *Brevo) Configured() bool {
	return b.apiKey != "" && b.receiver != ""
}

type emailParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type emailPayload struct {
	Sender      emailParty   `json:"sender"`
	To          []emailParty `json:"to"`
	ReplyTo     emailParty   `json:"replyTo"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
}

// SendContactNotification forwards a stored contact submission to the
// configured receiver, with reply-to set to the submitter.
func (b *Brevo) SendContactNotification(ctx context.Context, c *models.Contact) error {
	if !b.Configured() {
		return fmt.Errorf("mailer: brevo credentials not configured")
	}

	payload := emailPayload{
		// Brevo requires the sender address to be verified on the account.
		Sender:  emailParty{Name: "Platform Contact Form", Email: b.receiver},
		To:      []emailParty{{Email: b.receiver, Name: "Admin"}},
		ReplyTo: emailParty{Email: c.Email, Name: c.Name},
		Subject: fmt.Sprintf("New Contact Inquiry: %s", c.Subject),
		HTMLContent: fmt.Sprintf(
			"<h3>New Contact Form Submission</h3>"+
				"<p><strong>Name:</strong> %s</p>"+
				"<p><strong>Email:</strong> %s</p>"+
				"<p><strong>Subject:</strong> %s</p>"+
				"<p><strong>Message:</strong><br/>%s</p>",
			c.Name, c.Email, c.Subject, c.Message,
		),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := b.client.PostJSON(ctx, "/v3/smtp/email", body, map[string]string{
		"api-key": b.apiKey,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailer: brevo returned %d: %s", resp.StatusCode, snippet)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailer: unexpected brevo status %d", resp.StatusCode)
	}
	return nil
}
