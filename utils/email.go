package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	models "github.com/greenroots/social-server/models"
)

// email request payload for ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Mailer sends transactional email through the ZeptoMail HTTP API.
type Mailer struct {
	APIURL string
	APIKey string
	From   string
	Client *http.Client
}

func NewMailer(apiURL, apiKey, from string) *Mailer {
	return &Mailer{
		APIURL: apiURL,
		APIKey: apiKey,
		From:   from,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// SendEmail sends an HTML email to a single recipient.
func (m *Mailer) SendEmail(ctx context.Context, to, toName, subject, body string) error {
	payload := emailRequest{
		From: emailAddress{Address: m.From},
		To: []toRecipient{
			{Email: emailWithName{Address: to, Name: toName}},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", m.APIKey)

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}
	return nil
}

// JoinConfirmed emails the participant of j a confirmation.
func (m *Mailer) JoinConfirmed(ctx context.Context, j models.JoinedEvent) error {
	email := models.Text(j.UserEmail)
	title := models.Text(j.EventTitle)
	name := models.Text(j.UserName)
	if name == "" {
		name = email
	}
	subject := "You're in: " + title
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for joining <strong>%s</strong> on %s. See you there!</p>",
		html.EscapeString(name), html.EscapeString(title), html.EscapeString(models.Text(j.EventDate)),
	)
	return m.SendEmail(ctx, email, name, subject, body)
}
