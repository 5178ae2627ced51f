// Package ses delivers shared business cards through Amazon SES v2.
package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"bizcardx/internal/extraction"
	"bizcardx/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendCard(ctx context.Context, input port.ShareInput) error {
	subject, textBody, htmlBody := RenderCard(input)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{input.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

var fieldLabels = map[extraction.FieldTag]string{
	extraction.TagCompanyName: "Company",
	extraction.TagName:        "Name",
	extraction.TagDesignation: "Designation",
	extraction.TagPhoneNumber: "Phone",
	extraction.TagEmail:       "Email",
	extraction.TagWebsite:     "Website",
	extraction.TagAddress:     "Address",
	extraction.TagState:       "State",
	extraction.TagPincode:     "Pincode",
}

// RenderCard returns the subject, plain text and HTML bodies for a share.
// Empty fields are left out.
func RenderCard(input port.ShareInput) (subject, text, htmlBody string) {
	fields := input.Card.Fields()
	subject = "Business card: " + fallback(fields.Name, "unnamed contact")

	greeting := "Hi"
	if input.ToName != "" {
		greeting += " " + input.ToName
	}

	var tb, rows strings.Builder
	fmt.Fprintf(&tb, "%s,\n\n", greeting)
	if input.Note != "" {
		fmt.Fprintf(&tb, "%s\n\n", input.Note)
	}
	for _, tag := range extraction.AllTags {
		v := fields.Get(tag)
		if v == "" {
			continue
		}
		fmt.Fprintf(&tb, "%s: %s\n", fieldLabels[tag], v)
		fmt.Fprintf(&rows, `    <tr><td style="color: #666; padding: 4px 12px 4px 0;">%s</td><td>%s</td></tr>
`, fieldLabels[tag], html.EscapeString(v))
	}
	tb.WriteString("\nBizCardX")

	note := ""
	if input.Note != "" {
		note = "<p>" + html.EscapeString(input.Note) + "</p>"
	}
	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>%s,</p>
  %s
  <table>
%s  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">BizCardX - Business Card Extraction</p>
</body>
</html>`, html.EscapeString(greeting), note, rows.String())

	return subject, tb.String(), htmlBody
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
