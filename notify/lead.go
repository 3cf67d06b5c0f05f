// Package notify tells the agency about new leads.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dcode-github/imobiliaria/backend/models"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

type LeadNotifier interface {
	NotifyLead(ctx context.Context, l models.Lead, regiao string) error
}

// Noop is used when no mail provider is configured.
type Noop struct{}

func (Noop) NotifyLead(context.Context, models.Lead, string) error { return nil }

type SendGridNotifier struct {
	client  *sendgrid.Client
	from    *mail.Email
	to      *mail.Email
	sandbox bool
}

func NewSendGrid(apiKey, fromEmail, toEmail string, sandbox bool) *SendGridNotifier {
	return &SendGridNotifier{
		client:  sendgrid.NewSendClient(apiKey),
		from:    mail.NewEmail("Site Imobiliária", fromEmail),
		to:      mail.NewEmail("Atendimento", toEmail),
		sandbox: sandbox,
	}
}

func (n *SendGridNotifier) NotifyLead(ctx context.Context, l models.Lead, regiao string) error {
	subject, plain, htmlBody := LeadMessage(l, regiao)
	msg := mail.NewSingleEmail(n.from, subject, n.to, plain, htmlBody)
	if n.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	utils.Logger.WithField("lead_id", l.ID).Info("Lead notification sent")
	return nil
}

// LeadMessage renders the e-mail for a new lead. regiao is the region name,
// or empty when the lead did not pick one.
func LeadMessage(l models.Lead, regiao string) (subject, plain, htmlBody string) {
	subject = "Novo lead: " + l.Nome
	if l.ImovelTitulo != "" {
		subject += " - " + l.ImovelTitulo
	}

	rows := [][2]string{
		{"Nome", l.Nome},
		{"WhatsApp", l.Whatsapp},
	}
	if l.Email != "" {
		rows = append(rows, [2]string{"E-mail", l.Email})
	}
	if l.TipoImovel != "" {
		rows = append(rows, [2]string{"Tipo de imóvel", l.TipoImovel})
	}
	if regiao != "" {
		rows = append(rows, [2]string{"Região", regiao})
	}
	if l.ImovelTitulo != "" {
		rows = append(rows, [2]string{"Imóvel", l.ImovelTitulo})
	}
	if !l.DataEnvio.IsZero() {
		rows = append(rows, [2]string{"Enviado em", l.DataEnvio.Format("02/01/2006 15:04")})
	}

	var pb, hb strings.Builder
	hb.WriteString("<ul>")
	for _, r := range rows {
		fmt.Fprintf(&pb, "%s: %s\n", r[0], r[1])
		fmt.Fprintf(&hb, "<li><strong>%s:</strong> %s</li>", r[0], html.EscapeString(r[1]))
	}
	hb.WriteString("</ul>")

	if l.Whatsapp != "" {
		link := utils.WhatsAppLink(l.Whatsapp, "")
		fmt.Fprintf(&pb, "\nResponder: %s\n", link)
		fmt.Fprintf(&hb, `<p><a href="%s">Responder no WhatsApp</a></p>`, html.EscapeString(link))
	}
	return subject, pb.String(), hb.String()
}
