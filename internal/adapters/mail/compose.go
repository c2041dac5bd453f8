// Package mail composes contact-form notifications and relays them through
// Mailgun, SMTP or a webhook.
package mail

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	"strings"
	texttpl "text/template"
	"time"

	"github.com/araddon/dateparse"

	"rental_site/internal/domain"
)

const (
	notSpecifiedDate   = "Non specificata"
	notSpecifiedGuests = "Non specificato"
)

var (
	weekdaysIT = [...]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"}
	monthsIT   = [...]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}
)

// FormatDateIT renders a date as "lunedì 15 giugno 2026". Empty input is
// "Non specificata"; unparseable input is returned as is.
func FormatDateIT(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notSpecifiedDate
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%s %d %s %d", weekdaysIT[t.Weekday()], t.Day(), monthsIT[t.Month()-1], t.Year())
}

// Settings are the site-level addressing for notifications.
type Settings struct {
	SiteName string
	From     string
	To       string
	Subject  string
}

type view struct {
	Site     string
	Name     string
	Email    string
	Guests   string
	CheckIn  string
	CheckOut string
	Message  string
	Received string
}

var textBody = texttpl.Must(texttpl.New("text").Parse(`NUOVA RICHIESTA DI PRENOTAZIONE - {{.Site}}
============================================

DETTAGLI OSPITE
---------------
Nome: {{.Name}}
Email: {{.Email}}
Numero Ospiti: {{.Guests}}

DATE SOGGIORNO
--------------
Check-in: {{.CheckIn}}
Check-out: {{.CheckOut}}
{{if .Message}}
MESSAGGIO
---------
{{.Message}}
{{end}}
---
Ricevuto il {{.Received}}
Rispondi direttamente a questa email per contattare l'ospite.
`))

var htmlBody = htmltpl.Must(htmltpl.New("html").Parse(`<!DOCTYPE html>
<html lang="it">
<head>
  <meta charset="UTF-8">
  <title>Nuova Richiesta di Prenotazione</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #c9a961; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 24px;">{{.Site}}</h1>
    <p style="color: rgba(255,255,255,0.9); margin: 10px 0 0 0;">Nuova Richiesta di Prenotazione</p>
  </div>
  <div style="background: #f9f9f9; padding: 30px; border: 1px solid #ddd; border-top: none;">
    <h2 style="margin-top: 0; border-bottom: 2px solid #c9a961;">Dettagli Ospite</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="font-weight: bold; width: 40%;">Nome:</td><td>{{.Name}}</td></tr>
      <tr><td style="font-weight: bold;">Email:</td><td><a href="mailto:{{.Email}}" style="color: #c9a961;">{{.Email}}</a></td></tr>
      <tr><td style="font-weight: bold;">Numero Ospiti:</td><td>{{.Guests}}</td></tr>
    </table>
    <h2 style="margin-top: 30px; border-bottom: 2px solid #c9a961;">Date Soggiorno</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="font-weight: bold; width: 40%;">Check-in:</td><td>{{.CheckIn}}</td></tr>
      <tr><td style="font-weight: bold;">Check-out:</td><td>{{.CheckOut}}</td></tr>
    </table>
    {{- if .Message}}
    <h2 style="margin-top: 30px; border-bottom: 2px solid #c9a961;">Messaggio</h2>
    <div style="background: white; padding: 15px; border-left: 4px solid #c9a961;">
      <p style="margin: 0; white-space: pre-wrap;">{{.Message}}</p>
    </div>
    {{- end}}
    <div style="margin-top: 30px; padding: 15px; background: #fff3cd; border-left: 4px solid #ffc107;">
      <p style="margin: 0; font-size: 14px;"><strong>Rispondi direttamente</strong> a questa email per contattare l'ospite.</p>
    </div>
  </div>
  <div style="text-align: center; padding: 20px; color: #666; font-size: 12px;">
    <p>Ricevuto il {{.Received}}</p>
    <p style="margin: 0;">Questo messaggio è stato inviato da {{.Site}}</p>
  </div>
</body>
</html>
`))

// Compose builds the notification for one submission. Reply-To is the guest.
func Compose(id string, s domain.ContactSubmission, cfg Settings) (domain.Email, error) {
	guests := strings.TrimSpace(s.Guests.String())
	if guests == "" {
		guests = notSpecifiedGuests
	}
	v := view{
		Site:     cfg.SiteName,
		Name:     s.Name,
		Email:    s.Email,
		Guests:   guests,
		CheckIn:  FormatDateIT(s.CheckIn),
		CheckOut: FormatDateIT(s.CheckOut),
		Message:  strings.TrimSpace(s.Message),
		Received: FormatDateIT(s.SubmitDate),
	}

	var text, html bytes.Buffer
	if err := textBody.Execute(&text, v); err != nil {
		return domain.Email{}, err
	}
	if err := htmlBody.Execute(&html, v); err != nil {
		return domain.Email{}, err
	}

	subject := cfg.Subject
	if subject == "" {
		subject = "Nuova richiesta di prenotazione - " + cfg.SiteName
	}
	from := cfg.From
	if from == "" {
		from = cfg.To
	}
	return domain.Email{
		ID:      id,
		From:    from,
		To:      []string{cfg.To},
		ReplyTo: s.Email,
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
