// services/mail_service.go
package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"
	"superagent/internal/models/chat_models"
)

type IMailService interface {
	// SendSummary renders and delivers the chat summary to to. It never
	// returns an error; failures are logged and reported as false.
	SendSummary(ctx context.Context, to string, record chat_models.CompletionRecord, plan *chat_models.PlanSnapshot) bool
}

// SMTPConfig holds your SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587 (STARTTLS) or 465 (SMTPS)
	Username   string // SMTP username / login
	Password   string // SMTP password / app password
	From       string // envelope from
	FromName   string // display name
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // if true, fail if STARTTLS not available

	Subject        string
	AttachmentPath string // optional PDF, skipped when missing
	AgentWhatsApp  string // digits only, no +
	AppName        string
}

const agentGreeting = "Hi KKMJP Superagent, I just received my summary email and would like to know more."

type deliverFunc func(ctx context.Context, to string, msg []byte) error

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *texttemplate.Template
	logger  *zap.Logger
	now     func() time.Time
	deliver deliverFunc
}

func NewSMTPMailService(cfg SMTPConfig, logger *zap.Logger) (IMailService, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}

	htmlTpl, err := template.New("summaryHTML").Parse(summaryHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	textTpl, err := texttemplate.New("summaryText").Parse(summaryTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}

	s := &smtpMailService{
		cfg:     cfg,
		htmlTpl: htmlTpl,
		textTpl: textTpl,
		logger:  logger,
		now:     time.Now,
	}
	s.deliver = s.sendSMTP
	return s, nil
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendSummary(ctx context.Context, to string, record chat_models.CompletionRecord, plan *chat_models.PlanSnapshot) bool {
	html, text, err := s.renderSummary(record, plan)
	if err != nil {
		s.logger.Error("render summary email failed", zap.String("to", to), zap.Error(err))
		return false
	}

	msg, err := s.buildMessage(to, html, text)
	if err != nil {
		s.logger.Error("build summary email failed", zap.String("to", to), zap.Error(err))
		return false
	}

	if err := s.deliver(ctx, to, msg); err != nil {
		s.logger.Error("send summary email failed", zap.String("to", to), zap.Error(err))
		return false
	}

	s.logger.Info("summary email sent", zap.String("to", to))
	return true
}

// ------------------- Rendering -------------------

type summaryData struct {
	AppName   string
	Name      string
	DOB       string
	Age       int
	Insurance string
	Timing    string
	Income    string
	Phone     string
	Email     string
	Plan      string
	Pricing   *chat_models.PlanSnapshot
	AgentURL  string
	Year      int
}

const summaryHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.AppName}} Insurance Summary</title>
</head>
<body style="margin:0; padding:0; background:#f2f4f8; font-family: 'Segoe UI', Arial, sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:24px 0;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0"
               style="background:#ffffff; border-radius:14px; overflow:hidden; box-shadow:0 8px 24px rgba(0,0,0,0.08);">
          <tr>
            <td style="background:linear-gradient(135deg,#0d47a1,#1976d2); padding:28px; text-align:center;">
              <h1 style="margin:0; color:#ffffff; font-size:24px;">{{.AppName}}</h1>
              <p style="margin:8px 0 0; color:#e3f2fd; font-size:15px;">Your Personal Insurance Assistant</p>
            </td>
          </tr>
          <tr>
            <td style="padding:32px; color:#333333;">
              <p style="font-size:16px; margin-top:0;">Hi <strong>{{.Name}}</strong> 👋,</p>
              <p style="font-size:16px; line-height:1.6;">
                Thank you for chatting with <strong>{{.AppName}}</strong>!
                I’ve put together a quick summary of what you shared, so you can review it anytime 😊
              </p>
              {{with .Pricing}}
              <div style="margin:20px 0; padding:20px; background:#f1f5f9; border-radius:10px; font-size:16px;">
                <b>Your estimated monthly premium is RM {{.PremiumMonthly}}</b><br><br>
                • Life: RM {{.LifeCoverage}}<br>
                • Critical Illness: RM {{.CriticalIllnessCoverage}}<br>
                • Medical Card: RM {{.MedicalCoverage}}
              </div>
              {{end}}
              <table width="100%" cellpadding="0" cellspacing="0" style="margin-top:20px; border-collapse:collapse; font-size:15px;">
                <tr>
                  <td style="padding:10px; color:#666;">🎂 Date of Birth</td>
                  <td style="padding:10px; font-weight:600;">{{.DOB}} (Age: {{.Age}})</td>
                </tr>
                <tr style="background:#f9fafb;">
                  <td style="padding:10px; color:#666;">🛡️ Coverage Interest</td>
                  <td style="padding:10px; font-weight:600;">{{.Insurance}}</td>
                </tr>
                <tr>
                  <td style="padding:10px; color:#666;">⏰ Preferred Timing</td>
                  <td style="padding:10px; font-weight:600;">{{.Timing}}</td>
                </tr>
                <tr style="background:#f9fafb;">
                  <td style="padding:10px; color:#666;">💰 Income Range</td>
                  <td style="padding:10px; font-weight:600;">{{.Income}}</td>
                </tr>
                <tr>
                  <td style="padding:10px; color:#666;">📞 Phone</td>
                  <td style="padding:10px; font-weight:600;">{{.Phone}}</td>
                </tr>
                <tr style="background:#f9fafb;">
                  <td style="padding:10px; color:#666;">📧 Email</td>
                  <td style="padding:10px; font-weight:600;">{{.Email}}</td>
                </tr>
                <tr>
                  <td style="padding:10px; color:#666;">📋 Selected Plan</td>
                  <td style="padding:10px; font-weight:600;">{{.Plan}}</td>
                </tr>
              </table>
              {{if .AgentURL}}
              <div style="text-align:center; margin-top:32px;">
                <a href="{{.AgentURL}}" target="_blank"
                   style="background:#25D366; color:#ffffff; text-decoration:none; padding:14px 30px; border-radius:30px; font-size:16px; font-weight:600; display:inline-block;">
                  💬 Chat with a Real Agent on WhatsApp
                </a>
              </div>
              {{end}}
              <p style="margin-top:32px; font-size:15px; line-height:1.6;">
                If you have any questions at all, just reply on WhatsApp. We’re always happy to help 😊
              </p>
              <p style="margin-bottom:0; font-size:15px;">Warm regards,<br><strong>{{.AppName}} Team</strong></p>
            </td>
          </tr>
        </table>
        <p style="font-size:12px; color:#888; margin-top:14px;">© {{.Year}} {{.AppName}}. All rights reserved.</p>
      </td>
    </tr>
  </table>
</body>
</html>`

const summaryTextTemplate = `Hi {{.Name}},

Thank you for chatting with {{.AppName}}! Here is a summary of what you shared.
{{with .Pricing}}
Your estimated monthly premium is RM {{.PremiumMonthly}}
- Life: RM {{.LifeCoverage}}
- Critical Illness: RM {{.CriticalIllnessCoverage}}
- Medical Card: RM {{.MedicalCoverage}}
{{end}}
Date of Birth:     {{.DOB}} (Age: {{.Age}})
Coverage Interest: {{.Insurance}}
Preferred Timing:  {{.Timing}}
Income Range:      {{.Income}}
Phone:             {{.Phone}}
Email:             {{.Email}}
Selected Plan:     {{.Plan}}
{{if .AgentURL}}
Chat with a real agent on WhatsApp:
{{.AgentURL}}
{{end}}
Warm regards,
{{.AppName}} Team (c) {{.Year}}
`

// renderSummary produces the HTML and plain-text bodies. The pricing block
// is only rendered when plan is non-nil.
func (s *smtpMailService) renderSummary(record chat_models.CompletionRecord, plan *chat_models.PlanSnapshot) (html string, text string, err error) {
	data := summaryData{
		AppName:   s.cfg.AppName,
		Name:      record.Name,
		DOB:       record.DOB,
		Age:       record.Age,
		Insurance: record.Insurance,
		Timing:    record.Timing,
		Income:    record.Income,
		Phone:     record.Phone,
		Email:     record.Email,
		Plan:      record.Plan,
		Pricing:   plan,
		AgentURL:  s.agentURL(),
		Year:      s.now().Year(),
	}

	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) agentURL() string {
	if s.cfg.AgentWhatsApp == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.cfg.AgentWhatsApp, url.PathEscape(agentGreeting))
}

// ------------------- MIME -------------------

// buildMessage assembles a multipart/mixed message: an alternative part with
// text and HTML bodies, then the PDF attachment when the file exists.
func (s *smtpMailService) buildMessage(to, htmlBody, textBody string) ([]byte, error) {
	var msg bytes.Buffer
	mixed := multipart.NewWriter(&msg)

	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }
	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", s.cfg.Subject))
	write("Date: %s\r\n", s.now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mixed.Boundary())

	var alt bytes.Buffer
	altWriter := multipart.NewWriter(&alt)
	if err := writeBodyPart(altWriter, "text/plain; charset=UTF-8", textBody); err != nil {
		return nil, err
	}
	if err := writeBodyPart(altWriter, "text/html; charset=UTF-8", htmlBody); err != nil {
		return nil, err
	}
	if err := altWriter.Close(); err != nil {
		return nil, err
	}

	altPart, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", altWriter.Boundary())},
	})
	if err != nil {
		return nil, err
	}
	if _, err := altPart.Write(alt.Bytes()); err != nil {
		return nil, err
	}

	if err := s.attachPDF(mixed); err != nil {
		return nil, err
	}

	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}

func writeBodyPart(w *multipart.Writer, contentType, body string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return err
	}
	return writeBase64Lines(part, []byte(body))
}

func (s *smtpMailService) attachPDF(w *multipart.Writer) error {
	if s.cfg.AttachmentPath == "" {
		return nil
	}
	data, err := os.ReadFile(s.cfg.AttachmentPath)
	if err != nil {
		s.logger.Warn("attachment not found, skipping", zap.String("path", s.cfg.AttachmentPath), zap.Error(err))
		return nil
	}

	name := filepath.Base(s.cfg.AttachmentPath)
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": name})},
	})
	if err != nil {
		return err
	}
	return writeBase64Lines(part, data)
}

// writeBase64Lines wraps encoded output at 76 characters per RFC 2045.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) sendSMTP(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		// STARTTLS path (typically port 587)
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(auth); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
