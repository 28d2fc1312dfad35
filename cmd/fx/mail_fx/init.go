package mail_fx

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"superagent/internal/config"
	"superagent/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg config.Config, logger *zap.Logger) (services.IMailService, error) {
	smtpCfg := services.SMTPConfig{
		Host:       cfg.Mail.Host,
		Port:       cfg.Mail.Port, // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
		Username:   cfg.Mail.Username,
		Password:   cfg.Mail.Password,
		From:       cfg.Mail.From,
		FromName:   cfg.Mail.FromName,
		UseSSL:     cfg.Mail.UseSSL,
		RequireTLS: cfg.Mail.RequireTLS,

		Subject:        cfg.Mail.Subject,
		AttachmentPath: cfg.Mail.AttachmentPath,
		AgentWhatsApp:  cfg.Mail.AgentWhatsApp,
		AppName:        cfg.Mail.FromName,
	}

	mailService, err := services.NewSMTPMailService(smtpCfg, logger.Named("mail"))
	if err != nil {
		return nil, fmt.Errorf("initialize SMTP mail service: %w", err)
	}
	return mailService, nil
}
