package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"superagent/internal/models/chat_models"
	"superagent/internal/repositories"
	"superagent/pkg/utils"
)

type CompletionServiceInterface interface {
	Complete(ctx context.Context, session chat_models.Session) CompletionOutcome
}

// CompletionOutcome reports what the pipeline managed to do. RowIndex is 0
// when the append failed.
type CompletionOutcome struct {
	Record    chat_models.CompletionRecord
	RowIndex  int
	EmailSent bool
	Notified  bool
}

type CompletionService struct {
	sheetRepo repositories.SheetRepository
	mailer    IMailService
	clock     utils.Clock
	timeout   time.Duration
	logger    *zap.Logger
}

func NewCompletionService(sheetRepo repositories.SheetRepository, mailer IMailService, clock utils.Clock, timeout time.Duration, logger *zap.Logger) *CompletionService {
	return &CompletionService{
		sheetRepo: sheetRepo,
		mailer:    mailer,
		clock:     clock,
		timeout:   timeout,
		logger:    logger,
	}
}

// BuildCompletionRecord flattens a finished session into its sheet row.
func BuildCompletionRecord(s chat_models.Session, at time.Time) chat_models.CompletionRecord {
	plan := ""
	if s.Plan != nil {
		plan = s.Plan.Label
	}
	return chat_models.CompletionRecord{
		Name:         s.Name,
		DOB:          s.DOB,
		Age:          s.Age,
		Insurance:    InsuranceLabel(s.Insurance),
		Timing:       TimingLabel(s.Timing),
		Income:       IncomeLabel(s.Income),
		Phone:        s.Phone,
		Plan:         plan,
		Email:        s.Email,
		Signup:       s.SignupInterest,
		Timestamp:    utils.FormatSheetTimestamp(at),
		WhatsAppLink: utils.WhatsAppLink(s.Phone),
	}
}

// Complete appends the row, sends the summary and, only when both worked,
// marks the row notified. Every failure is logged and swallowed.
func (c *CompletionService) Complete(ctx context.Context, session chat_models.Session) CompletionOutcome {
	// Sink calls outlive the request that triggered them.
	ctx = context.WithoutCancel(ctx)
	log := c.logger.With(zap.String("session", session.Key))

	outcome := CompletionOutcome{Record: BuildCompletionRecord(session, c.clock())}

	appendCtx, cancel := context.WithTimeout(ctx, c.timeout)
	row, err := c.sheetRepo.AppendRow(appendCtx, outcome.Record)
	cancel()
	if err != nil {
		log.Error("save lead row failed", zap.Error(err))
	} else {
		outcome.RowIndex = row
		log.Info("lead row saved", zap.Int("row", row))
	}

	mailCtx, cancel := context.WithTimeout(ctx, c.timeout)
	outcome.EmailSent = c.mailer.SendSummary(mailCtx, session.Email, outcome.Record, session.Plan)
	cancel()

	if outcome.RowIndex == 0 || !outcome.EmailSent {
		return outcome
	}

	markCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.sheetRepo.MarkNotified(markCtx, outcome.RowIndex, c.clock()); err != nil {
		log.Error("mark row notified failed", zap.Int("row", outcome.RowIndex), zap.Error(err))
		return outcome
	}
	outcome.Notified = true
	return outcome
}
