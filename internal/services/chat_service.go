package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"superagent/internal/models/chat_models"
	mem "superagent/pkg/memcache"
	"superagent/pkg/utils"
)

const (
	msgBlockedMinor = "We are sorry. This chatbot is only available for individuals aged 18 and above."
	msgBlockedAged  = "We are sorry. This chatbot is only available for individuals below 80 years old."

	msgAskTiming = "May I know by when do you intend to be insured?"
	msgAskIncome = "That’s awesome! What is your annual income range?"
	msgAskPhone  = "Please enter your phone number so we can provide you with updates from time to time on suitable offers and packages."
	msgExplain   = "<b>Let me guide you through the meaning of Perlindungan Combo.</b><br><br>" +
		"Perlindungan Combo is an all-in-one protection plan that includes:<br>" +
		"• Life Insurance<br>" +
		"• Medical Card<br>" +
		"• Critical Illness coverage"
	msgAskPlan   = "May I know which level of protection do you want?"
	msgAskSignup = "Would you like to find out more on how you can be best protected?"

	msgOutOfOrder = "Please answer the current question first."
	msgEnded      = "This conversation has ended. Please enter your name to start again."
)

type ChatServiceInterface interface {
	// Advance applies raw as the answer for field in the conversation keyed
	// by key. Rejections leave the session untouched.
	Advance(ctx context.Context, key string, field chat_models.Field, raw string) (StepResult, error)
}

// StepResult is what the user sees after an accepted submission.
type StepResult struct {
	Message   string
	Blocked   bool
	Plan      *chat_models.PlanSnapshot
	Step      chat_models.Step
	Completed bool
}

type ChatService struct {
	store           mem.SessionStore
	completion      CompletionServiceInterface
	clock           utils.Clock
	contactWhatsApp string
	logger          *zap.Logger
}

func NewChatService(store mem.SessionStore, completion CompletionServiceInterface, clock utils.Clock, contactWhatsApp string, logger *zap.Logger) *ChatService {
	return &ChatService{
		store:           store,
		completion:      completion,
		clock:           clock,
		contactWhatsApp: contactWhatsApp,
		logger:          logger,
	}
}

func (c *ChatService) Advance(ctx context.Context, key string, field chat_models.Field, raw string) (StepResult, error) {
	unlock := c.store.Lock(key)
	result, finished, err := c.transition(key, field, raw)
	unlock()
	if err != nil {
		return StepResult{}, err
	}

	// The snapshot is a private copy, so the sinks run without the lock.
	if finished != nil {
		outcome := c.completion.Complete(ctx, *finished)
		c.logger.Info("conversation completed",
			zap.String("session", key),
			zap.Int("row", outcome.RowIndex),
			zap.Bool("email_sent", outcome.EmailSent),
			zap.Bool("notified", outcome.Notified))
	}
	return result, nil
}

// transition runs under the session lock. On success it stores the updated
// copy; finished is set only on the signup step.
func (c *ChatService) transition(key string, field chat_models.Field, raw string) (StepResult, *chat_models.Session, error) {
	if field == chat_models.FieldName {
		name, err := ValidateName(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		// A new name always starts over; whatever was stored is dropped.
		sess := chat_models.NewSession(key, name, c.clock())
		c.store.Put(key, sess)
		return StepResult{
			Message: fmt.Sprintf("Hello %s! I’d love to know you a little better. When is your date of birth?", html.EscapeString(name)),
			Step:    sess.CurrentStep,
		}, nil, nil
	}

	current, ok := c.store.Get(key)
	if !ok {
		return StepResult{}, nil, utils.ErrSessionNotFound
	}
	if current.CurrentStep.Terminal() {
		return StepResult{}, nil, utils.Reject(msgEnded)
	}
	if !accepts(current.CurrentStep, field) {
		c.logger.Debug("out of order submission",
			zap.String("session", key),
			zap.Stringer("expected", current.CurrentStep),
			zap.Stringer("field", field))
		return StepResult{}, nil, utils.Reject(msgOutOfOrder)
	}

	next := current.Clone()
	var result StepResult

	switch field {
	case chat_models.FieldDOB:
		birth, err := ParseDOB(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		age := AgeOn(birth, c.clock())
		if !AgeAllowed(age) {
			next.CurrentStep = chat_models.StepBlocked
			c.store.Put(key, next)
			msg := msgBlockedMinor
			if age >= MaxAge {
				msg = msgBlockedAged
			}
			return StepResult{Message: msg, Blocked: true, Step: next.CurrentStep}, nil, nil
		}
		next.DOB = strings.TrimSpace(raw)
		next.Age = age
		result.Message = fmt.Sprintf("Great, you’re %d years old. "+
			"This is a great time to plan for your protection needs.<br><br>"+
			"Do you currently have insurance coverage?", age)

	case chat_models.FieldInsurance:
		code, err := ParseChoice(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		next.Insurance = code
		result.Message = msgAskTiming

	case chat_models.FieldTiming:
		code, err := ParseChoice(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		next.Timing = code
		result.Message = msgAskIncome

	case chat_models.FieldIncome:
		code, err := ParseChoice(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		next.Income = code
		result.Message = msgAskPhone

	case chat_models.FieldPhone:
		phone, err := ValidatePhone(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		next.Phone = phone
		result.Message = msgExplain

	case chat_models.FieldPlanAck:
		result.Message = msgAskPlan

	case chat_models.FieldPlanChoice:
		id, plan, err := ParsePlanID(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		next.PlanID = id
		next.Plan = &plan
		result.Plan = &plan
		result.Message = fmt.Sprintf("Nice choice! The <b>%s</b> plan helps support your health and peace of mind.", plan.Label)

	case chat_models.FieldEmail:
		email, err := ValidateEmail(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		next.Email = email
		result.Message = msgAskSignup

	case chat_models.FieldSignup:
		answer, err := ValidateSignup(raw)
		if err != nil {
			return StepResult{}, nil, err
		}
		next.SignupInterest = answer
		result.Message = c.thankYouMessage()
		result.Completed = true

	default:
		return StepResult{}, nil, fmt.Errorf("unhandled field %s", field)
	}

	next.CurrentStep = field.Step().Next()
	result.Step = next.CurrentStep
	c.store.Put(key, next)

	if result.Completed {
		return result, next.Clone(), nil
	}
	return result, nil, nil
}

// accepts reports whether field may be submitted at step. The plan
// explanation needs no answer, so a plan choice also acknowledges it.
func accepts(step chat_models.Step, field chat_models.Field) bool {
	if step == field.Step() {
		return true
	}
	return step == chat_models.StepAwaitingPlanAck && field == chat_models.FieldPlanChoice
}

func (c *ChatService) thankYouMessage() string {
	return "Thank you for contacting us.<br>" +
		"Feel free to reach out if you would like more information: " +
		fmt.Sprintf(`<a href="https://wa.me/%s" target="_blank">Chat on WhatsApp</a>`, c.contactWhatsApp)
}
