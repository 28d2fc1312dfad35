package chat_models

import "time"

// Step is the position of a conversation: the field the next submission fills.
type Step int

const (
	StepAwaitingName Step = iota
	StepAwaitingDOB
	StepAwaitingInsurance
	StepAwaitingTiming
	StepAwaitingIncome
	StepAwaitingPhone
	StepAwaitingPlanAck
	StepAwaitingPlanChoice
	StepAwaitingEmail
	StepAwaitingSignup
	StepCompleted

	// StepBlocked is terminal and sits outside the ordered chain. Only a new
	// name leaves it.
	StepBlocked
)

var stepNames = map[Step]string{
	StepAwaitingName:       "AWAITING_NAME",
	StepAwaitingDOB:        "AWAITING_DOB",
	StepAwaitingInsurance:  "AWAITING_INSURANCE",
	StepAwaitingTiming:     "AWAITING_TIMING",
	StepAwaitingIncome:     "AWAITING_INCOME",
	StepAwaitingPhone:      "AWAITING_PHONE",
	StepAwaitingPlanAck:    "AWAITING_PLAN_ACK",
	StepAwaitingPlanChoice: "AWAITING_PLAN_CHOICE",
	StepAwaitingEmail:      "AWAITING_EMAIL",
	StepAwaitingSignup:     "AWAITING_SIGNUP",
	StepCompleted:          "COMPLETED",
	StepBlocked:            "BLOCKED",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Next returns the step that follows s in the fixed order. Terminal steps
// return themselves.
func (s Step) Next() Step {
	if s >= StepCompleted {
		return s
	}
	return s + 1
}

// Terminal reports whether no field can be submitted except a new name.
func (s Step) Terminal() bool {
	return s == StepCompleted || s == StepBlocked
}

// Field identifies the single input a step endpoint carries.
type Field int

const (
	FieldName Field = iota
	FieldDOB
	FieldInsurance
	FieldTiming
	FieldIncome
	FieldPhone
	FieldPlanAck
	FieldPlanChoice
	FieldEmail
	FieldSignup
)

// Step returns the state in which f is the expected input.
func (f Field) Step() Step {
	switch f {
	case FieldName:
		return StepAwaitingName
	case FieldDOB:
		return StepAwaitingDOB
	case FieldInsurance:
		return StepAwaitingInsurance
	case FieldTiming:
		return StepAwaitingTiming
	case FieldIncome:
		return StepAwaitingIncome
	case FieldPhone:
		return StepAwaitingPhone
	case FieldPlanAck:
		return StepAwaitingPlanAck
	case FieldPlanChoice:
		return StepAwaitingPlanChoice
	case FieldEmail:
		return StepAwaitingEmail
	case FieldSignup:
		return StepAwaitingSignup
	}
	return StepBlocked
}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDOB:
		return "dob"
	case FieldInsurance:
		return "insurance"
	case FieldTiming:
		return "timing"
	case FieldIncome:
		return "income"
	case FieldPhone:
		return "phone"
	case FieldPlanAck:
		return "plan_ack"
	case FieldPlanChoice:
		return "plan"
	case FieldEmail:
		return "email"
	case FieldSignup:
		return "signup"
	}
	return "unknown"
}

// ChoiceCode is the answer to one of the multiple-choice questions
// (insurance, timing, income). Codes outside 1..4 are kept as given.
type ChoiceCode string

const (
	ChoiceOne   ChoiceCode = "1"
	ChoiceTwo   ChoiceCode = "2"
	ChoiceThree ChoiceCode = "3"
	ChoiceFour  ChoiceCode = "4"
)

// Known reports whether c is one of the four offered options.
func (c ChoiceCode) Known() bool {
	switch c {
	case ChoiceOne, ChoiceTwo, ChoiceThree, ChoiceFour:
		return true
	}
	return false
}

type PlanID int

const (
	PlanStandard      PlanID = 1
	PlanBasic         PlanID = 2
	PlanComprehensive PlanID = 3
)

type PlanSnapshot struct {
	Label                   string
	PremiumMonthly          int
	LifeCoverage            string
	CriticalIllnessCoverage string
	MedicalCoverage         string
}

// Session is one user's conversation. Fields are filled in step order and
// never edited afterwards; Age is non-zero exactly when DOB is set.
type Session struct {
	Key            string
	Name           string
	DOB            string
	Age            int
	Insurance      ChoiceCode
	Timing         ChoiceCode
	Income         ChoiceCode
	Phone          string
	PlanID         PlanID
	Plan           *PlanSnapshot
	Email          string
	SignupInterest string
	CurrentStep    Step
	StartedAt      time.Time
}

// NewSession starts a conversation whose name has just been accepted.
func NewSession(key, name string, now time.Time) *Session {
	return &Session{
		Key:         key,
		Name:        name,
		CurrentStep: StepAwaitingDOB,
		StartedAt:   now,
	}
}

// Clone returns a copy that can be mutated without touching s. The plan
// snapshot is immutable and shared.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
