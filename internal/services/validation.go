package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"superagent/internal/models/chat_models"
	"superagent/pkg/utils"
)

const (
	MinAge = 18
	MaxAge = 80

	msgEmptyName     = "Please enter your name."
	msgInvalidDOB    = "Please enter date in DD/MM/YYYY format."
	msgInvalidPhone  = "Invalid Malaysia phone number."
	msgInvalidEmail  = "Invalid email format."
	msgMissingChoice = "Please select an option."
)

var (
	phonePattern = regexp.MustCompile(`^(\+60|01)[0-9]{8,9}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", utils.Reject(msgEmptyName)
	}
	return name, nil
}

// ParseDOB parses a DD/MM/YYYY date. Single-digit days and months are
// accepted.
func ParseDOB(raw string) (time.Time, error) {
	birth, err := time.Parse(utils.DOBLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, utils.Reject(msgInvalidDOB)
	}
	return birth, nil
}

// AgeOn is calendar age at now: the year difference, less one when the
// birthday has not come round yet this year.
func AgeOn(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeAllowed reports whether age is inside [MinAge, MaxAge).
func AgeAllowed(age int) bool {
	return age >= MinAge && age < MaxAge
}

func ValidatePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if !phonePattern.MatchString(phone) {
		return "", utils.Reject(msgInvalidPhone)
	}
	return phone, nil
}

func ValidateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if !emailPattern.MatchString(email) {
		return "", utils.Reject(msgInvalidEmail)
	}
	return email, nil
}

// ParseChoice only requires an answer to be present; unknown codes are kept.
func ParseChoice(raw string) (chat_models.ChoiceCode, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", utils.Reject(msgMissingChoice)
	}
	return chat_models.ChoiceCode(code), nil
}

// ParsePlanID resolves a plan level against the catalog.
func ParsePlanID(raw string) (chat_models.PlanID, chat_models.PlanSnapshot, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, chat_models.PlanSnapshot{}, fmt.Errorf("%w: %q", utils.ErrUnknownPlan, raw)
	}
	id := chat_models.PlanID(n)
	plan, ok := LookupPlan(id)
	if !ok {
		return 0, chat_models.PlanSnapshot{}, fmt.Errorf("%w: %d", utils.ErrUnknownPlan, n)
	}
	return id, plan, nil
}

func ValidateSignup(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", utils.Reject(msgMissingChoice)
	}
	return raw, nil
}
