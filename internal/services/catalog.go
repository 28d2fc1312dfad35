package services

import "superagent/internal/models/chat_models"

var insuranceLabels = map[chat_models.ChoiceCode]string{
	chat_models.ChoiceOne:   "No coverage at all",
	chat_models.ChoiceTwo:   "Basic employee",
	chat_models.ChoiceThree: "Some personal",
	chat_models.ChoiceFour:  "Comprehensive",
}

var timingLabels = map[chat_models.ChoiceCode]string{
	chat_models.ChoiceOne:   "3 months",
	chat_models.ChoiceTwo:   "6 months",
	chat_models.ChoiceThree: "9 months",
	chat_models.ChoiceFour:  "12 months",
}

var incomeLabels = map[chat_models.ChoiceCode]string{
	chat_models.ChoiceOne:   "Less than RM20,000",
	chat_models.ChoiceTwo:   "RM20,001 - RM40,000",
	chat_models.ChoiceThree: "RM40,001 - RM60,000",
	chat_models.ChoiceFour:  "More than RM60,000",
}

var planCatalog = map[chat_models.PlanID]chat_models.PlanSnapshot{
	chat_models.PlanStandard: {
		Label:                   "Standard",
		PremiumMonthly:          160,
		LifeCoverage:            "100,000",
		CriticalIllnessCoverage: "50,000",
		MedicalCoverage:         "180,000",
	},
	chat_models.PlanBasic: {
		Label:                   "Basic",
		PremiumMonthly:          160,
		LifeCoverage:            "150,000",
		CriticalIllnessCoverage: "75,000",
		MedicalCoverage:         "180,000",
	},
	chat_models.PlanComprehensive: {
		Label:                   "Comprehensive",
		PremiumMonthly:          300,
		LifeCoverage:            "200,000",
		CriticalIllnessCoverage: "100,000",
		MedicalCoverage:         "1,000,000",
	},
}

// lookupLabel falls back to the raw code when it has no label.
func lookupLabel(table map[chat_models.ChoiceCode]string, code chat_models.ChoiceCode) string {
	if label, ok := table[code]; ok {
		return label
	}
	return string(code)
}

func InsuranceLabel(code chat_models.ChoiceCode) string { return lookupLabel(insuranceLabels, code) }
func TimingLabel(code chat_models.ChoiceCode) string    { return lookupLabel(timingLabels, code) }
func IncomeLabel(code chat_models.ChoiceCode) string    { return lookupLabel(incomeLabels, code) }

func LookupPlan(id chat_models.PlanID) (chat_models.PlanSnapshot, bool) {
	plan, ok := planCatalog[id]
	return plan, ok
}
