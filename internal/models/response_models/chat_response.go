package response_models

// StepResponse is the body of every step endpoint: a prompt, a blocked
// outcome, or an error message.
type StepResponse struct {
	Message string `json:"message,omitempty"`
	Blocked *bool  `json:"blocked,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PlanResponse answers select_preference with the chosen plan's figures.
type PlanResponse struct {
	Message  string `json:"message"`
	Plan     string `json:"plan"`
	Premium  int    `json:"premium"`
	Life     string `json:"life"`
	Critical string `json:"critical"`
	Medical  string `json:"medical"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
