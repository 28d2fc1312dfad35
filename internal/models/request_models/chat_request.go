package request_models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString accepts a JSON string, number or boolean. Non-string values keep
// their literal JSON text, so 2 becomes "2" and true becomes "true".
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v.(type) {
	case float64, bool:
		*f = FlexString(b)
		return nil
	}
	return fmt.Errorf("unsupported value %s", b)
}

func (f FlexString) String() string { return string(f) }

type SubmitNameRequest struct {
	Name string `json:"name"`
}

type SubmitDOBRequest struct {
	DOB string `json:"dob"`
}

type SelectInsuranceRequest struct {
	Insurance FlexString `json:"insurance"`
}

type SelectTimingRequest struct {
	Timing FlexString `json:"timing"`
}

type SelectIncomeRequest struct {
	Income FlexString `json:"income"`
}

type SubmitPhoneRequest struct {
	Phone string `json:"phone"`
}

type SelectPreferenceRequest struct {
	Level FlexString `json:"level"`
}

type SubmitEmailRequest struct {
	Email string `json:"email"`
}

type SelectSignupRequest struct {
	Interested FlexString `json:"interested"`
}
