package chat_models

// SheetHeader is the fixed first row of the lead spreadsheet.
var SheetHeader = []string{
	"Name", "DOB", "Age", "Insurance", "Timing",
	"Income", "Phone", "Plan", "Email", "Signup",
	"Timestamp", "Email_Sent", "WhatsApp_Link",
}

// 1-based column positions and A1 letters used when patching a stored row.
const (
	ColumnPhone        = 7
	ColumnEmailSent    = 12
	ColumnWhatsAppLink = 13

	ColumnPhoneLetter        = "G"
	ColumnEmailSentLetter    = "L"
	ColumnWhatsAppLinkLetter = "M"
	LastColumnLetter         = "M"
)

// CompletionRecord is the flattened, sheet-shaped view of a finished
// session. Choice fields hold labels, not codes.
type CompletionRecord struct {
	Name         string
	DOB          string
	Age          int
	Insurance    string
	Timing       string
	Income       string
	Phone        string
	Plan         string
	Email        string
	Signup       string
	Timestamp    string
	EmailSent    string
	WhatsAppLink string
}

// Values returns the record in SheetHeader order.
func (r CompletionRecord) Values() []interface{} {
	return []interface{}{
		r.Name,
		r.DOB,
		r.Age,
		r.Insurance,
		r.Timing,
		r.Income,
		r.Phone,
		r.Plan,
		r.Email,
		r.Signup,
		r.Timestamp,
		r.EmailSent,
		r.WhatsAppLink,
	}
}
