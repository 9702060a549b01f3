package workflow

// Severity of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Notification is user-facing feedback emitted during a submission.
type Notification struct {
	Severity Severity `json:"type"`
	Summary  string   `json:"summary"`
	Detail   string   `json:"message"`
}

// Prompt is what the user is asked before a quote is sent.
type Prompt struct {
	Header  string
	Message string
}

var confirmPrompt = Prompt{
	Header:  "Confirmation",
	Message: "Are you sure that you want to proceed?",
}

const (
	MsgRejected       = "You have rejected"
	MsgCancelled      = "You have cancelled"
	MsgRequiredFields = "Please fill the required fields"
	MsgGenerating     = "PDF is generating"
	MsgDownloaded     = "Quote PDF downloaded"
	MsgRequestFailed  = "Could not generate the PDF"
	MsgDeliverFailed  = "Could not save the PDF"
)

func rejectedNote() Notification {
	return Notification{Severity: SeverityError, Summary: "Rejected", Detail: MsgRejected}
}

func cancelledNote() Notification {
	return Notification{Severity: SeverityWarn, Summary: "Cancelled", Detail: MsgCancelled}
}

func invalidNote() Notification {
	return Notification{Severity: SeverityError, Summary: "Error", Detail: MsgRequiredFields}
}

func generatingNote() Notification {
	return Notification{Severity: SeverityInfo, Summary: "Info", Detail: MsgGenerating}
}

func downloadedNote() Notification {
	return Notification{Severity: SeveritySuccess, Summary: "Success", Detail: MsgDownloaded}
}

func failedNote(msg string, err error) Notification {
	return Notification{Severity: SeverityError, Summary: "Error", Detail: msg + ": " + err.Error()}
}
