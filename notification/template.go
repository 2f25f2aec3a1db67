package notification

import (
	"strings"
	"time"

	"campusccms/models"
)

// TemplateKind is the tagged variant selecting a message template. Status
// changes map onto the three lifecycle kinds; complaint submission uses
// the dedicated creation kind.
type TemplateKind string

const (
	KindPending    TemplateKind = "pending"
	KindInProgress TemplateKind = "in_progress"
	KindSolved     TemplateKind = "solved"
	KindCreation   TemplateKind = "creation"
)

// Template is one renderable message. Bodies carry {student_name} and
// {complaint_category} placeholders; the creation body additionally
// carries {complaint_number} and {submitted_at}.
type Template struct {
	Kind    TemplateKind
	Subject string
	Body    string
}

var templates = map[TemplateKind]Template{
	KindPending: {
		Kind:    KindPending,
		Subject: "Complaint Received - Campus CCMS",
		Body: `Hello {student_name},

Your complaint regarding {complaint_category} has been received and is now under review.

Our team will assess your complaint and begin processing it shortly. You will receive updates on the progress.

Thank you for using Campus CCMS.

Best regards,
Campus Administration`,
	},
	KindInProgress: {
		Kind:    KindInProgress,
		Subject: "Complaint Update - Campus CCMS",
		Body: `Hello {student_name},

Your complaint about {complaint_category} is currently being processed by our team.

We are actively working on resolving your issue and will notify you once there are further updates.

We appreciate your patience and understanding.

Best regards,
Campus Administration`,
	},
	KindSolved: {
		Kind:    KindSolved,
		Subject: "Complaint Resolved - Campus CCMS",
		Body: `Hello {student_name},

Your complaint regarding {complaint_category} has been successfully resolved.

The issue has been addressed and your case is now closed. Thank you for bringing this matter to our attention.

If you have any further concerns, please don't hesitate to contact us.

Best regards,
Campus Administration`,
	},
	KindCreation: {
		Kind:    KindCreation,
		Subject: "Complaint Submitted Successfully - Campus CCMS",
		Body: `Hello {student_name},

Your complaint regarding {complaint_category} has been successfully submitted.

Complaint Number: {complaint_number}
Date Submitted: {submitted_at}
Status: Pending Review

Our team will review your complaint and you will be notified of any updates.

Thank you for using Campus CCMS.

Best regards,
Campus Administration`,
	},
}

// KindForStatus maps a lifecycle status onto its template kind. Unknown
// statuses fall back to the Pending template; the default arm is an
// explicit policy, not an error.
func KindForStatus(status models.ComplaintStatus) TemplateKind {
	switch status {
	case models.StatusInProgress:
		return KindInProgress
	case models.StatusSolved:
		return KindSolved
	default:
		return KindPending
	}
}

// TemplateFor returns the template for a kind.
func TemplateFor(kind TemplateKind) Template {
	if t, ok := templates[kind]; ok {
		return t
	}
	return templates[KindPending]
}

// RenderData carries the substitution values. Zero values render as
// empty strings; rendering never fails.
type RenderData struct {
	StudentName     string
	CategoryName    string
	ComplaintNumber string
	SubmittedAt     time.Time
}

// Render substitutes the data into the template and returns subject, body.
func (t Template) Render(data RenderData) (string, string) {
	submittedAt := ""
	if !data.SubmittedAt.IsZero() {
		submittedAt = data.SubmittedAt.Format("2006-01-02 15:04")
	}
	replacer := strings.NewReplacer(
		"{student_name}", data.StudentName,
		"{complaint_category}", data.CategoryName,
		"{complaint_number}", data.ComplaintNumber,
		"{submitted_at}", submittedAt,
	)
	return t.Subject, replacer.Replace(t.Body)
}
