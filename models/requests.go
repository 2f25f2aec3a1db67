package models

// RegisterStudentRequest is the payload for student registration
type RegisterStudentRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	StudentNumber string `json:"student_number"`
}

// LoginRequest is the payload for student and admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated identity
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// CreateComplaintRequest is the payload for filing a complaint
type CreateComplaintRequest struct {
	CategoryID   int64  `json:"category_id"`
	IncidentDate string `json:"incident_date"`
	IncidentTime string `json:"incident_time"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	PhotoPath    string `json:"photo_path,omitempty"`
}

// CreateComplaintResponse reports the created complaint and whether the
// submission notification was accepted by the outbound channel.
type CreateComplaintResponse struct {
	ComplaintID      int64           `json:"complaint_id"`
	Number           string          `json:"complaint_number"`
	Status           ComplaintStatus `json:"status"`
	NotificationSent bool            `json:"notification_sent"`
}

// TransitionRequest is the payload for an admin status change
type TransitionRequest struct {
	Status ComplaintStatus `json:"status"`
}

// TransitionResult reports the two independent outcomes of a lifecycle
// transition: whether the status change was persisted, and whether the
// student notification was accepted. The caller always learns both,
// never a conflated single boolean.
type TransitionResult struct {
	ComplaintID      int64           `json:"complaint_id"`
	Status           ComplaintStatus `json:"status"`
	StatusChanged    bool            `json:"status_changed"`
	NotificationSent bool            `json:"notification_sent"`
	NotificationNote string          `json:"notification_note,omitempty"`
}

// AddResponseRequest is the payload for a manual admin note
type AddResponseRequest struct {
	Response string `json:"response"`
}

// SendMessageRequest is the payload for sending a direct message.
// ReceiverID is ignored for student senders: their messages always go
// to the support mailbox.
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id,omitempty"`
	Body       string `json:"message"`
}

// SubmitFeedbackRequest is the payload for rating a solved complaint
type SubmitFeedbackRequest struct {
	ComplaintID int64  `json:"complaint_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
}

// ComplaintDetail bundles a complaint with its audit trail
type ComplaintDetail struct {
	Complaint Complaint       `json:"complaint"`
	Responses []AdminResponse `json:"responses"`
}

// StudentDashboard aggregates a student's landing-page counters
type StudentDashboard struct {
	TotalComplaints   int         `json:"total_complaints"`
	PendingComplaints int         `json:"pending_complaints"`
	SolvedComplaints  int         `json:"solved_complaints"`
	UnreadMessages    int         `json:"unread_messages"`
	RecentComplaints  []Complaint `json:"recent_complaints"`
}

// AdminDashboard aggregates the admin landing-page counters
type AdminDashboard struct {
	TotalStudents     int         `json:"total_students"`
	TotalComplaints   int         `json:"total_complaints"`
	PendingComplaints int         `json:"pending_complaints"`
	SolvedComplaints  int         `json:"solved_complaints"`
	RecentComplaints  []Complaint `json:"recent_complaints"`
	RecentMessages    []Message   `json:"recent_messages"`
}

// CategoryCount is one row of the complaints-per-category report
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PeriodCount is one row of the complaint-volume report
type PeriodCount struct {
	Year   int `json:"year"`
	Period int `json:"period"`
	Count  int `json:"count"`
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
