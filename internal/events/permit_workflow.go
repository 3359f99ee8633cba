package events

import "time"

const PermitWorkflowTopic = "silpa.permit.workflow.v1"

const (
	EventTypePermitSubmitted = "permit.submitted"
	EventTypePermitDecided   = "permit.decided"
)

// PermitSubmittedEvent diterbitkan saat pengajuan izin masuk (baru maupun
// hasil revisi).
type PermitSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	PermitID   string    `json:"permit_id"`
	StudentID  string    `json:"student_id"`
	Reference  string    `json:"reference"`
	LeaveType  string    `json:"leave_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PermitDecidedEvent diterbitkan saat admin mengambil keputusan
// (disetujui, ditolak, atau diminta revisi).
type PermitDecidedEvent struct {
	EventType  string    `json:"event_type"`
	PermitID   string    `json:"permit_id"`
	StudentID  string    `json:"student_id"`
	Reference  string    `json:"reference"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
