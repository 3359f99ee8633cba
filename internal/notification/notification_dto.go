package notification

type NotificationResponse struct {
	ID        string  `json:"id"`
	PermitID  string  `json:"permit_id"`
	Status    string  `json:"status"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Read      bool    `json:"read"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}
