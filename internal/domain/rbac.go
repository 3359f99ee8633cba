package domain

type EnforceRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Unit     string `json:"unit" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
