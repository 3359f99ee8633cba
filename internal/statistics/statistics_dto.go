package statistics

// OverviewResponse adalah agregat pengajuan izin per unit yang ditampilkan
// di dasbor admin.
type OverviewResponse struct {
	Unit        string           `json:"unit"`
	Year        int              `json:"year"`
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	ByLeaveType map[string]int64 `json:"by_leave_type"`
	ByMonth     [12]int64        `json:"by_month"`
}
