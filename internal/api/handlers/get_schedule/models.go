package get_schedule

// ScheduleRequest HTTP request model.
// Либо date (обзор дня), либо year+month (обзор месяца).
// Пустой filter трактуется как active.
type ScheduleRequest struct {
	Date   string `json:"date,omitempty"` // "2025-06-02"
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`
	Filter string `json:"filter,omitempty"`
}
