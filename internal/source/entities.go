// Package source fetches entity collections from the REST reports backend
// and normalizes them into canonical records.
package source

// IDs are kept as opaque strings: the backend emits numeric ids on the
// canonical paths but legacy aliases are not guaranteed to.

// Report is the canonical report record.
type Report struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CategoryID  string `json:"category_id"`
	UserID      string `json:"user_id"`
	AreaID      string `json:"area_id"`
	StateID     string `json:"state_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Category is the canonical category record.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// Area is the canonical area record.
type Area struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Responsible string `json:"responsable"`
	Description string `json:"description"`
}

// State is the canonical report-state record.
type State struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
	Final       bool   `json:"final"`
}

// Role is the canonical role record.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Permissions string `json:"permissions"`
}

// User is the canonical user record.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
	RoleID string `json:"role_id"`
}

// Comment is the canonical comment record.
type Comment struct {
	ID       string `json:"id"`
	ReportID string `json:"report_id"`
	UserID   string `json:"user_id"`
	Content  string `json:"content"`
	Date     string `json:"date"`
}

// Rating is the canonical rating record. Value is always a number in the
// 0-5 range; absent or non-numeric source values become 0.
type Rating struct {
	ID       string  `json:"id"`
	ReportID string  `json:"report_id"`
	UserID   string  `json:"user_id"`
	Value    float64 `json:"value"`
	Date     string  `json:"date"`
}

// Attachment is the canonical attachment record.
type Attachment struct {
	ID       string `json:"id"`
	ReportID string `json:"report_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url"`
}

// Tag is the canonical tag record. Tags have no relation to reports in the
// source data.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
