package models

// LogCategory groups audit entries
type LogCategory string

const (
	LogSecurity LogCategory = "Security"
	LogStaff    LogCategory = "Staff"
	LogBranding LogCategory = "Branding"
	LogSystem   LogCategory = "System"
)

// MaxAuditEntries is the size of the audit trail; older entries are evicted
const MaxAuditEntries = 100

// LogEntry is one operator action in the audit trail
type LogEntry struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	User      string      `json:"user"`
	Action    string      `json:"action"`
	Details   string      `json:"details"`
	Category  LogCategory `json:"category"`
}
