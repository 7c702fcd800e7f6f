package constants

const (
	AppName           = "daybook"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/daybook/daybook.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DisplayDateFormat is the human-readable form used in headers
	DisplayDateFormat = "Monday, Jan 2 2006"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daybook-"
	BackupFileSuffix = ".db"
)

// Task priority colors for projected calendar events. Habit events carry the
// habit's own stored color instead.
const (
	ColorPriorityHigh   = "hsl(0, 84.2%, 60.2%)"
	ColorPriorityMedium = "hsl(220, 70%, 50%)"
	ColorPriorityLow    = "hsl(0, 0%, 45.1%)"
)
