package constants

const (
	AppName            = "ritual"
	DefaultKeyringUser = "login-credentials"
	DefaultConfigPath  = "~/.config/ritual/ritual.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ritual-"

	// StatsWindowDays is the default look-back window for per-habit stats
	StatsWindowDays = 30
)

// Storage keys. Each key addresses one independent blob in the key-value
// store; there is no cross-key transactionality.
const (
	KeyHabits    = "habits"
	KeyHabitLogs = "habitLogs"
	KeyUser      = "user"
	KeyAuth      = "authMarker"
	KeyTheme     = "themePreference"
)

// AuthMarkerValue is the literal stored under KeyAuth while logged in.
const AuthMarkerValue = "true"
