package constants

const (
	AppName            = "pactly"
	DefaultKeyringUser = "store-connection"
	DefaultConfigPath  = "~/.config/pactly/pactly.db"
	Version            = "v0.1.0"

	// DateFormat is the calendar date format used for pact and challenge dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Collection keys. Each key holds one whole collection serialized as JSON.
	KeySession           = "pactly_session"
	KeyUsers             = "pactly_users"
	KeyPacts             = "pactly_pacts"
	KeyRooms             = "pactly_rooms"
	KeySupporterActivity = "pactly_supporter_activity"
	KeyInitialized       = "pactly_initialized"

	// Account constants
	MinPasswordLength = 6
	DefaultTier       = "bronze"
	DefaultTrustScore = 50

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pactly-"
	BackupFileSuffix = ".json"

	// Agent constants
	RecentCheckInLimit     = 5
	DefaultAgentURL        = "http://127.0.0.1:8787/plan"
	AgentRequestsPerMinute = 6
)

// CollectionKeys lists every key ClearAllData removes.
var CollectionKeys = []string{
	KeySession,
	KeyUsers,
	KeyPacts,
	KeyRooms,
	KeySupporterActivity,
	KeyInitialized,
}
