package constants

const (
	AppName           = "beebloom"
	Version           = "v0.2.0"
	DefaultConfigDir  = "~/.config/beebloom"
	DefaultDBFileName = "beebloom.db"

	// DateFormat is the standard date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Store table names. These match the persisted shapes, so renaming any of
	// them is a data migration.
	TableHabits = "habits"
	TableGroups = "habitGroups"
	TableChecks = "checks"

	// Entity field limits
	TitleMaxLen       = 80
	DescriptionMaxLen = 200

	WeeklyTargetMin     = 1
	WeeklyTargetMax     = 7
	WeeklyTargetDefault = 7

	// OrderStep is the spacing between consecutive order values within a
	// scope. Gaps leave headroom for fractional inserts without a full
	// resequence.
	OrderStep = 10
)

// DefaultPalette is rotated by active-habit count when a new habit has no
// explicit color (garden-tone palette).
var DefaultPalette = []string{
	"#3c7c5a", // accent green
	"#8fb89e", // muted green
	"#d88c4a", // warm orange
	"#7a9cb8", // soft blue
	"#b8a89e", // taupe
}
