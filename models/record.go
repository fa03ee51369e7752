package models

type WinIndicator string

const (
	WinWon  WinIndicator = "W"
	WinLost WinIndicator = "L"
	// WinUnknown is the absent state: the field was blank in the source
	// file and stays blank on rewrite.
	WinUnknown WinIndicator = ""
)

// GameRecord is one practice game entry. ID is assigned once at creation
// and never reused. AccuracyPct is derived from ShotsAttempted/ShotsMade
// on every save and must not be trusted from user input.
type GameRecord struct {
	ID             string       `json:"record_id"`
	Date           string       `json:"date"` // YYYY-MM-DD; kept as text so unparseable historical values survive round-trips
	PlayerName     string       `json:"player"`
	ShotsAttempted int          `json:"shots_attempted"`
	ShotsMade      int          `json:"shots_made"`
	Won            WinIndicator `json:"won"`
	AccuracyPct    float64      `json:"accuracy_pct"`
}
