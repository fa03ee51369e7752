// Package normalize is the single parsing boundary between the flat-file
// stores and the rest of the application. Every value read from or written
// to a store file passes through here, so dirty historical data converges
// toward the canonical representation on successive rewrites.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/lchou/hoopstats/models"
)

const DateLayout = "2006-01-02"

// winTable maps every historical spelling of the win/loss field to its
// canonical token. The file format went through emoji+word pairs, plain
// words, booleans and finally the single-letter code.
var winTable = map[string]models.WinIndicator{
	"✅ 是":   models.WinWon,
	"❌ 否":   models.WinLost,
	"是":     models.WinWon,
	"否":     models.WinLost,
	"贏球":    models.WinWon,
	"輸球":    models.WinLost,
	"win":   models.WinWon,
	"won":   models.WinWon,
	"loss":  models.WinLost,
	"lost":  models.WinLost,
	"true":  models.WinWon,
	"false": models.WinLost,
	"yes":   models.WinWon,
	"no":    models.WinLost,
	"w":     models.WinWon,
	"l":     models.WinLost,
}

// blank reports whether a raw text field should be treated as absent.
// "nan" and "None" show up in files that round-tripped through dataframe
// tooling and must not be mistaken for real values.
func blank(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || s == "nan" || s == "None"
}

// PlayerName returns the canonical form of a raw player name, or
// ok == false when the field is absent.
func PlayerName(raw string) (string, bool) {
	if blank(raw) {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

// WinIndicator coerces a raw win/loss value to a canonical token. Blank
// stays absent; any unrecognized non-blank value maps to lost rather than
// being rejected, so previously contaminated files remain loadable.
// Idempotent: canonical tokens map to themselves.
func WinIndicator(raw string) models.WinIndicator {
	if blank(raw) {
		return models.WinUnknown
	}
	key := strings.TrimSpace(raw)
	if v, ok := winTable[key]; ok {
		return v
	}
	if v, ok := winTable[strings.ToLower(key)]; ok {
		return v
	}
	return models.WinLost
}

// Count parses a raw shot count. Malformed input coerces to 0 rather than
// failing the row. Values like "10.0" from dataframe round-trips parse as
// their integer part.
func Count(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Date parses a YYYY-MM-DD value. ok == false means the value does not
// parse; callers decide whether that excludes the row (medal grouping) or
// not (the record itself is kept as-is).
func Date(raw string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
