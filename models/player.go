package models

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Player is one roster row. Name is the unique key and is immutable after
// registration (photo files are keyed by it). All optional fields use the
// empty string as the unset state, matching the roster file format.
type Player struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday,omitempty"` // YYYY-MM-DD or empty
	Age      string `json:"age,omitempty"`      // derived from Birthday when present; stored value is a fallback only
	Height   string `json:"height,omitempty"`   // cm
	Gender   Gender `json:"gender,omitempty"`
	Weight   string `json:"weight,omitempty"` // kg
}
