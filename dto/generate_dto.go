package dto

// GenerateOptionsDTO carries the optional style parameters of a generation
// request. Missing values fall back to the prompt defaults.
type GenerateOptionsDTO struct {
	Tone     string   `json:"tone"`
	Length   string   `json:"length" binding:"omitempty,oneof=short medium long"`
	Audience string   `json:"audience"`
	Keywords []string `json:"keywords"`

	Background string `json:"background"`
	Lighting   string `json:"lighting"`
	Angle      string `json:"angle"`
}
