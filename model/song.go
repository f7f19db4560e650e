package model

// Song is an audio clip that events can play.
type Song struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Filename  string  `json:"filename"`  // blob name under /uploads
	ClipStart float64 `json:"clipStart"` // seconds
	ClipEnd   float64 `json:"clipEnd"`   // seconds
}
