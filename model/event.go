package model

// Event is a weekly schedule entry. SongID is expected to reference a Song
// but is never validated.
type Event struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Time   string `json:"time"` // "HH:MM"
	Day    string `json:"day"`  // weekday label as entered in the UI
	SongID string `json:"songId"`
}
