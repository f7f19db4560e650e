package model

// Document is everything the server persists: songs and events, in order.
type Document struct {
	Songs  []Song  `json:"songs"`
	Events []Event `json:"events"`
}

// Clone returns a deep copy; slices are never nil so they encode as [].
func (d *Document) Clone() Document {
	out := Document{
		Songs:  make([]Song, len(d.Songs)),
		Events: make([]Event, len(d.Events)),
	}
	copy(out.Songs, d.Songs)
	copy(out.Events, d.Events)
	return out
}

// FindSong returns the index of the song with id, or -1.
func (d *Document) FindSong(id string) int {
	for i := range d.Songs {
		if d.Songs[i].ID == id {
			return i
		}
	}
	return -1
}

// FindEvent returns the index of the event with id, or -1.
func (d *Document) FindEvent(id string) int {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// SeedDocument is served when nothing has been persisted yet or the persisted
// document cannot be decoded.
func SeedDocument() *Document {
	return &Document{
		Songs: []Song{
			{ID: "s1", Name: "צלצול בוקר לדוגמה", Filename: "morning.mp3", ClipStart: 0.0, ClipEnd: 10.0},
		},
		Events: []Event{
			{ID: "e1", Name: "תחילת יום דוגמה", Time: "08:00", Day: "ראשון", SongID: "s1"},
		},
	}
}
