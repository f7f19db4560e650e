package model

// PanicStatus is the delivery state of the latest panic broadcast.
type PanicStatus string

const (
	PanicNone    PanicStatus = "NONE"
	PanicNew     PanicStatus = "NEW"     // raised, not yet seen by any device
	PanicPending PanicStatus = "PENDING" // handed to exactly one device
)

// PanicRecord is the single shared panic slot. Only Status is set when the
// record is reported as NONE.
type PanicRecord struct {
	Filename  string      `json:"filename,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"` // ISO-8601
	Status    PanicStatus `json:"status"`
}

// NoPanic is what pollers see when there is nothing new to play.
func NoPanic() PanicRecord {
	return PanicRecord{Status: PanicNone}
}
