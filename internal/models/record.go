package models

// Record is one parsed access-log entry. All fields are set by the parser
// and never mutated afterwards. Timestamp stays a string in
// "YYYY-MM-DD HH:MM:SS" form; minute bucketing is a fixed-width prefix cut,
// not a date parse.
type Record struct {
	IP        string
	Timestamp string
	URL       string
	Status    int
	UserAgent string
}
