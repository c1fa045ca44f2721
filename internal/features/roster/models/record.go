package models

// Record is one raw row of an uploaded roster file. Fields stay strings so
// a single bad cell skips only its own row during conversion.
type Record struct {
	Name         string `csv:"name"`
	Score        string `csv:"score"`
	Submissions  string `csv:"submissions"`
	LastActivity string `csv:"last_activity"`
}

// ParseResult reports what an ingestion run produced. Malformed rows are
// filtered and counted, never surfaced as errors to the engine.
type ParseResult struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}
