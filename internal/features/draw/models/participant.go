package models

// ParticipantStatus represents the lifecycle state of a participant within a
// drawing session.
type ParticipantStatus string

const (
	StatusEligible  ParticipantStatus = "eligible"
	StatusWinner    ParticipantStatus = "winner"
	StatusWithdrawn ParticipantStatus = "withdrawn"
	StatusRemoved   ParticipantStatus = "removed"
)

// PointsPerEntry is how many score points convert into one weighted entry.
// Participants below this hold zero entries and are excluded from the
// weighted pool.
const PointsPerEntry = 100

// Participant is one member of the drawing roster. Name is the stable
// identity used everywhere; duplicate names are a data-quality error
// upstream, not a recoverable state here.
type Participant struct {
	Name                  string            `json:"name"`
	Score                 int               `json:"score"`
	SubmissionCount       int               `json:"submission_count"`
	LastActivityTimestamp string            `json:"last_activity_timestamp"`
	Status                ParticipantStatus `json:"status"`
	Rank                  int               `json:"rank,omitempty"`
}

// EntryCount converts a participant's score into weighted entries:
// max(0, floor(score/100)). A sub-100 score holds zero entries.
func (p Participant) EntryCount() int {
	if p.Score <= 0 {
		return 0
	}
	return p.Score / PointsPerEntry
}

// TotalEntries sums entry counts over the list.
func TotalEntries(participants []Participant) int {
	total := 0
	for _, p := range participants {
		total += p.EntryCount()
	}
	return total
}
