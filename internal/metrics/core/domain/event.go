package domain

import "time"

type EventType string

const (
	EventEntered      EventType = "entered"
	EventProceeded    EventType = "proceeded"
	EventDisqualified EventType = "disqualified"
	EventHired        EventType = "hired"
)

func (t EventType) Valid() bool {
	switch t {
	case EventEntered, EventProceeded, EventDisqualified, EventHired:
		return true
	}
	return false
}

// CandidateEvent is one pipeline transition of a candidate on an offer.
// A zero Timestamp means the upstream value was missing or malformed.
type CandidateEvent struct {
	CandidateID        int64
	CandidateName      string
	OfferID            int64
	StageID            int64
	Type               EventType
	Timestamp          time.Time
	SourceTag          string
	ParticipantID      int64
	ParticipantName    string
	DisqualifyReasonID int64
	TagIDs             []int64
	// Seq is the position in the offer's upstream event stream, across pages.
	Seq int
}

func (e CandidateEvent) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}

type Offer struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (o Offer) Archived() bool {
	return o.Status == "archived"
}

// Stage is a pipeline stage; Position is its index in the offer's pipeline.
type Stage struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Group    string `json:"group,omitempty"`
	Position int    `json:"position"`
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DisqualifyReason struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
