package domain

// Record is an upstream object passed through as decoded, e.g. a full candidate or offer profile.
type Record map[string]any

// Project keeps only the named fields. Unknown names are dropped; no names keeps everything.
func (r Record) Project(fields []string) Record {
	if len(fields) == 0 {
		return r
	}
	out := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

type CandidateSummary struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Emails []string `json:"emails"`
}

type TalentPool struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (p TalentPool) Archived() bool {
	return p.Status == "archived"
}

// TalentPoolScope selects talent pools by status.
type TalentPoolScope string

const (
	TalentPoolsActive   TalentPoolScope = "not_archived"
	TalentPoolsArchived TalentPoolScope = "archived"
	TalentPoolsAll      TalentPoolScope = "all"
)

// Combiners of the candidate search filters.
const (
	CombineIn          = "in"
	CombineNotIn       = "not_in"
	CombineContains    = "contains"
	CombineNotContains = "not_contains"
	CombineHasAllOf    = "has_all_of"
	CombineAllIn       = "all_in"
	CombineHasAny      = "has_any"
	CombineHasNone     = "has_none"
)

// MaxSearchLimit is the largest page the candidate search accepts.
const MaxSearchLimit = 10000
