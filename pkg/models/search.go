package models

// DocumentRef identifies the document a match came from.
type DocumentRef struct {
	ID string `json:"_id"`
}

// QueryMatch is one ranked result from a semantic query.
type QueryMatch struct {
	Chunk    string      `json:"chunk"`
	Path     string      `json:"path"`
	Score    float64     `json:"score"`
	Document DocumentRef `json:"document"`
}

// QueryResponse holds the matches for a semantic query, ranked by
// descending score. The ranking is the server's; the client never re-sorts.
type QueryResponse struct {
	Matches []QueryMatch `json:"matches"`
}

// NewQueryResponse wraps a raw ranked match list. An empty or nil list is
// valid and yields an empty response.
func NewQueryResponse(matches []QueryMatch) *QueryResponse {
	if matches == nil {
		matches = []QueryMatch{}
	}
	return &QueryResponse{Matches: matches}
}

func (r *QueryResponse) Len() int {
	return len(r.Matches)
}

// First returns the top-ranked match, or false if there are no matches.
func (r *QueryResponse) First() (QueryMatch, bool) {
	if len(r.Matches) == 0 {
		return QueryMatch{}, false
	}
	return r.Matches[0], true
}
