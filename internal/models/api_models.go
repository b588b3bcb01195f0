package models

type MatchListResponse struct {
	Matches []MatchSnapshot `json:"matches"`
	Total   int             `json:"total"`
}

type MatchResponse struct {
	Match MatchSnapshot `json:"match"`
}
