package model

type ClassifyRequest struct {
	Duration  int  `json:"duration"`
	Divisions int  `json:"divisions"`
	Dots      bool `json:"dots"`
}

type ClassifyResponse struct {
	Type string `json:"type"`
}

type CreateScoreResponse struct {
	Id    string       `json:"id"`
	Score ScoreSummary `json:"score"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
