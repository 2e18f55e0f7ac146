package dto

// PredictRequest carries the reported symptoms.
type PredictRequest struct {
	Symptoms []string `json:"symptoms"`
}

// ChatRequest carries a health question.
type ChatRequest struct {
	Question string `json:"question"`
}
