package domain

// Prediction is a single ranked disease hypothesis.
type Prediction struct {
	Disease          string   `json:"disease"`
	Confidence       float64  `json:"confidence"`
	Description      string   `json:"description"`
	MatchingSymptoms []string `json:"matchingSymptoms"`
}

// Recommendation is a generic health advice entry returned alongside
// predictions.
type Recommendation struct {
	Type   string `json:"type"`
	Advice string `json:"advice"`
}

// DiagnosisResult bundles ranked predictions with recommendations.
type DiagnosisResult struct {
	Predictions     []Prediction     `json:"predictions"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ImagePrediction is one ranked condition from image analysis.
type ImagePrediction struct {
	Condition   string `json:"condition"`
	Confidence  int    `json:"confidence"`
	Description string `json:"description"`
}

// ImageResult is the outcome of analyzing a medical image.
type ImageResult struct {
	Predictions      []ImagePrediction `json:"predictions"`
	Recommendations  []string          `json:"recommendations"`
	ProcessingTimeMS int               `json:"processingTime"`
}

// ChatAnswer is the chatbot response to a health question.
type ChatAnswer struct {
	Answer     string   `json:"answer"`
	Confidence int      `json:"confidence"`
	Sources    []string `json:"sources"`
}
