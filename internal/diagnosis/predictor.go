package diagnosis

import (
	"context"
	"sort"
	"strings"

	"github.com/spec-kit/diagnosis-service/internal/domain"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// Predictor ranks candidate diseases for a set of reported symptoms.
type Predictor interface {
	Predict(ctx context.Context, symptoms []string) (*domain.DiagnosisResult, error)
}

// diseaseProfile associates a disease with its characteristic symptoms.
type diseaseProfile struct {
	name        string
	description string
	symptoms    []string
}

var diseaseProfiles = []diseaseProfile{
	{
		name:        "Common Cold",
		description: "A viral infection of the upper respiratory tract that is usually harmless and resolves on its own.",
		symptoms:    []string{"runny nose", "sneezing", "sore throat", "cough", "congestion", "mild fever"},
	},
	{
		name:        "Influenza",
		description: "A viral infection that attacks the respiratory system, more severe than a common cold.",
		symptoms:    []string{"fever", "chills", "muscle aches", "fatigue", "cough", "headache", "sore throat"},
	},
	{
		name:        "Migraine",
		description: "A neurological condition characterized by recurrent, severe headaches.",
		symptoms:    []string{"headache", "nausea", "light sensitivity", "sound sensitivity", "visual disturbance"},
	},
	{
		name:        "Gastroenteritis",
		description: "Inflammation of the stomach and intestines, often caused by viral or bacterial infection.",
		symptoms:    []string{"nausea", "vomiting", "diarrhea", "abdominal pain", "fever", "fatigue"},
	},
	{
		name:        "Pneumonia",
		description: "An infection that inflames air sacs in one or both lungs, which may fill with fluid.",
		symptoms:    []string{"cough", "fever", "chest pain", "shortness of breath", "fatigue", "chills"},
	},
	{
		name:        "Bronchitis",
		description: "Inflammation of the bronchial tubes that carry air to the lungs.",
		symptoms:    []string{"cough", "mucus", "wheezing", "chest discomfort", "fatigue", "mild fever"},
	},
	{
		name:        "Sinusitis",
		description: "Inflammation of the sinuses, often following a cold or allergic reaction.",
		symptoms:    []string{"facial pain", "congestion", "headache", "runny nose", "postnasal drip"},
	},
	{
		name:        "Allergic Rhinitis",
		description: "An allergic reaction to airborne substances like pollen, dust, or pet dander.",
		symptoms:    []string{"sneezing", "runny nose", "itchy eyes", "congestion", "watery eyes"},
	},
}

var healthRecommendations = []domain.Recommendation{
	{
		Type:   "Rest & Recovery",
		Advice: "Get adequate sleep (7-9 hours) and avoid strenuous activities to help your body recover.",
	},
	{
		Type:   "Hydration",
		Advice: "Drink plenty of fluids, especially water, herbal teas, and clear broths to stay hydrated.",
	},
	{
		Type:   "Nutrition",
		Advice: "Eat light, nutritious foods rich in vitamins and minerals to support your immune system.",
	},
	{
		Type:   "Medical Care",
		Advice: "Monitor your symptoms and consult a healthcare provider if they worsen or persist.",
	},
}

const topPredictions = 3

type symptomPredictor struct{}

// NewSymptomPredictor returns the bundled keyword-overlap predictor.
func NewSymptomPredictor() Predictor {
	return &symptomPredictor{}
}

// Predict scores every known disease by symptom overlap and returns the
// top three hypotheses with the standing health recommendations.
func (p *symptomPredictor) Predict(_ context.Context, symptoms []string) (*domain.DiagnosisResult, error) {
	if len(symptoms) == 0 {
		return nil, apperrors.NewValidationError("no symptoms provided", nil)
	}

	normalized := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			normalized = append(normalized, s)
		}
	}
	if len(normalized) == 0 {
		return nil, apperrors.NewValidationError("no symptoms provided", nil)
	}

	predictions := make([]domain.Prediction, 0, len(diseaseProfiles))
	for _, profile := range diseaseProfiles {
		matching := matchSymptoms(normalized, profile.symptoms)
		confidence := float64(len(matching)) / float64(len(profile.symptoms)) * 100
		predictions = append(predictions, domain.Prediction{
			Disease:          profile.name,
			Confidence:       round1(confidence),
			Description:      profile.description,
			MatchingSymptoms: matching,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})
	if len(predictions) > topPredictions {
		predictions = predictions[:topPredictions]
	}

	return &domain.DiagnosisResult{
		Predictions:     predictions,
		Recommendations: healthRecommendations,
	}, nil
}

func matchSymptoms(reported, known []string) []string {
	matching := []string{}
	for _, k := range known {
		for _, r := range reported {
			if strings.Contains(k, r) || strings.Contains(r, k) {
				matching = append(matching, k)
				break
			}
		}
	}
	return matching
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
