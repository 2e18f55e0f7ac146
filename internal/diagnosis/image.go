package diagnosis

import (
	"context"
	"sort"
	"strings"

	"github.com/spec-kit/diagnosis-service/internal/domain"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// ImageAnalyzer produces ranked conditions for an uploaded medical
// image. The bundled implementation is a heuristic stand-in for a CNN.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, filename string, data []byte) (*domain.ImageResult, error)
}

type imageCondition struct {
	name        string
	description string
}

var imageConditions = map[string]imageCondition{
	"pneumonia":    {name: "Pneumonia", description: "Inflammation of the lungs, typically caused by bacterial or viral infection."},
	"normal":       {name: "Normal", description: "No significant abnormalities detected in the medical image."},
	"fracture":     {name: "Fracture", description: "A break or crack in bone structure visible on radiographic imaging."},
	"tumor":        {name: "Tumor", description: "Abnormal growth of tissue that may be benign or malignant."},
	"inflammation": {name: "Inflammation", description: "Signs of inflammatory response in tissue or organs."},
}

var imageRecommendations = []string{
	"Consult with a qualified radiologist for professional interpretation",
	"Consider additional imaging or tests if symptoms persist",
	"Follow up with your healthcare provider to discuss results",
}

type mockImageAnalyzer struct{}

// NewMockImageAnalyzer returns the filename-heuristic analyzer.
func NewMockImageAnalyzer() ImageAnalyzer {
	return &mockImageAnalyzer{}
}

// Analyze picks a primary condition from filename keywords and fills in
// two runner-up rows, mirroring the shape a real classifier would emit.
func (a *mockImageAnalyzer) Analyze(_ context.Context, filename string, data []byte) (*domain.ImageResult, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("no image file provided", nil)
	}

	name := strings.ToLower(filename)
	primary := imageConditions["normal"]
	confidence := 85
	switch {
	case strings.Contains(name, "pneumonia") || strings.Contains(name, "lung"):
		primary = imageConditions["pneumonia"]
		confidence = 87
	case strings.Contains(name, "fracture") || strings.Contains(name, "break"):
		primary = imageConditions["fracture"]
		confidence = 92
	case strings.Contains(name, "tumor") || strings.Contains(name, "mass"):
		primary = imageConditions["tumor"]
		confidence = 78
	}

	predictions := []domain.ImagePrediction{
		{
			Condition:   primary.name,
			Confidence:  confidence,
			Description: primary.description,
		},
		{
			Condition:   "Normal",
			Confidence:  maxInt(20, 100-confidence-10),
			Description: "No significant abnormalities detected.",
		},
		{
			Condition:   "Inflammation",
			Confidence:  maxInt(15, 100-confidence-25),
			Description: "Signs of inflammatory response in tissue.",
		},
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})

	return &domain.ImageResult{
		Predictions:      predictions,
		Recommendations:  imageRecommendations,
		ProcessingTimeMS: 3500,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
