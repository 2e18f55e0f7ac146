package diagnosis

import (
	"context"
	"strings"

	"github.com/spec-kit/diagnosis-service/internal/domain"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// Chatbot answers free-form health questions.
type Chatbot interface {
	Answer(ctx context.Context, question string) (*domain.ChatAnswer, error)
}

// knowledgeEntry pairs a keyword with its canned response. Entries are
// scanned front to back so a question mentioning several keywords
// always gets the same answer.
type knowledgeEntry struct {
	keyword  string
	response string
}

var medicalKnowledge = []knowledgeEntry{
	{"fever", "Fever is a temporary increase in body temperature, often due to an illness. Common causes include infections, heat exhaustion, certain medications, or inflammatory conditions."},
	{"flu", "Influenza prevention includes annual vaccination, frequent handwashing, avoiding close contact with sick people, and maintaining good health habits."},
	{"diabetes", "Common diabetes symptoms include increased thirst, frequent urination, extreme fatigue, blurred vision, and unexplained weight loss."},
	{"heart", "Maintain heart health through regular exercise, balanced diet, limiting sodium, not smoking, managing stress, and regular check-ups."},
	{"immunity", "Immunity-boosting foods include citrus fruits, garlic, ginger, spinach, yogurt, almonds, turmeric, and green tea."},
	{"water", "General recommendation is about 8 glasses (64 ounces) of water daily, but needs vary based on activity and climate."},
}

const (
	defaultAnswer = "I understand you're asking about a health-related topic. While I can provide general information, please remember that this is for educational purposes only."
	disclaimer    = "\n\nRemember: Always consult healthcare professionals for personalized medical advice."
)

type keywordChatbot struct{}

// NewKeywordChatbot returns the knowledge-base chatbot.
func NewKeywordChatbot() Chatbot {
	return &keywordChatbot{}
}

// Answer matches the question against the knowledge base, falling back
// to topic-level advice for pain, diet, and exercise questions.
func (c *keywordChatbot) Answer(_ context.Context, question string) (*domain.ChatAnswer, error) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return nil, apperrors.NewValidationError("no question provided", nil)
	}

	answer := defaultAnswer
	for _, entry := range medicalKnowledge {
		if strings.Contains(q, entry.keyword) {
			answer = entry.response
			break
		}
	}

	switch {
	case strings.Contains(q, "pain") || strings.Contains(q, "hurt"):
		answer = "Pain can have many causes. For persistent or severe pain, consult with a healthcare provider for proper evaluation and treatment."
	case strings.Contains(q, "diet") || strings.Contains(q, "nutrition"):
		answer = "A balanced diet includes fruits, vegetables, whole grains, lean proteins, and healthy fats. Limit processed foods and excessive sugar."
	case strings.Contains(q, "exercise") || strings.Contains(q, "workout"):
		answer = "Regular physical activity is crucial for health. Aim for at least 150 minutes of moderate-intensity exercise weekly."
	}

	return &domain.ChatAnswer{
		Answer:     answer + disclaimer,
		Confidence: 85,
		Sources:    []string{"Medical Knowledge Base"},
	}, nil
}
