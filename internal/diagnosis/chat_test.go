package diagnosis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnswer_KnowledgeBaseKeyword(t *testing.T) {
	t.Parallel()

	chatbot := NewKeywordChatbot()
	answer, err := chatbot.Answer(context.Background(), "What causes a fever?")
	require.NoError(t, err)
	require.Contains(t, answer.Answer, "temporary increase in body temperature")
	require.Contains(t, answer.Answer, "consult healthcare professionals")
	require.Equal(t, 85, answer.Confidence)
	require.Equal(t, []string{"Medical Knowledge Base"}, answer.Sources)
}

func TestAnswer_TopicOverrides(t *testing.T) {
	t.Parallel()

	chatbot := NewKeywordChatbot()
	cases := map[string]string{
		"my back hurts a lot":          "Pain can have many causes",
		"what diet should I follow":    "A balanced diet includes",
		"how much exercise do I need?": "Regular physical activity",
	}
	for question, fragment := range cases {
		answer, err := chatbot.Answer(context.Background(), question)
		require.NoError(t, err)
		require.True(t, strings.Contains(answer.Answer, fragment), "question %q", question)
	}
}

func TestAnswer_FirstKeywordWins(t *testing.T) {
	t.Parallel()

	chatbot := NewKeywordChatbot()
	// Mentions both "flu" and "fever"; the earlier knowledge base entry
	// must win on every run.
	answer, err := chatbot.Answer(context.Background(), "does the flu cause a fever?")
	require.NoError(t, err)
	require.Contains(t, answer.Answer, "temporary increase in body temperature")
}

func TestAnswer_UnknownTopicFallsBack(t *testing.T) {
	t.Parallel()

	chatbot := NewKeywordChatbot()
	answer, err := chatbot.Answer(context.Background(), "tell me about quasars")
	require.NoError(t, err)
	require.Contains(t, answer.Answer, "educational purposes only")
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	t.Parallel()

	chatbot := NewKeywordChatbot()
	_, err := chatbot.Answer(context.Background(), "   ")
	require.Error(t, err)
}
