package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/diagnosis-service/internal/diagnosis"
	"github.com/spec-kit/diagnosis-service/internal/domain"
	"github.com/spec-kit/diagnosis-service/internal/events"
	"github.com/spec-kit/diagnosis-service/internal/persistence"
)

// DiagnosisService fronts the prediction, image analysis, and chatbot
// collaborators. Chat answers are cached in Redis when available.
type DiagnosisService struct {
	predictor  diagnosis.Predictor
	analyzer   diagnosis.ImageAnalyzer
	chatbot    diagnosis.Chatbot
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DiagnosisDependencies bundles collaborator implementations.
type DiagnosisDependencies struct {
	Predictor  diagnosis.Predictor
	Analyzer   diagnosis.ImageAnalyzer
	Chatbot    diagnosis.Chatbot
	Cache      *persistence.Redis
	CacheTTL   time.Duration
	Dispatcher events.Dispatcher
}

// NewDiagnosisService builds the service.
func NewDiagnosisService(deps DiagnosisDependencies, logger *zap.Logger) *DiagnosisService {
	return &DiagnosisService{
		predictor:  deps.Predictor,
		analyzer:   deps.Analyzer,
		chatbot:    deps.Chatbot,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Predict runs the symptom classifier.
func (s *DiagnosisService) Predict(ctx context.Context, symptoms []string) (*domain.DiagnosisResult, error) {
	result, err := s.predictor.Predict(ctx, symptoms)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		top := ""
		if len(result.Predictions) > 0 {
			top = result.Predictions[0].Disease
		}
		s.dispatcher.Publish(ctx, events.New(events.EventDiagnosisRequested, "", events.DiagnosisRequestedPayload{
			SymptomCount: len(symptoms),
			TopDisease:   top,
		}))
	}
	return result, nil
}

// AnalyzeImage runs the image analyzer.
func (s *DiagnosisService) AnalyzeImage(ctx context.Context, filename string, data []byte) (*domain.ImageResult, error) {
	return s.analyzer.Analyze(ctx, filename, data)
}

// Chat answers a health question, serving repeated questions from the
// cache. Cache failures degrade to computing the answer.
func (s *DiagnosisService) Chat(ctx context.Context, question string) (*domain.ChatAnswer, error) {
	key := chatCacheKey(question)

	if s.cache != nil && s.cache.Client != nil {
		if cached, err := s.cache.Client.Get(ctx, key).Bytes(); err == nil {
			var answer domain.ChatAnswer
			if err := json.Unmarshal(cached, &answer); err == nil {
				return &answer, nil
			}
		}
	}

	answer, err := s.chatbot.Answer(ctx, question)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.Client != nil {
		if data, err := json.Marshal(answer); err == nil {
			if err := s.cache.Client.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				s.logger.Debug("chat cache write failed", zap.Error(err))
			}
		}
	}
	return answer, nil
}

func chatCacheKey(question string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(question))))
	return "chat:answer:" + hex.EncodeToString(sum[:])
}
