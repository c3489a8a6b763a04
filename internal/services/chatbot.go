package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"faqbot-backend/internal/config"
	"faqbot-backend/internal/models"
)

type trainingReader interface {
	Recent(ctx context.Context, n int) ([]models.TrainingExample, error)
}

// generator is the model client behind one chatbot incarnation. The system
// prompt is fixed at construction; history and question vary per call.
type generator interface {
	Generate(ctx context.Context, history []models.ChatMessage, question string) (string, error)
	Close() error
}

type generatorFactory func(ctx context.Context, systemPrompt string) (generator, error)

// ChatbotService is the process-wide chat state container. The inner bot
// (model client + conversation memory) is built lazily on first use and
// discarded on Reset, so the next request re-reads training data.
type ChatbotService struct {
	training      trainingReader
	logger        *zap.Logger
	newGen        generatorFactory
	maxTurns      int
	trainingLimit int
	rateChan      chan struct{} // Token bucket

	mu  sync.Mutex
	bot *bot
}

type bot struct {
	gen    generator
	memory []models.ChatMessage // alternating user/assistant
}

func NewChatbotService(cfg *config.Config, training trainingReader, logger *zap.Logger) *ChatbotService {
	concurrent := cfg.GeminiConcurrentReqs
	if concurrent < 1 {
		concurrent = 1
	}
	rateChan := make(chan struct{}, concurrent)
	for i := 0; i < concurrent; i++ {
		rateChan <- struct{}{}
	}

	return &ChatbotService{
		training:      training,
		logger:        logger,
		newGen:        newGeminiFactory(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature),
		maxTurns:      cfg.MemoryMaxTurns,
		trainingLimit: cfg.TrainingContextLimit,
		rateChan:      rateChan,
	}
}

// Ask sends one question to the model with the shared conversation history.
// Model-provider failures are masked: the result carries an apologetic answer
// with SourceFallback instead of an error. Configuration and storage faults
// are returned as errors.
func (s *ChatbotService) Ask(ctx context.Context, question string, sessionID *string) (models.AskResult, error) {
	if err := s.acquireSlot(ctx); err != nil {
		return models.AskResult{}, err
	}
	defer s.releaseSlot()

	s.mu.Lock()
	b, err := s.currentLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return models.AskResult{}, err
	}
	history := append([]models.ChatMessage(nil), b.memory...)
	s.mu.Unlock()

	// session_id is recorded on the log row but does not partition memory:
	// every caller shares the one process-wide history.
	answer, err := b.gen.Generate(ctx, history, question)
	if err != nil {
		s.logger.Warn("model call failed, returning fallback answer", zap.Error(err))
		return models.AskResult{
			Answer: fmt.Sprintf("I apologize, but I encountered an error while processing your question: %v", err),
			Source: models.SourceFallback,
		}, nil
	}

	s.mu.Lock()
	// A reset during the model call discards the turn along with the bot.
	if s.bot == b {
		b.memory = append(b.memory,
			models.ChatMessage{Role: "user", Content: question},
			models.ChatMessage{Role: "assistant", Content: answer},
		)
		if s.maxTurns > 0 && len(b.memory) > 2*s.maxTurns {
			b.memory = b.memory[len(b.memory)-2*s.maxTurns:]
		}
	}
	s.mu.Unlock()

	return models.AskResult{Answer: answer, Source: models.SourceModel}, nil
}

// Reset discards the conversation memory and the model client. Persisted logs
// are unaffected.
func (s *ChatbotService) Reset() error {
	s.mu.Lock()
	b := s.bot
	s.bot = nil
	s.mu.Unlock()

	if b == nil {
		return nil
	}
	if err := b.gen.Close(); err != nil {
		return fmt.Errorf("closing model client: %w", err)
	}
	s.logger.Info("chatbot reset, memory cleared")
	return nil
}

// MemorySummary reports the current memory without side effects; it does not
// trigger lazy construction.
func (s *ChatbotService) MemorySummary() models.MemorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bot == nil {
		return models.MemorySummary{}
	}
	msgs := s.bot.memory
	return models.MemorySummary{
		TotalMessages:     len(msgs),
		ConversationPairs: len(msgs) / 2,
		MemoryBuffer:      renderBuffer(msgs),
	}
}

// Close releases the model client on shutdown.
func (s *ChatbotService) Close() {
	if err := s.Reset(); err != nil {
		s.logger.Warn("failed to close chatbot", zap.Error(err))
	}
}

// currentLocked returns the live bot, building it if absent. Caller holds s.mu.
func (s *ChatbotService) currentLocked(ctx context.Context) (*bot, error) {
	if s.bot != nil {
		return s.bot, nil
	}

	examples, err := s.training.Recent(ctx, s.trainingLimit)
	if err != nil {
		return nil, fmt.Errorf("loading training data: %w", err)
	}

	gen, err := s.newGen(ctx, buildSystemPrompt(examples))
	if err != nil {
		return nil, fmt.Errorf("initializing chatbot: %w", err)
	}

	s.bot = &bot{gen: gen}
	s.logger.Info("chatbot initialized", zap.Int("training_examples", len(examples)))
	return s.bot, nil
}

// acquireSlot blocks until a concurrency slot is available
func (s *ChatbotService) acquireSlot(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for model slot")
	}
}

func (s *ChatbotService) releaseSlot() {
	s.rateChan <- struct{}{}
}
