package aitext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const quotePrompt = "Generate an inspiring, short educational quote for high school students. Return the quote and the author as a JSON object."

// FallbackQuote is served whenever the model cannot produce a usable quote.
var FallbackQuote = Quote{
	Quote:  "The beautiful thing about learning is that no one can take it away from you.",
	Author: "B.B. King",
}

// Quote is the structured answer of GetDailyQuote.
type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// School is the fixed identity the chat assistant answers for.
type School struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Town    string   `json:"town"`
	Phone   string   `json:"phone"`
	Values  []string `json:"values"`
}

// Service asks the model once per call and substitutes a fixed answer on any
// failure, so callers never see an error.
type Service struct {
	gen     Generator
	timeout time.Duration
	school  School
	logger  zerolog.Logger
}

// NewService creates the service. A nil generator always falls back.
func NewService(gen Generator, timeout time.Duration, school School, logger zerolog.Logger) *Service {
	return &Service{gen: gen, timeout: timeout, school: school, logger: logger}
}

func (s *Service) call(ctx context.Context, req Request) (string, error) {
	if s.gen == nil {
		return "", fmt.Errorf("no text generator configured")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.gen.Generate(ctx, req)
}

// GetDailyQuote returns a model-generated quote or FallbackQuote.
func (s *Service) GetDailyQuote(ctx context.Context) Quote {
	text, err := s.call(ctx, Request{Prompt: quotePrompt, JSONFields: []string{"quote", "author"}})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Quote generation failed, using fallback")
		return FallbackQuote
	}

	var q Quote
	if err := json.Unmarshal([]byte(text), &q); err != nil {
		s.logger.Warn().Err(err).Msg("Quote response was not valid JSON, using fallback")
		return FallbackQuote
	}
	q.Quote = strings.TrimSpace(q.Quote)
	q.Author = strings.TrimSpace(q.Author)
	if q.Quote == "" || q.Author == "" {
		s.logger.Warn().Msg("Quote response missing fields, using fallback")
		return FallbackQuote
	}
	return q
}

// GetAdmissionChatResponse answers a prospective student or parent.
func (s *Service) GetAdmissionChatResponse(ctx context.Context, query string) string {
	text, err := s.call(ctx, Request{
		Prompt:            s.chatPrompt(query),
		SystemInstruction: s.systemInstruction(),
	})
	if errors.Is(err, ErrEmptyResponse) || (err == nil && strings.TrimSpace(text) == "") {
		return s.EmptyAnswer()
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Chat generation failed, using fallback")
		return s.FallbackAnswer()
	}
	return text
}

func (s *Service) chatPrompt(query string) string {
	return fmt.Sprintf("You are an AI assistant for %s Admissions. Answer the following student/parent query warmly: %q", s.school.Name, query)
}

func (s *Service) systemInstruction() string {
	values := s.school.Values
	var valueText string
	switch len(values) {
	case 0:
	case 1:
		valueText = values[0]
	default:
		valueText = strings.Join(values[:len(values)-1], ", ") + ", and " + values[len(values)-1]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You represent %s, a prestigious and welcoming institution located at %s.", s.school.Name, s.school.Address)
	if valueText != "" {
		fmt.Fprintf(&b, " Our core values are %s.", valueText)
	}
	b.WriteString("\nIf anyone asks for contact details:\n")
	fmt.Fprintf(&b, "- Address: %s.\n", s.school.Address)
	fmt.Fprintf(&b, "- Phone: %s.\n", s.school.Phone)
	b.WriteString("Be professional, helpful, and encourage them to visit our campus.")
	return b.String()
}

// EmptyAnswer is returned when the model replies with no text.
func (s *Service) EmptyAnswer() string {
	return fmt.Sprintf("I'm sorry, I couldn't process your request. Please contact our front desk at %s.", s.school.Phone)
}

// FallbackAnswer is returned when the model cannot be reached.
func (s *Service) FallbackAnswer() string {
	return fmt.Sprintf("Our admissions team at %s will get back to you shortly. You can reach us at %s.", s.school.Town, s.school.Phone)
}
