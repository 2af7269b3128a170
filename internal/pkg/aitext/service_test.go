package aitext

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var testSchool = School{
	Name:    "Queen Marvellous College",
	Address: "Pastor Tihunnu Street, Ikoga Zebbe, Ikoga Badagry",
	Town:    "Ikoga Badagry",
	Phone:   "07015002169",
	Values:  []string{"Excellence", "Integrity", "Innovation"},
}

func stub(text string, err error) (Generator, *[]Request) {
	var calls []Request
	return GeneratorFunc(func(_ context.Context, req Request) (string, error) {
		calls = append(calls, req)
		return text, err
	}), &calls
}

func TestGetDailyQuote(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
		want Quote
	}{
		{"valid", `{"quote":"Learn always.","author":"Ada"}`, nil, Quote{Quote: "Learn always.", Author: "Ada"}},
		{"transport error", "", errors.New("unreachable"), FallbackQuote},
		{"not json", "Learn always. - Ada", nil, FallbackQuote},
		{"missing author", `{"quote":"Learn always."}`, nil, FallbackQuote},
		{"empty object", `{}`, nil, FallbackQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, calls := stub(tt.text, tt.err)
			svc := NewService(gen, time.Second, testSchool, zerolog.Nop())

			assert.Equal(t, tt.want, svc.GetDailyQuote(context.Background()))
			require.Len(t, *calls, 1, "exactly one attempt")
			assert.Equal(t, []string{"quote", "author"}, (*calls)[0].JSONFields)
		})
	}
}

func TestGetDailyQuote_NoGenerator(t *testing.T) {
	svc := NewService(nil, 0, testSchool, zerolog.Nop())
	assert.Equal(t, FallbackQuote, svc.GetDailyQuote(context.Background()))
}

func TestGetAdmissionChatResponse(t *testing.T) {
	gen, calls := stub("Welcome! JSS 1 admission is open.", nil)
	svc := NewService(gen, time.Second, testSchool, zerolog.Nop())

	answer := svc.GetAdmissionChatResponse(context.Background(), "Is JSS 1 open?")
	assert.Equal(t, "Welcome! JSS 1 admission is open.", answer)

	require.Len(t, *calls, 1)
	req := (*calls)[0]
	assert.Contains(t, req.Prompt, `"Is JSS 1 open?"`)
	assert.Contains(t, req.Prompt, "Queen Marvellous College Admissions")
	assert.Contains(t, req.SystemInstruction, "Excellence, Integrity, and Innovation")
	assert.Contains(t, req.SystemInstruction, "Phone: 07015002169")
}

func TestGetAdmissionChatResponse_Fallbacks(t *testing.T) {
	ctx := context.Background()

	gen, _ := stub("", errors.New("timeout"))
	svc := NewService(gen, time.Second, testSchool, zerolog.Nop())
	assert.Equal(t,
		"Our admissions team at Ikoga Badagry will get back to you shortly. You can reach us at 07015002169.",
		svc.GetAdmissionChatResponse(ctx, "hello"))

	gen, _ = stub("   ", nil)
	svc = NewService(gen, time.Second, testSchool, zerolog.Nop())
	assert.Equal(t,
		"I'm sorry, I couldn't process your request. Please contact our front desk at 07015002169.",
		svc.GetAdmissionChatResponse(ctx, "hello"))

	gen, _ = stub("", ErrEmptyResponse)
	svc = NewService(gen, time.Second, testSchool, zerolog.Nop())
	assert.True(t, strings.HasPrefix(svc.GetAdmissionChatResponse(ctx, "hello"), "I'm sorry"))
}

func TestCall_AppliesTimeout(t *testing.T) {
	gen := GeneratorFunc(func(ctx context.Context, _ Request) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	svc := NewService(gen, 20*time.Millisecond, testSchool, zerolog.Nop())

	start := time.Now()
	assert.Equal(t, FallbackQuote, svc.GetDailyQuote(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(Request{Prompt: "p", SystemInstruction: "sys", JSONFields: []string{"quote", "author"}})
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.ResponseSchema)
	assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Type)
	assert.Contains(t, cfg.ResponseSchema.Properties, "quote")
	assert.Equal(t, []string{"quote", "author"}, cfg.ResponseSchema.Required)
	require.NotNil(t, cfg.SystemInstruction)

	plain := buildConfig(Request{Prompt: "p"})
	assert.Empty(t, plain.ResponseMIMEType)
	assert.Nil(t, plain.SystemInstruction)
}
