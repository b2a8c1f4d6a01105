package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance(t *testing.T) {
	testCases := []struct {
		name        string
		from        Step
		to          Step
		expectError bool
	}{
		{name: "hero to questions", from: StepHero, to: StepQuestions},
		{name: "questions to contact", from: StepQuestions, to: StepContact},
		{name: "contact to results", from: StepContact, to: StepResults},
		{name: "no backward transition", from: StepContact, to: StepQuestions, expectError: true},
		{name: "no skipping", from: StepHero, to: StepContact, expectError: true},
		{name: "results is terminal", from: StepResults, to: StepHero, expectError: true},
		{name: "unknown step", from: Step("review"), to: StepResults, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Advance(tc.from, tc.to)

			if tc.expectError {
				require.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNext(t *testing.T) {
	next, err := Next(StepHero)
	require.NoError(t, err)
	assert.Equal(t, StepQuestions, next)

	_, err = Next(StepResults)
	require.ErrorIs(t, err, ErrInvalidTransition)

	assert.True(t, StepHero.Valid())
	assert.False(t, Step("summary").Valid())
}

// stubGenerator implements Generator for tests.
type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func TestGenerate(t *testing.T) {
	answers := Answers{
		Industry:   "Retail",
		TeamSize:   "50-100",
		DataUsage:  "spreadsheets",
		Goals:      "automate forecasting",
		Challenges: "data silos",
	}
	contact := Contact{Name: "Sam", Email: "sam@example.com", Company: "Samco"}

	testCases := []struct {
		name             string
		gen              Generator
		expectedFallback bool
		expectedText     string
	}{
		{
			name:         "success stores generated text",
			gen:          &stubGenerator{text: "Your readiness summary."},
			expectedText: "Your readiness summary.",
		},
		{
			name:             "generation error falls back",
			gen:              &stubGenerator{err: errors.New("backend down")},
			expectedFallback: true,
		},
		{
			name:             "blank generation output falls back",
			gen:              &stubGenerator{text: "   "},
			expectedFallback: true,
		},
		{
			name:             "nil generator falls back",
			gen:              nil,
			expectedFallback: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := Generate(context.Background(), tc.gen, answers, contact)

			assert.Equal(t, tc.expectedFallback, out.Fallback)
			assert.NotEmpty(t, out.Text, "results step always gets a non-empty text")

			if tc.expectedFallback {
				assert.Equal(t, FallbackText, out.Text)
			} else {
				assert.Equal(t, tc.expectedText, out.Text)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(
		Answers{Industry: "Retail", TeamSize: "10", DataUsage: "none", Goals: "grow", Challenges: "skills"},
		Contact{Name: "Sam", Email: "sam@example.com", Company: "Samco"},
	)

	assert.Contains(t, prompt, "Industry: Retail")
	assert.Contains(t, prompt, "Company: Samco")
	assert.Contains(t, prompt, "Contact: Sam")
	assert.NotContains(t, prompt, "sam@example.com", "email is not leaked into the prompt")
}
