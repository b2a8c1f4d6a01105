// Package assessment implements the AI-readiness assessment wizard control
// flow: a strictly linear step sequence, the answer/contact payloads, and
// the generation call with its canned fallback.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Step names one stage of the wizard.
type Step string

const (
	// StepHero is the landing stage; rendering it creates the session.
	StepHero Step = "hero"
	// StepQuestions collects the fixed answer set. No persistence yet.
	StepQuestions Step = "questions"
	// StepContact collects contact fields before generation.
	StepContact Step = "contact"
	// StepResults renders the generated (or fallback) text. Terminal.
	StepResults Step = "results"
)

// steps is the wizard order. There is no backward transition.
var steps = []Step{StepHero, StepQuestions, StepContact, StepResults}

// ErrInvalidTransition is returned for any move that is not one step
// forward in the wizard order.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// index returns the position of s in the wizard order, -1 for unknown steps.
func index(s Step) int {
	for i, step := range steps {
		if step == s {
			return i
		}
	}

	return -1
}

// Valid reports whether s names a wizard step.
func (s Step) Valid() bool {
	return index(s) >= 0
}

// Next returns the step after s. The results step is terminal and has no
// successor.
func Next(s Step) (Step, error) {
	i := index(s)
	if i < 0 || i == len(steps)-1 {
		return "", ErrInvalidTransition
	}

	return steps[i+1], nil
}

// Advance validates a requested transition: exactly one step forward,
// never backward, never skipping.
func Advance(from, to Step) error {
	next, err := Next(from)
	if err != nil {
		return err
	}

	if next != to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	return nil
}

// Answers is the fixed-shape answer set collected by the questions step.
type Answers struct {
	Industry   string `form:"industry"   validate:"required,max=200"`
	TeamSize   string `form:"team_size"  validate:"required,max=100"`
	DataUsage  string `form:"data_usage" validate:"required"`
	Goals      string `form:"goals"      validate:"required"`
	Challenges string `form:"challenges" validate:"required"`
}

// Contact is the contact field set collected before generation.
type Contact struct {
	Name    string `form:"name"    validate:"required,max=200"`
	Email   string `form:"email"   validate:"required,email,max=255"`
	Company string `form:"company" validate:"max=200"`
}

// FallbackText is the canned result substituted when persistence or
// generation fails. The visitor still reaches the results step; the failure
// is recorded on the response row, not shown as an error.
const FallbackText = "Thank you for completing the AI readiness assessment. " +
	"Based on your answers, our team will prepare a tailored readiness " +
	"summary and reach out to you at the email address you provided within " +
	"one business day."

// BuildPrompt assembles the free-text generation prompt from the answers
// and contact fields.
func BuildPrompt(a Answers, c Contact) string {
	var b strings.Builder

	b.WriteString("Write a concise AI readiness summary for the following company.\n\n")
	fmt.Fprintf(&b, "Company: %s\n", c.Company)
	fmt.Fprintf(&b, "Contact: %s\n", c.Name)
	fmt.Fprintf(&b, "Industry: %s\n", a.Industry)
	fmt.Fprintf(&b, "Team size: %s\n", a.TeamSize)
	fmt.Fprintf(&b, "Current data usage: %s\n", a.DataUsage)
	fmt.Fprintf(&b, "Goals: %s\n", a.Goals)
	fmt.Fprintf(&b, "Challenges: %s\n", a.Challenges)
	b.WriteString("\nAddress the contact by name, list three concrete next steps " +
		"and keep the tone encouraging but realistic.")

	return b.String()
}

// Generator produces text from a prompt. Any failure (transport, non-2xx,
// malformed payload) surfaces as a single error.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Outcome is the result of a wizard run's generation stage.
type Outcome struct {
	Text string
	// Fallback is true when Text is the canned FallbackText.
	Fallback bool
}

// Generate invokes the generator and absorbs every failure into the
// fallback outcome. It never returns an error; the returned flag tells the
// caller which status to record.
func Generate(ctx context.Context, gen Generator, a Answers, c Contact) Outcome {
	if gen == nil {
		return Outcome{Text: FallbackText, Fallback: true}
	}

	text, err := gen.Generate(ctx, BuildPrompt(a, c))
	if err != nil || strings.TrimSpace(text) == "" {
		return Outcome{Text: FallbackText, Fallback: true}
	}

	return Outcome{Text: text}
}
