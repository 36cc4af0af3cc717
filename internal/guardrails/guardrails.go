package guardrails

import (
	"errors"
	"regexp"
	"strings"
)

// Verdict is the outcome of one guardrail check. A tripped rule is not an
// error: the caller substitutes Replacement into the message stream and
// carries on.
type Verdict struct {
	Safe        bool   `json:"safe"`
	Rule        string `json:"rule,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Replacement string `json:"replacement,omitempty"`
}

var ErrEmptyText = errors.New("guardrails: empty text")

type inputRule struct {
	name        string
	patterns    []*regexp.Regexp
	reason      string
	replacement string
}

type outputRule struct {
	name     string
	patterns []*regexp.Regexp
	reason   string
	// replacement substitutes the whole message; substitute rewrites only
	// the offending phrase.
	replacement string
	substitute  string
}

// Engine applies the fixed interview policy rule set to text crossing the
// candidate boundary. Matching is case-insensitive regexp over the single
// text being checked; there is no cross-message state.
type Engine struct {
	inputRules  []inputRule
	outputRules []outputRule
}

func NewEngine() *Engine {
	return &Engine{
		inputRules:  defaultInputRules(),
		outputRules: defaultOutputRules(),
	}
}

// CheckInput screens candidate text. Rules run in fixed priority order and
// the first match wins.
func (e *Engine) CheckInput(text string) (Verdict, error) {
	if strings.TrimSpace(text) == "" {
		return Verdict{}, ErrEmptyText
	}

	for _, rule := range e.inputRules {
		for _, p := range rule.patterns {
			if p.MatchString(text) {
				return Verdict{
					Safe:        false,
					Rule:        rule.name,
					Reason:      rule.reason,
					Replacement: rule.replacement,
				}, nil
			}
		}
	}

	return Verdict{Safe: true}, nil
}

// CheckOutput screens interviewer text before it is sent. Leak rules replace
// the entire message; tone rules rewrite only the matched phrase, so the
// sanitized text passes a second check.
func (e *Engine) CheckOutput(text string) (Verdict, error) {
	if strings.TrimSpace(text) == "" {
		return Verdict{}, ErrEmptyText
	}

	for _, rule := range e.outputRules {
		for _, p := range rule.patterns {
			if !p.MatchString(text) {
				continue
			}

			replacement := rule.replacement
			if rule.substitute != "" {
				replacement = p.ReplaceAllString(text, rule.substitute)
			}

			return Verdict{
				Safe:        false,
				Rule:        rule.name,
				Reason:      rule.reason,
				Replacement: replacement,
			}, nil
		}
	}

	return Verdict{Safe: true}, nil
}
