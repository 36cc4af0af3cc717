package guardrails

import "regexp"

const (
	redirectToQuestion = "Let's focus on the interview questions. Could you please answer the current question?"
	redirectOnTopic    = "I understand, but let's stay focused on the interview. Please answer the current question."
	redirectNoHints    = "I can guide you through the problem, but I cannot provide direct answers. Let me ask you: what approach would you consider for this problem?"
	neutralContinue    = "Thank you for your response. Let's continue with the next question."
	professionalPivot  = "Thank you for your attempt. Let's explore this from a different angle"
)

// Input rules in priority order: system-information probes first, then
// off-topic diversions, then hint extraction.
func defaultInputRules() []inputRule {
	return []inputRule{
		{
			name: "prevent_system_info_extraction",
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)what\s+(model|llm|ai|gpt|api)`),
				regexp.MustCompile(`(?i)tell\s+me\s+about\s+(your|the)\s+(system|implementation|architecture)`),
				regexp.MustCompile(`(?i)how\s+(are|do)\s+you\s+(built|implemented|work)`),
				regexp.MustCompile(`(?i)what\s+(api|service|backend)`),
				regexp.MustCompile(`(?i)reveal\s+(the|your)\s+(prompt|instructions|score|scoring)`),
				regexp.MustCompile(`(?i)show\s+me\s+(the|my)\s+(score|result|feedback)`),
				regexp.MustCompile(`(?i)what\s+is\s+my\s+(score|grade|rating)`),
				regexp.MustCompile(`(?i)debug|developer\s+mode|system\s+prompt`),
			},
			reason:      "Attempted to extract system information",
			replacement: redirectToQuestion,
		},
		{
			name: "keep_on_topic",
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)tell\s+me\s+a\s+(joke|story)`),
				regexp.MustCompile(`(?i)what\s+do\s+you\s+think\s+about\s+(politics|religion|sports)`),
				regexp.MustCompile(`(?i)let's\s+talk\s+about\s+something\s+else`),
				regexp.MustCompile(`(?i)change\s+the\s+(topic|subject)`),
				regexp.MustCompile(`(?i)can\s+we\s+discuss`),
				regexp.MustCompile(`(?i)forget\s+about\s+the\s+interview`),
			},
			reason:      "Attempted to divert from interview",
			replacement: redirectOnTopic,
		},
		{
			name: "prevent_hint_extraction",
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)give\s+me\s+(the\s+)?(answer|solution|hint|clue)`),
				regexp.MustCompile(`(?i)what's\s+the\s+(answer|solution)`),
				regexp.MustCompile(`(?i)tell\s+me\s+the\s+(answer|solution)`),
				regexp.MustCompile(`(?i)can\s+you\s+(solve|answer)\s+(it|this)\s+for\s+me`),
				regexp.MustCompile(`(?i)just\s+tell\s+me`),
				regexp.MustCompile(`(?i)i\s+don't\s+know.*help`),
			},
			reason:      "Attempted to extract hints or answers",
			replacement: redirectNoHints,
		},
	}
}

// Output rules: scoring leakage replaces the whole message, unprofessional
// tone rewrites only the matched phrase.
func defaultOutputRules() []outputRule {
	return []outputRule{
		{
			name: "prevent_scoring_leak",
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)your?\s+score\s+(is|was)`),
				regexp.MustCompile(`(?i)you\s+(scored|got|achieved)`),
				regexp.MustCompile(`\d+\s*(/|out\s+of)\s*\d+`),
				regexp.MustCompile(`(?i)\d+\s*(%|percent|points)`),
				regexp.MustCompile(`(?i)(passed|failed)\s+the\s+(test|interview)`),
				regexp.MustCompile(`(?i)performance\s+(was|is)\s+(good|bad|average|excellent|poor)`),
				regexp.MustCompile(`(?i)evaluation|assessment|grade|rating`),
			},
			reason:      "Output contains scoring information",
			replacement: neutralContinue,
		},
		{
			name: "maintain_professional_tone",
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)that's\s+(wrong|incorrect|bad)`),
				regexp.MustCompile(`(?i)you're\s+not\s+getting\s+it`),
				regexp.MustCompile(`(?i)terrible|awful|horrible`),
				regexp.MustCompile(`(?i)you\s+should\s+know\s+this`),
				regexp.MustCompile(`(?i)obviously|clearly\s+wrong`),
			},
			reason:     "Output contains unprofessional language",
			substitute: professionalPivot,
		},
	}
}
