package sentiment

import (
	"fmt"
	"time"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

type TypingPatterns struct {
	SuddenCopyPaste bool `json:"sudden_copy_paste"`
	UnusualSpeed    bool `json:"unusual_speed"`
}

// Signals bundles the behavior signals collected by the client between two
// analysis points.
type Signals struct {
	TabSwitches          int             `json:"tab_switches"`
	BackgroundNoiseLevel float64         `json:"background_noise_level"` // [0,1]
	EyeGazeDeviation     float64         `json:"eye_gaze_deviation"`     // [0,1]
	Typing               *TypingPatterns `json:"typing_patterns,omitempty"`
}

type Report struct {
	HasSuspiciousBehavior bool                  `json:"has_suspicious_behavior"`
	Flags                 []models.CheatingFlag `json:"flags"`
	RiskLevel             models.Severity       `json:"risk_level"`
}

// AnalyzeCheatingSignals maps raw behavior signals to flags and an overall
// risk level. Pure: same signals, same report.
func AnalyzeCheatingSignals(s Signals, at time.Time) Report {
	var flags []models.CheatingFlag

	if s.TabSwitches > 0 {
		severity := models.SeverityMedium
		if s.TabSwitches > 2 {
			severity = models.SeverityHigh
		}
		flags = append(flags, models.CheatingFlag{
			Type:        models.FlagTabSwitch,
			Severity:    severity,
			Timestamp:   at,
			Description: fmt.Sprintf("Tab switched %d time(s)", s.TabSwitches),
		})
	}

	if s.BackgroundNoiseLevel > 0.7 {
		flags = append(flags, models.CheatingFlag{
			Type:        models.FlagSuspiciousAudio,
			Severity:    models.SeverityMedium,
			Timestamp:   at,
			Description: "High background noise detected, possible consultation",
		})
	}

	if s.EyeGazeDeviation > 0.6 {
		flags = append(flags, models.CheatingFlag{
			Type:        models.FlagSuspiciousGaze,
			Severity:    models.SeverityLow,
			Timestamp:   at,
			Description: "Frequent gaze deviation from screen",
		})
	}

	if s.Typing != nil {
		if s.Typing.SuddenCopyPaste {
			flags = append(flags, models.CheatingFlag{
				Type:        models.FlagCopyPaste,
				Severity:    models.SeverityMedium,
				Timestamp:   at,
				Description: "Sudden code paste detected",
			})
		}
		if s.Typing.UnusualSpeed {
			flags = append(flags, models.CheatingFlag{
				Type:        models.FlagUnusualTyping,
				Severity:    models.SeverityLow,
				Timestamp:   at,
				Description: "Unusually fast typing detected",
			})
		}
	}

	return Report{
		HasSuspiciousBehavior: len(flags) > 0,
		Flags:                 flags,
		RiskLevel:             riskLevel(flags),
	}
}

func riskLevel(flags []models.CheatingFlag) models.Severity {
	high, medium := 0, 0
	for _, f := range flags {
		switch f.Severity {
		case models.SeverityHigh:
			high++
		case models.SeverityMedium:
			medium++
		}
	}

	if high > 0 || medium >= 2 {
		return models.SeverityHigh
	}
	if medium == 1 {
		return models.SeverityMedium
	}
	return models.SeverityLow
}
