package sentiment

import (
	"testing"
	"time"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

func TestAnalyzeAudio(t *testing.T) {
	tests := []struct {
		name       string
		features   AudioFeatures
		pace       models.Pace
		tone       models.Tone
		confidence float64
		volume     models.VolumeLevel
	}{
		{
			name: "Steady confident speech",
			features: AudioFeatures{
				SpeechRate:      140,
				FillerWordCount: 1,
				Volume:          0.8,
				Pitch:           150,
				SilenceRatio:    0.1,
			},
			pace:       models.PaceNormal,
			tone:       models.ToneConfident,
			confidence: 0.8, // 0.5 + 0.1 loud + 0.2 steady
			volume:     models.VolumeHigh,
		},
		{
			name: "Nervous filler heavy",
			features: AudioFeatures{
				SpeechRate:      110,
				FillerWordCount: 8,
				Volume:          0.5,
				Pitch:           180,
				SilenceRatio:    0.2,
			},
			pace:       models.PaceNormal,
			tone:       models.ToneNervous,
			confidence: 0.3,
			volume:     models.VolumeNormal,
		},
		{
			name: "Stressed pitch outlier",
			features: AudioFeatures{
				SpeechRate:      170,
				FillerWordCount: 3,
				Volume:          0.5,
				Pitch:           350,
				SilenceRatio:    0.1,
			},
			pace:       models.PaceNormal,
			tone:       models.ToneStressed,
			confidence: 0.4,
			volume:     models.VolumeNormal,
		},
		{
			name: "Slow quiet hesitant",
			features: AudioFeatures{
				SpeechRate:      80,
				FillerWordCount: 0,
				Volume:          0.2,
				Pitch:           120,
				SilenceRatio:    0.5,
			},
			pace:       models.PaceSlow,
			tone:       models.ToneNervous,
			confidence: 0.25, // 0.5 - 0.15 silence - 0.1 volume
			volume:     models.VolumeLow,
		},
		{
			name: "Steady override beats stress penalty",
			features: AudioFeatures{
				SpeechRate:      130,
				FillerWordCount: 0,
				Volume:          0.5,
				Pitch:           320,
				SilenceRatio:    0.1,
			},
			pace:       models.PaceNormal,
			tone:       models.ToneConfident,
			confidence: 0.6, // 0.5 - 0.1 pitch + 0.2 steady
			volume:     models.VolumeNormal,
		},
		{
			name: "Fast speech",
			features: AudioFeatures{
				SpeechRate:      200,
				FillerWordCount: 2,
				Volume:          0.5,
				Pitch:           150,
				SilenceRatio:    0.1,
			},
			pace:       models.PaceFast,
			tone:       models.ToneNeutral,
			confidence: 0.5,
			volume:     models.VolumeNormal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := AnalyzeAudio(test.features)
			if got.Pace != test.pace {
				t.Errorf("Pace: %s, want: %s", got.Pace, test.pace)
			}
			if got.Tone != test.tone {
				t.Errorf("Tone: %s, want: %s", got.Tone, test.tone)
			}
			if diff := got.Confidence - test.confidence; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Confidence: %f, want: %f", got.Confidence, test.confidence)
			}
			if got.Volume != test.volume {
				t.Errorf("Volume: %s, want: %s", got.Volume, test.volume)
			}
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("Confidence %f outside [0,1]", got.Confidence)
			}
		})
	}
}

func TestAnalyzeFace(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		faceCount int
		flagType  models.FlagType
		detected  bool
	}{
		{name: "No face", faceCount: 0, flagType: models.FlagNoFace, detected: false},
		{name: "One face", faceCount: 1, detected: true},
		{name: "Two faces", faceCount: 2, flagType: models.FlagMultipleFaces, detected: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			facial, flags := AnalyzeFace(FaceFeatures{FaceCount: test.faceCount}, now)
			if facial.Detected != test.detected {
				t.Errorf("Detected: %v, want: %v", facial.Detected, test.detected)
			}
			if test.flagType == "" {
				if len(flags) != 0 {
					t.Errorf("expected no flags, got %v", flags)
				}
				return
			}
			if len(flags) != 1 {
				t.Fatalf("expected 1 flag, got %d", len(flags))
			}
			if flags[0].Type != test.flagType {
				t.Errorf("flag type: %s, want: %s", flags[0].Type, test.flagType)
			}
			if flags[0].Severity != models.SeverityHigh {
				t.Errorf("flag severity: %s, want HIGH", flags[0].Severity)
			}
		})
	}
}

func TestAnalyzeCheatingSignals(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		signals  Signals
		flags    int
		risk     models.Severity
		severity models.Severity // of first flag, when flags > 0
	}{
		{
			name:     "Three tab switches is high",
			signals:  Signals{TabSwitches: 3},
			flags:    1,
			risk:     models.SeverityHigh,
			severity: models.SeverityHigh,
		},
		{
			name:     "One tab switch is medium",
			signals:  Signals{TabSwitches: 1},
			flags:    1,
			risk:     models.SeverityMedium,
			severity: models.SeverityMedium,
		},
		{
			name:    "Two medium flags escalate to high",
			signals: Signals{TabSwitches: 1, BackgroundNoiseLevel: 0.8},
			flags:   2,
			risk:    models.SeverityHigh,
		},
		{
			name:     "Gaze only is low",
			signals:  Signals{EyeGazeDeviation: 0.7},
			flags:    1,
			risk:     models.SeverityLow,
			severity: models.SeverityLow,
		},
		{
			name:    "Copy paste and typing",
			signals: Signals{Typing: &TypingPatterns{SuddenCopyPaste: true, UnusualSpeed: true}},
			flags:   2,
			risk:    models.SeverityMedium,
		},
		{
			name:    "Clean session",
			signals: Signals{},
			flags:   0,
			risk:    models.SeverityLow,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := AnalyzeCheatingSignals(test.signals, now)
			if len(report.Flags) != test.flags {
				t.Fatalf("flags: %d, want: %d", len(report.Flags), test.flags)
			}
			if report.RiskLevel != test.risk {
				t.Errorf("risk: %s, want: %s", report.RiskLevel, test.risk)
			}
			if report.HasSuspiciousBehavior != (test.flags > 0) {
				t.Errorf("HasSuspiciousBehavior: %v", report.HasSuspiciousBehavior)
			}
			if test.flags > 0 && test.severity != "" && report.Flags[0].Severity != test.severity {
				t.Errorf("severity: %s, want: %s", report.Flags[0].Severity, test.severity)
			}
		})
	}
}
