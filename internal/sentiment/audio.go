package sentiment

import (
	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// AudioFeatures are extracted client-side by the realtime channel; the
// analyzer only derives affect from them.
type AudioFeatures struct {
	Volume          float64 `json:"volume"` // [0,1]
	Pitch           float64 `json:"pitch"`  // Hz
	SpeechRate      float64 `json:"speech_rate"` // words per minute
	SilenceRatio    float64 `json:"silence_ratio"` // [0,1]
	FillerWordCount int     `json:"filler_word_count"`
}

// AnalyzeAudio derives pace, tone, and a confidence estimate from audio
// features. The rules are ordered additive adjustments from a 0.5 baseline;
// the steady-speech rule runs last and overrides tone. Keep the order exactly
// as is: reordering changes results.
func AnalyzeAudio(f AudioFeatures) models.AudioSentiment {
	pace := models.PaceNormal
	if f.SpeechRate < 100 {
		pace = models.PaceSlow
	} else if f.SpeechRate > 180 {
		pace = models.PaceFast
	}

	tone := models.ToneNeutral
	confidence := 0.5

	if f.FillerWordCount > 5 {
		tone = models.ToneNervous
		confidence -= 0.2
	}

	if f.Pitch > 300 || f.Pitch < 80 {
		tone = models.ToneStressed
		confidence -= 0.1
	}

	if f.SilenceRatio > 0.4 {
		confidence -= 0.15
		if tone == models.ToneNeutral {
			tone = models.ToneNervous
		}
	}

	if f.Volume < 0.3 {
		confidence -= 0.1
	} else if f.Volume > 0.7 && pace == models.PaceNormal {
		confidence += 0.1
		if tone == models.ToneNeutral {
			tone = models.ToneConfident
		}
	}

	// Steady rate with few fillers wins over everything above.
	if f.SpeechRate >= 120 && f.SpeechRate <= 160 && f.FillerWordCount < 2 {
		confidence += 0.2
		tone = models.ToneConfident
	}

	confidence = clamp01(confidence)

	return models.AudioSentiment{
		Confidence: confidence,
		Pace:       pace,
		Tone:       tone,
		Volume:     volumeLevel(f.Volume),
	}
}

func volumeLevel(volume float64) models.VolumeLevel {
	switch {
	case volume > 0.7:
		return models.VolumeHigh
	case volume < 0.3:
		return models.VolumeLow
	default:
		return models.VolumeNormal
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
