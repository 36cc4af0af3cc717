package sentiment

import (
	"fmt"
	"time"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// FaceFeatures are supplied pre-extracted by the capability provider; no
// server-side inference happens here.
type FaceFeatures struct {
	FaceCount      int    `json:"face_count"`
	PrimaryEmotion string `json:"primary_emotion,omitempty"`
}

// AnalyzeFace passes sentiment through and raises proctoring flags on face
// count anomalies. Exactly one face is the clean case.
func AnalyzeFace(f FaceFeatures, at time.Time) (models.FacialSentiment, []models.CheatingFlag) {
	var flags []models.CheatingFlag

	switch {
	case f.FaceCount == 0:
		flags = append(flags, models.CheatingFlag{
			Type:        models.FlagNoFace,
			Severity:    models.SeverityHigh,
			Timestamp:   at,
			Description: "No face detected in frame",
		})
	case f.FaceCount > 1:
		flags = append(flags, models.CheatingFlag{
			Type:        models.FlagMultipleFaces,
			Severity:    models.SeverityHigh,
			Timestamp:   at,
			Description: fmt.Sprintf("%d faces detected in frame", f.FaceCount),
		})
	}

	emotion := f.PrimaryEmotion
	if emotion == "" {
		emotion = "NEUTRAL"
	}

	return models.FacialSentiment{
		Detected:  f.FaceCount > 0,
		Emotion:   emotion,
		FaceCount: f.FaceCount,
	}, flags
}
