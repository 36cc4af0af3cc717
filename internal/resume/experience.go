package resume

import (
	"math"
	"regexp"
	"strconv"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

var (
	yearsPattern  = regexp.MustCompile(`(?i)(\d+)\s*year`)
	monthsPattern = regexp.MustCompile(`(?i)(\d+)\s*month`)
)

// EstimateExperienceLevel sums the duration strings of the work history
// ("2 years 3 months") and bands the total. Years are rounded to one
// decimal.
func EstimateExperienceLevel(experience []models.ExperienceEntry) (float64, string) {
	totalMonths := 0
	for _, entry := range experience {
		if m := yearsPattern.FindStringSubmatch(entry.Duration); m != nil {
			years, _ := strconv.Atoi(m[1])
			totalMonths += years * 12
		}
		if m := monthsPattern.FindStringSubmatch(entry.Duration); m != nil {
			months, _ := strconv.Atoi(m[1])
			totalMonths += months
		}
	}

	years := float64(totalMonths) / 12

	var level string
	switch {
	case years < 1:
		level = "entry"
	case years < 3:
		level = "junior"
	case years < 6:
		level = "mid"
	case years < 10:
		level = "senior"
	default:
		level = "lead"
	}

	return math.Round(years*10) / 10, level
}
