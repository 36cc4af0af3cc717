package questiongen

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// TemplateLibrary holds the predefined question sets for common roles,
// keyed by template id (snake_case role name).
type TemplateLibrary struct {
	templates map[string]models.QuestionTemplate
}

type templateFile struct {
	Templates map[string]struct {
		Title     string `yaml:"title"`
		Questions []struct {
			Text           string   `yaml:"text"`
			Category       string   `yaml:"category"`
			Difficulty     string   `yaml:"difficulty"`
			ExpectedTopics []string `yaml:"expected_topics"`
			FollowUps      []string `yaml:"follow_ups"`
			TimeLimit      int      `yaml:"time_limit"`
		} `yaml:"questions"`
	} `yaml:"templates"`
}

// LoadTemplateLibrary reads the role template file. Path resolution follows
// the QUESTION_TEMPLATES_PATH env var with a configs/ default.
func LoadTemplateLibrary() (*TemplateLibrary, error) {
	path := os.Getenv("QUESTION_TEMPLATES_PATH")
	if path == "" {
		path = "configs/templates.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question templates: %w", err)
	}
	return ParseTemplateLibrary(data)
}

// ParseTemplateLibrary builds a library from raw YAML.
func ParseTemplateLibrary(data []byte) (*TemplateLibrary, error) {
	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing question templates: %w", err)
	}

	library := &TemplateLibrary{templates: make(map[string]models.QuestionTemplate, len(file.Templates))}
	for id, raw := range file.Templates {
		template := models.QuestionTemplate{
			ID:    id,
			Title: raw.Title,
		}
		for i, q := range raw.Questions {
			template.Questions = append(template.Questions, models.Question{
				ID:             fmt.Sprintf("%s-%d", id, i+1),
				Text:           q.Text,
				Category:       q.Category,
				Difficulty:     models.Depth(q.Difficulty),
				ExpectedTopics: q.ExpectedTopics,
				FollowUps:      q.FollowUps,
				TimeAllocation: q.TimeLimit,
			})
		}
		library.templates[id] = template
	}
	return library, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// Lookup resolves a template by explicit id, or by the job role normalized to
// snake_case when no id is given. The second return reports whether a
// template was found; callers fall back to generation when it is false.
func (l *TemplateLibrary) Lookup(jobRole, templateID string) (models.QuestionTemplate, bool) {
	key := templateID
	if key == "" {
		key = whitespace.ReplaceAllString(strings.ToLower(jobRole), "_")
	}
	template, ok := l.templates[key]
	return template, ok
}

// Available lists the template ids a caller can choose from.
func (l *TemplateLibrary) Available() []string {
	ids := make([]string, 0, len(l.templates))
	for id := range l.templates {
		ids = append(ids, id)
	}
	return ids
}
