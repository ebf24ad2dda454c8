package model

import "strings"

// Go models that match cvprofile.schema.json, used for validation and rendering.

const (
	// DefaultTemplate is applied when a submission omits the template selector.
	DefaultTemplate = "modern"

	// ProfileCollection is the collection name submitted profiles are stored under.
	ProfileCollection = "cvprofile"
)

type CVExperience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
}

type CVEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// CVProfile is one user's CV submission. Collections keep submission order,
// which is also display order.
type CVProfile struct {
	FullName       string         `json:"full_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	LinkedIn       string         `json:"linkedin,omitempty"`
	Summary        string         `json:"summary,omitempty"`
	JobTitleTarget string         `json:"job_title_target"`
	Skills         []string       `json:"skills"`
	Experience     []CVExperience `json:"experience"`
	Education      []CVEducation  `json:"education"`
	Certifications []string       `json:"certifications"`
	Projects       []string       `json:"projects"`
	Languages      []string       `json:"languages"`
	Interests      []string       `json:"interests"`
	// Template is kept for compatibility; it does not change rendering.
	Template string `json:"template"`
}

// Normalize fills defaults for absent optional fields.
func (p *CVProfile) Normalize() {
	if strings.TrimSpace(p.Template) == "" {
		p.Template = DefaultTemplate
	}
	p.Skills = orEmpty(p.Skills)
	p.Certifications = orEmpty(p.Certifications)
	p.Projects = orEmpty(p.Projects)
	p.Languages = orEmpty(p.Languages)
	p.Interests = orEmpty(p.Interests)
	if p.Experience == nil {
		p.Experience = []CVExperience{}
	}
	if p.Education == nil {
		p.Education = []CVEducation{}
	}
	for i := range p.Experience {
		p.Experience[i].Achievements = orEmpty(p.Experience[i].Achievements)
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// TemplateOption is one entry of the template selector list.
type TemplateOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AvailableTemplates returns the static list of template identifiers.
func AvailableTemplates() []TemplateOption {
	return []TemplateOption{
		{ID: "modern", Name: "Modern"},
		{ID: "minimal", Name: "Minimal"},
		{ID: "classic", Name: "Classic"},
	}
}
