package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"cv-generator/internal/model"
)

//go:embed templates/cv.html
var templateFS embed.FS

var cvTemplate = template.Must(template.ParseFS(templateFS, "templates/cv.html"))

const filenameSuffix = "_MakeMeHiredCV.pdf"

type experienceView struct {
	Role         string
	Company      string
	Duration     string
	Achievements []string
}

type sectionView struct {
	Title string
	Items []string
}

type cvView struct {
	FullName       string
	JobTitleTarget string
	Contact        []string
	Summary        string
	Skills         []string
	Experience     []experienceView
	Education      []model.CVEducation
	Sections       []sectionView
}

// RenderHTML renders p into the single-column CV document. Output depends
// only on p: equal profiles render to identical bytes. All profile text is
// HTML-escaped on insertion.
func RenderHTML(p *model.CVProfile) (string, error) {
	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, newCVView(p)); err != nil {
		return "", fmt.Errorf("render cv html: %w", err)
	}
	return buf.String(), nil
}

func newCVView(p *model.CVProfile) cvView {
	v := cvView{
		FullName:       p.FullName,
		JobTitleTarget: p.JobTitleTarget,
		Contact:        []string{p.Phone, p.Email},
		Summary:        SummaryOrFallback(p),
		Skills:         SkillsToKeywords(p.Skills),
		Education:      p.Education,
	}
	if strings.TrimSpace(p.LinkedIn) != "" {
		v.Contact = append(v.Contact, p.LinkedIn)
	}

	for _, e := range p.Experience {
		v.Experience = append(v.Experience, experienceView{
			Role:         e.Role,
			Company:      e.Company,
			Duration:     e.Duration,
			Achievements: compact(e.Achievements),
		})
	}

	optional := []sectionView{
		{Title: "Certifications", Items: compact(p.Certifications)},
		{Title: "Projects / Achievements", Items: compact(p.Projects)},
		{Title: "Languages", Items: compact(p.Languages)},
		{Title: "Interests", Items: compact(p.Interests)},
	}
	for _, s := range optional {
		if len(s.Items) > 0 {
			v.Sections = append(v.Sections, s)
		}
	}
	return v
}

// SummaryOrFallback returns the submitted summary, or a sentence built from
// the target job title when none was given.
func SummaryOrFallback(p *model.CVProfile) string {
	if strings.TrimSpace(p.Summary) != "" {
		return p.Summary
	}
	return fmt.Sprintf("Results-driven %s with experience across key areas and strong focus on measurable impact.", p.JobTitleTarget)
}

// SkillsToKeywords trims each skill and drops blank entries.
func SkillsToKeywords(skills []string) []string {
	return compact(skills)
}

func compact(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// BuildFilename joins the name and target title into the download filename.
// Whitespace is removed; path separators, characters reserved on common
// filesystems and control characters are dropped.
func BuildFilename(fullName, jobTitle string) string {
	return sanitizeFilenamePart(fullName) + "_" + sanitizeFilenamePart(jobTitle) + filenameSuffix
}

func sanitizeFilenamePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), unicode.IsControl(r):
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return -1
		}
		return r
	}, s)
}
