package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-generator/internal/model"
)

func janeDoe() *model.CVProfile {
	p := &model.CVProfile{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "555-1234",
		JobTitleTarget: "Backend Engineer",
		Skills:         []string{"Go", " Rust ", ""},
	}
	p.Normalize()
	return p
}

func TestRenderHTML_Scenario(t *testing.T) {
	html, err := RenderHTML(janeDoe())
	require.NoError(t, err)

	assert.Contains(t, html, `<div><span class="tag">Go</span><span class="tag">Rust</span></div>`)
	assert.NotContains(t, html, `<span class="tag"></span>`)
	assert.Contains(t, html, "Results-driven Backend Engineer with experience across key areas and strong focus on measurable impact.")
	assert.Contains(t, html, "<h2>Professional Experience</h2>")
	assert.Contains(t, html, "<h2>Education</h2>")
	assert.NotContains(t, html, `class="exp-item"`)
	assert.NotContains(t, html, `class="edu-item"`)
	for _, heading := range []string{"Certifications", "Projects / Achievements", "Languages", "Interests"} {
		assert.NotContains(t, html, "<h2>"+heading+"</h2>")
	}
	assert.Contains(t, html, "@page { size: A4; margin: 20mm; }")
}

func TestRenderHTML_SectionOrder(t *testing.T) {
	p := janeDoe()
	p.Summary = "Builds reliable systems."
	p.LinkedIn = "linkedin.com/in/janedoe"
	p.Experience = []model.CVExperience{
		{Company: "Acme", Role: "Engineer", Duration: "2020 - 2024", Achievements: []string{"Cut p99 latency by 40%", " "}},
		{Company: "Initech", Role: "Intern", Duration: "2019", Achievements: []string{}},
	}
	p.Education = []model.CVEducation{{Degree: "BSc Computer Science", Institution: "MIT", Year: "2019"}}
	p.Certifications = []string{"CKA"}
	p.Projects = []string{"cv-generator"}
	p.Languages = []string{"English", "German"}
	p.Interests = []string{"Climbing"}

	html, err := RenderHTML(p)
	require.NoError(t, err)

	assert.Contains(t, html, "555-1234 • jane@example.com • linkedin.com/in/janedoe")
	assert.Contains(t, html, "<p>Builds reliable systems.</p>")
	assert.NotContains(t, html, "Results-driven")
	assert.Contains(t, html, "<strong>Engineer</strong> | Acme — <span class=\"muted\">2020 - 2024</span>")
	assert.Contains(t, html, "<ul><li>Cut p99 latency by 40%</li></ul>")
	assert.NotContains(t, html, "<li></li>", "blank achievements are dropped")
	assert.Contains(t, html, "<strong>BSc Computer Science</strong>, MIT — <span class=\"muted\">2019</span>")

	order := []string{
		`<div class="name">`,
		"<h2>Professional Summary</h2>",
		"<h2>Core Skills</h2>",
		"<h2>Professional Experience</h2>",
		"<h2>Education</h2>",
		"<h2>Certifications</h2>",
		"<h2>Projects / Achievements</h2>",
		"<h2>Languages</h2>",
		"<h2>Interests</h2>",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(html, marker)
		require.NotEqual(t, -1, idx, "missing %s", marker)
		assert.Greater(t, idx, last, "%s out of order", marker)
		last = idx
	}
}

func TestRenderHTML_ExperienceWithoutAchievements(t *testing.T) {
	p := janeDoe()
	p.Experience = []model.CVExperience{{Company: "Initech", Role: "Intern", Duration: "2019", Achievements: []string{"", "  "}}}

	html, err := RenderHTML(p)
	require.NoError(t, err)

	assert.Contains(t, html, `class="exp-item"`)
	assert.NotContains(t, html, "<ul>")
}

func TestRenderHTML_ContactWithoutLinkedIn(t *testing.T) {
	html, err := RenderHTML(janeDoe())
	require.NoError(t, err)

	assert.Contains(t, html, `<div class="contact">555-1234 • jane@example.com</div>`)
}

func TestRenderHTML_BlankOptionalSectionOmitted(t *testing.T) {
	p := janeDoe()
	p.Certifications = []string{"", "   "}
	p.Interests = nil

	html, err := RenderHTML(p)
	require.NoError(t, err)

	assert.NotContains(t, html, "Certifications")
	assert.NotContains(t, html, "Interests")
}

func TestRenderHTML_EscapesUserText(t *testing.T) {
	p := janeDoe()
	p.FullName = `<script>alert("x")</script>`
	p.Summary = `Tom & Jerry <b>bold</b>`
	p.Skills = []string{`<img src=x onerror=alert(1)>`}

	html, err := RenderHTML(p)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>bold</b>")
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Tom &amp; Jerry")
}

func TestRenderHTML_Deterministic(t *testing.T) {
	first, err := RenderHTML(janeDoe())
	require.NoError(t, err)
	second, err := RenderHTML(janeDoe())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderHTML_TemplateSelectorHasNoEffect(t *testing.T) {
	modern := janeDoe()
	classic := janeDoe()
	classic.Template = "classic"

	a, err := RenderHTML(modern)
	require.NoError(t, err)
	b, err := RenderHTML(classic)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSkillsToKeywords(t *testing.T) {
	assert.Equal(t, []string{"Go", "Rust", "SQL"}, SkillsToKeywords([]string{"Go", " Rust ", "", "\t", "SQL"}))
	assert.Empty(t, SkillsToKeywords(nil))
}

func TestBuildFilename(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		jobTitle string
		want     string
	}{
		{name: "ordinary input", fullName: "Jane Doe", jobTitle: "Backend Engineer", want: "JaneDoe_BackendEngineer_MakeMeHiredCV.pdf"},
		{name: "tabs and newlines", fullName: "Jane\tDoe\n", jobTitle: " Dev ", want: "JaneDoe_Dev_MakeMeHiredCV.pdf"},
		{name: "path separators", fullName: "../../etc/passwd", jobTitle: `C:\Ops`, want: "....etcpasswd_COps_MakeMeHiredCV.pdf"},
		{name: "control and reserved characters", fullName: "Jane\x00Doe", jobTitle: `Dev<"*?>|`, want: "JaneDoe_Dev_MakeMeHiredCV.pdf"},
		{name: "unicode kept", fullName: "José Müller", jobTitle: "Ingeniero", want: "JoséMüller_Ingeniero_MakeMeHiredCV.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilename(tt.fullName, tt.jobTitle))
		})
	}
}
