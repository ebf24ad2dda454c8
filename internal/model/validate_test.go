package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeDoe = `{
	"full_name": "Jane Doe",
	"email": "jane@example.com",
	"phone": "555-1234",
	"job_title_target": "Backend Engineer",
	"skills": ["Go", " Rust ", ""],
	"experience": [],
	"education": [],
	"summary": null
}`

func TestParseProfile_Valid(t *testing.T) {
	p, err := ParseProfile([]byte(janeDoe))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", p.FullName)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, "Backend Engineer", p.JobTitleTarget)
	assert.Empty(t, p.Summary)
	assert.Equal(t, []string{"Go", " Rust ", ""}, p.Skills)
	assert.Equal(t, DefaultTemplate, p.Template)
	assert.NotNil(t, p.Certifications)
	assert.Empty(t, p.Certifications)
	assert.NotNil(t, p.Interests)
}

func TestParseProfile_KeepsTemplateSelector(t *testing.T) {
	p, err := ParseProfile([]byte(`{
		"full_name": "A", "email": "a@example.com", "phone": "1",
		"job_title_target": "B", "template": "classic",
		"experience": [{"company": "Acme", "role": "Dev", "duration": "2020"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "classic", p.Template)
	require.Len(t, p.Experience, 1)
	assert.NotNil(t, p.Experience[0].Achievements)
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "missing email",
			body:   `{"full_name": "Jane Doe", "phone": "555", "job_title_target": "Dev"}`,
			fields: []string{"email"},
		},
		{
			name:   "malformed email",
			body:   `{"full_name": "Jane Doe", "email": "not-an-email", "phone": "555", "job_title_target": "Dev"}`,
			fields: []string{"email"},
		},
		{
			name:   "every required field missing",
			body:   `{}`,
			fields: []string{"email", "full_name", "job_title_target", "phone"},
		},
		{
			name:   "wrong type",
			body:   `{"full_name": 42, "email": "a@example.com", "phone": "555", "job_title_target": "Dev", "skills": "Go"}`,
			fields: []string{"full_name", "skills"},
		},
		{
			name:   "blank required field",
			body:   `{"full_name": "   ", "email": "a@example.com", "phone": "555", "job_title_target": "Dev"}`,
			fields: []string{"full_name"},
		},
		{
			name: "nested experience field missing",
			body: `{"full_name": "A", "email": "a@example.com", "phone": "555", "job_title_target": "Dev",
				"experience": [{"company": "Acme", "duration": "2021"}]}`,
			fields: []string{"experience.0.role"},
		},
		{
			name:   "display name email",
			body:   `{"full_name": "Jane Doe", "email": "Jane <jane@example.com>", "phone": "555", "job_title_target": "Dev"}`,
			fields: []string{"email"},
		},
		{
			name:   "email without dotted domain",
			body:   `{"full_name": "Jane Doe", "email": "jane@localhost", "phone": "555", "job_title_target": "Dev"}`,
			fields: []string{"email"},
		},
		{
			name: "nested education field missing",
			body: `{"full_name": "A", "email": "a@example.com", "phone": "555", "job_title_target": "Dev",
				"education": [{"degree": "BSc", "year": "2019"}]}`,
			fields: []string{"education.0.institution"},
		},
		{
			name:   "malformed json",
			body:   `{"full_name": `,
			fields: []string{"body"},
		},
		{
			name:   "not an object",
			body:   `[]`,
			fields: []string{"body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseProfile([]byte(tt.body))
			assert.Nil(t, p)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
			for _, f := range tt.fields {
				assert.True(t, verr.Has(f), "expected %q in %v", f, verr.Fields)
			}
		})
	}
}

func TestParseProfile_AcceptsEmptyNestedStrings(t *testing.T) {
	p, err := ParseProfile([]byte(`{
		"full_name": "A", "email": "a@example.com", "phone": "1", "job_title_target": "B",
		"experience": [{"company": "", "role": "Dev", "duration": ""}],
		"education": [{"degree": "", "institution": "", "year": ""}]
	}`))
	require.NoError(t, err)

	require.Len(t, p.Experience, 1)
	assert.Empty(t, p.Experience[0].Company)
	require.Len(t, p.Education, 1)
	assert.Empty(t, p.Education[0].Degree)
}

func TestCVProfile_Validate(t *testing.T) {
	p := &CVProfile{
		FullName:       "Jane Doe",
		Email:          "jane@",
		Phone:          "555",
		JobTitleTarget: "",
		Education:      []CVEducation{{Degree: "BSc", Institution: " ", Year: "2019"}},
	}

	err := p.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{
		{Field: "email", Message: "value is not a valid email address"},
		{Field: "job_title_target", Message: "field required"},
	}, verr.Fields)
	assert.Contains(t, err.Error(), "job_title_target: field required")
}

func TestAvailableTemplates(t *testing.T) {
	ids := make([]string, 0, 3)
	for _, tpl := range AvailableTemplates() {
		ids = append(ids, tpl.ID)
	}
	assert.Equal(t, []string{"modern", "minimal", "classic"}, ids)
}

func TestIsEmailAddress(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"jane.doe+cv@mail.example.co.uk", true},
		{"Jane <jane@example.com>", false},
		{"<jane@example.com>", false},
		{" jane@example.com", false},
		{"jane@localhost", false},
		{"jane@example.", false},
		{"jane@", false},
		{"not-an-email", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, isEmailAddress(tt.email))
		})
	}
}
