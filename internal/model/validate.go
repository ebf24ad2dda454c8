package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/cvprofile.schema.json
var profileSchemaJSON []byte

// bodyField names errors that concern the submission as a whole.
const bodyField = "body"

var loadProfileSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(profileSchemaJSON))
})

// FieldError describes one offending field of a submission.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every offending field of a rejected submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the offending fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	sort.SliceStable(e.Fields, func(i, j int) bool { return e.Fields[i].Field < e.Fields[j].Field })
	return e
}

// ParseProfile validates a raw JSON submission and returns the decoded
// profile with defaults applied. Validation is all-or-nothing: on failure
// the returned error is a *ValidationError and no profile is returned.
func ParseProfile(raw []byte) (*CVProfile, error) {
	schema, err := loadProfileSchema()
	if err != nil {
		return nil, fmt.Errorf("load profile schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		verr := &ValidationError{}
		verr.add(bodyField, "malformed JSON document")
		return nil, verr
	}
	if !res.Valid() {
		return nil, schemaErrors(res.Errors()).orNil()
	}

	var p CVProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		verr := &ValidationError{}
		verr.add(bodyField, err.Error())
		return nil, verr
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// Validate checks the rules a decoded profile must satisfy before it is
// rendered: mandatory fields are non-blank and email is a valid address.
// Nested experience and education fields only need to be present, which the
// schema enforces; empty strings are rendered as given.
func (p *CVProfile) Validate() error {
	verr := &ValidationError{}

	required := []struct {
		field string
		value string
	}{
		{"full_name", p.FullName},
		{"email", p.Email},
		{"phone", p.Phone},
		{"job_title_target", p.JobTitleTarget},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.add(r.field, "field required")
		}
	}
	if strings.TrimSpace(p.Email) != "" && !isEmailAddress(p.Email) {
		verr.add("email", "value is not a valid email address")
	}
	return verr.orNil()
}

// isEmailAddress accepts a bare addr-spec whose domain has a dotted name.
// Mailbox forms such as "Jane <jane@example.com>" pass the schema format
// check but would be rendered verbatim, so they are rejected here.
func isEmailAddress(s string) bool {
	if !gojsonschema.FormatCheckers.IsFormat("email", s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	domain := s[strings.LastIndex(s, "@")+1:]
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}

func schemaErrors(errs []gojsonschema.ResultError) *ValidationError {
	verr := &ValidationError{}
	for _, e := range errs {
		field := strings.TrimPrefix(e.Field(), "(root)")
		field = strings.TrimPrefix(field, ".")

		switch e.Type() {
		case "required":
			prop, _ := e.Details()["property"].(string)
			switch {
			case field == "":
				field = prop
			case field != prop && !strings.HasSuffix(field, "."+prop):
				field = field + "." + prop
			}
			verr.add(field, "field required")
		case "format":
			verr.add(orBody(field), "value is not a valid email address")
		case "invalid_type":
			verr.add(orBody(field), fmt.Sprintf("expected %v, got %v", e.Details()["expected"], e.Details()["given"]))
		default:
			verr.add(orBody(field), e.Description())
		}
	}
	return verr
}

func orBody(field string) string {
	if field == "" {
		return bodyField
	}
	return field
}
