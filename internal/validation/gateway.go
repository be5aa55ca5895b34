// Package validation checks each profile section against its own JSON schema
// before anything is persisted.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/utils"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Payload is the composite profile body. Sections stay raw until their
// schema has accepted them.
type Payload struct {
	PersonalInfo       json.RawMessage `json:"personalInfo"`
	Education          json.RawMessage `json:"education"`
	WorkExperienceInfo json.RawMessage `json:"workExperienceInfo"`
	SocialMedia        json.RawMessage `json:"socialMedia"`
	Skillset           json.RawMessage `json:"skillset"`
}

func (p Payload) Raw(sec models.Section) json.RawMessage {
	switch sec {
	case models.SectionPersonal:
		return p.PersonalInfo
	case models.SectionEducation:
		return p.Education
	case models.SectionWork:
		return p.WorkExperienceInfo
	case models.SectionSocial:
		return p.SocialMedia
	case models.SectionSkillset:
		return p.Skillset
	}
	return nil
}

func (p Payload) Has(sec models.Section) bool { return !isAbsent(p.Raw(sec)) }

type Gateway struct {
	schemas map[models.Section]*gojsonschema.Schema
}

func NewGateway() (*Gateway, error) {
	g := &Gateway{schemas: make(map[models.Section]*gojsonschema.Schema, len(models.SectionOrder))}
	for _, sec := range models.SectionOrder {
		b, err := schemaFS.ReadFile("schemas/" + string(sec) + ".json")
		if err != nil {
			return nil, fmt.Errorf("read %s schema: %w", sec, err)
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", sec, err)
		}
		g.schemas[sec] = s
	}
	return g, nil
}

// ValidateAll requires every section and stops at the first one that fails,
// in SectionOrder.
func (g *Gateway) ValidateAll(p Payload) (models.ProfileSections, error) {
	const op = "Validation.ValidateAll"

	var out models.ProfileSections
	for _, sec := range models.SectionOrder {
		raw := p.Raw(sec)
		if isAbsent(raw) {
			return models.ProfileSections{}, missing(op, sec)
		}
		if err := g.decodeInto(op, sec, raw, &out); err != nil {
			return models.ProfileSections{}, err
		}
	}
	return out, nil
}

// ValidatePresent validates only the sections the payload carries. At least
// one section is required.
func (g *Gateway) ValidatePresent(p Payload) (models.ProfileSections, error) {
	const op = "Validation.ValidatePresent"

	var out models.ProfileSections
	seen := 0
	for _, sec := range models.SectionOrder {
		raw := p.Raw(sec)
		if isAbsent(raw) {
			continue
		}
		seen++
		if err := g.decodeInto(op, sec, raw, &out); err != nil {
			return models.ProfileSections{}, err
		}
	}
	if seen == 0 {
		return models.ProfileSections{}, utils.E(utils.CodeInvalidArgument, op, "Validation failed. No profile sections provided.", nil)
	}
	return out, nil
}

func (g *Gateway) decodeInto(op string, sec models.Section, raw json.RawMessage, out *models.ProfileSections) error {
	if err := g.check(op, sec, raw); err != nil {
		return err
	}

	var err error
	switch sec {
	case models.SectionPersonal:
		var in models.PersonalInfoInput
		if err = json.Unmarshal(raw, &in); err == nil {
			out.Personal = in.Doc()
		}
	case models.SectionEducation:
		var in models.EducationInput
		if err = json.Unmarshal(raw, &in); err == nil {
			out.Education = in.Doc()
		}
	case models.SectionWork:
		var in models.WorkExperienceInput
		if err = json.Unmarshal(raw, &in); err == nil {
			out.Work = in.Doc()
		}
	case models.SectionSocial:
		var in models.SocialMediaInput
		if err = json.Unmarshal(raw, &in); err == nil {
			out.Social = in.Doc()
		}
	case models.SectionSkillset:
		var in models.SkillsetInput
		if err = json.Unmarshal(raw, &in); err == nil {
			out.Skillset = in.Doc()
		}
	}
	if err != nil {
		return utils.ES(op, string(sec), invalidMsg(sec), err)
	}
	return nil
}

func (g *Gateway) check(op string, sec models.Section, raw json.RawMessage) error {
	schema, ok := g.schemas[sec]
	if !ok {
		return utils.E(utils.CodeInternal, op, "no schema for section "+string(sec), nil)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return utils.ES(op, string(sec), invalidMsg(sec), err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return utils.ES(op, string(sec), string(sec)+": "+strings.Join(msgs, "; "), nil)
}

func isAbsent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func missing(op string, sec models.Section) error {
	return utils.ES(op, string(sec), invalidMsg(sec), nil)
}

func invalidMsg(sec models.Section) string {
	return "Validation failed. Please check your input data for " + sec.Label() + "."
}
