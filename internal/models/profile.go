package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section names the five parts of a profile, keyed by the payload field
// that carries them.
type Section string

const (
	SectionPersonal  Section = "personalInfo"
	SectionEducation Section = "education"
	SectionWork      Section = "workExperienceInfo"
	SectionSocial    Section = "socialMedia"
	SectionSkillset  Section = "skillset"
)

// SectionOrder is the order sections are validated and written in.
var SectionOrder = []Section{SectionPersonal, SectionEducation, SectionWork, SectionSocial, SectionSkillset}

func (s Section) Label() string {
	switch s {
	case SectionPersonal:
		return "personal details"
	case SectionEducation:
		return "education details"
	case SectionWork:
		return "work experience details"
	case SectionSocial:
		return "social media links"
	case SectionSkillset:
		return "skillset"
	default:
		return string(s)
	}
}

// Profile is the parent record; each reference points at a sub-document
// owned exclusively by this profile.
type Profile struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID                primitive.ObjectID `bson:"user_id" json:"user_id"`
	PersonalDetails       primitive.ObjectID `bson:"personal_details" json:"personal_details"`
	EducationalDetails    primitive.ObjectID `bson:"educational_details" json:"educational_details"`
	WorkExperienceDetails primitive.ObjectID `bson:"work_experience_details" json:"work_experience_details"`
	SocialMediaLinks      primitive.ObjectID `bson:"social_media_links" json:"social_media_links"`
	Skillset              primitive.ObjectID `bson:"skillset" json:"skillset"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (p *Profile) Ref(s Section) primitive.ObjectID {
	switch s {
	case SectionPersonal:
		return p.PersonalDetails
	case SectionEducation:
		return p.EducationalDetails
	case SectionWork:
		return p.WorkExperienceDetails
	case SectionSocial:
		return p.SocialMediaLinks
	case SectionSkillset:
		return p.Skillset
	}
	return primitive.NilObjectID
}

func (p *Profile) SetRef(s Section, id primitive.ObjectID) {
	switch s {
	case SectionPersonal:
		p.PersonalDetails = id
	case SectionEducation:
		p.EducationalDetails = id
	case SectionWork:
		p.WorkExperienceDetails = id
	case SectionSocial:
		p.SocialMediaLinks = id
	case SectionSkillset:
		p.Skillset = id
	}
}

// ProfileSections holds validated section documents. A nil field means the
// section was not part of the request.
type ProfileSections struct {
	Personal  *PersonalDetails       `json:"personal_details,omitempty"`
	Education *EducationalDetails    `json:"educational_details,omitempty"`
	Work      *WorkExperienceDetails `json:"work_experience_details,omitempty"`
	Social    *SocialMediaLinks      `json:"social_media_links,omitempty"`
	Skillset  *Skillset              `json:"skillset,omitempty"`
}

func (s ProfileSections) Has(sec Section) bool {
	switch sec {
	case SectionPersonal:
		return s.Personal != nil
	case SectionEducation:
		return s.Education != nil
	case SectionWork:
		return s.Work != nil
	case SectionSocial:
		return s.Social != nil
	case SectionSkillset:
		return s.Skillset != nil
	}
	return false
}

func (s ProfileSections) Present() []Section {
	var out []Section
	for _, sec := range SectionOrder {
		if s.Has(sec) {
			out = append(out, sec)
		}
	}
	return out
}

func (s ProfileSections) Complete() bool { return len(s.Present()) == len(SectionOrder) }

// ProfileAggregate is a profile with its sub-documents resolved.
type ProfileAggregate struct {
	*Profile
	Sections ProfileSections `json:"sections"`
	Complete bool            `json:"complete"`
	Missing  []Section       `json:"missing,omitempty"`
}
