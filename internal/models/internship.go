package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Internship keeps the field names the admin dashboard already posts.
type Internship struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	InternshipID        string             `bson:"internship_id" json:"internship_id"`
	RoleName            string             `bson:"role_name" json:"role_name" binding:"required"`
	RequiredSkills      []string           `bson:"requiredSkills" json:"requiredSkills" binding:"required"`
	InternshipType      string             `bson:"internship_Type" json:"internship_Type" binding:"required"`
	CompanyLocation     string             `bson:"company_Location" json:"company_Location" binding:"required"`
	Description         string             `bson:"description" json:"description" binding:"required"`
	CompanyName         string             `bson:"company_Name" json:"company_Name" binding:"required"`
	CompanyID           string             `bson:"company_Id" json:"company_Id" binding:"required"`
	ApplicationDeadline string             `bson:"applicationDeadline" json:"applicationDeadline" binding:"required"`
	MaxNoOfApplicants   int                `bson:"maxNoOfApplicants" json:"maxNoOfApplicants" binding:"gte=0"`
	PositionsAvailable  int                `bson:"positionsAvailable" json:"positionsAvailable" binding:"gte=0"`
	Stipend             float64            `bson:"stipend" json:"stipend" binding:"gte=0"`
	Duration            string             `bson:"duration" json:"duration" binding:"required"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type InternshipPatch struct {
	RoleName            *string   `json:"role_name,omitempty"`
	RequiredSkills      *[]string `json:"requiredSkills,omitempty"`
	InternshipType      *string   `json:"internship_Type,omitempty"`
	CompanyLocation     *string   `json:"company_Location,omitempty"`
	Description         *string   `json:"description,omitempty"`
	CompanyName         *string   `json:"company_Name,omitempty"`
	CompanyID           *string   `json:"company_Id,omitempty"`
	ApplicationDeadline *string   `json:"applicationDeadline,omitempty"`
	MaxNoOfApplicants   *int      `json:"maxNoOfApplicants,omitempty" binding:"omitempty,gte=0"`
	PositionsAvailable  *int      `json:"positionsAvailable,omitempty" binding:"omitempty,gte=0"`
	Stipend             *float64  `json:"stipend,omitempty" binding:"omitempty,gte=0"`
	Duration            *string   `json:"duration,omitempty"`
}

func (p InternshipPatch) Fields() map[string]any {
	out := map[string]any{}
	setIf(out, "role_name", p.RoleName)
	setIf(out, "requiredSkills", p.RequiredSkills)
	setIf(out, "internship_Type", p.InternshipType)
	setIf(out, "company_Location", p.CompanyLocation)
	setIf(out, "description", p.Description)
	setIf(out, "company_Name", p.CompanyName)
	setIf(out, "company_Id", p.CompanyID)
	setIf(out, "applicationDeadline", p.ApplicationDeadline)
	setIf(out, "maxNoOfApplicants", p.MaxNoOfApplicants)
	setIf(out, "positionsAvailable", p.PositionsAvailable)
	setIf(out, "stipend", p.Stipend)
	setIf(out, "duration", p.Duration)
	return out
}

func (i *Internship) PublicID() string { return i.InternshipID }

func (i *Internship) Stamp(id string, now time.Time) {
	i.ID = primitive.NilObjectID
	i.InternshipID = id
	i.CreatedAt = now
	i.UpdatedAt = now
}
