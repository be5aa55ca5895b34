package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Job struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	JobID          string             `bson:"job_id" json:"job_id"` // public id used by the dashboard
	RoleName       string             `bson:"role_name" json:"role_name" binding:"required"`
	Location       string             `bson:"location" json:"location" binding:"required"`
	JobType        string             `bson:"job_type" json:"job_type" binding:"required"`
	SkillsRequired []string           `bson:"skills_required" json:"skills_required" binding:"required"`
	Description    string             `bson:"description" json:"description" binding:"required"`
	Salary         float64            `bson:"salary" json:"salary" binding:"gte=0"`
	JobDeadline    string             `bson:"job_deadline" json:"job_deadline" binding:"required"`
	MaxApplicants  int                `bson:"max_applicants" json:"max_applicants" binding:"gte=0"`
	TotalPositions int                `bson:"totalpositions" json:"totalpositions" binding:"gte=0"`
	CompanyID      string             `bson:"company_id" json:"company_id" binding:"required"`
	CompanyName    string             `bson:"company_name" json:"company_name" binding:"required"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// JobPatch carries a partial update; nil fields are left untouched.
type JobPatch struct {
	RoleName       *string   `json:"role_name,omitempty"`
	Location       *string   `json:"location,omitempty"`
	JobType        *string   `json:"job_type,omitempty"`
	SkillsRequired *[]string `json:"skills_required,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Salary         *float64  `json:"salary,omitempty" binding:"omitempty,gte=0"`
	JobDeadline    *string   `json:"job_deadline,omitempty"`
	MaxApplicants  *int      `json:"max_applicants,omitempty" binding:"omitempty,gte=0"`
	TotalPositions *int      `json:"totalpositions,omitempty" binding:"omitempty,gte=0"`
	CompanyID      *string   `json:"company_id,omitempty"`
	CompanyName    *string   `json:"company_name,omitempty"`
}

// Fields returns the bson $set document for the non-nil fields.
func (p JobPatch) Fields() map[string]any {
	out := map[string]any{}
	setIf(out, "role_name", p.RoleName)
	setIf(out, "location", p.Location)
	setIf(out, "job_type", p.JobType)
	setIf(out, "skills_required", p.SkillsRequired)
	setIf(out, "description", p.Description)
	setIf(out, "salary", p.Salary)
	setIf(out, "job_deadline", p.JobDeadline)
	setIf(out, "max_applicants", p.MaxApplicants)
	setIf(out, "totalpositions", p.TotalPositions)
	setIf(out, "company_id", p.CompanyID)
	setIf(out, "company_name", p.CompanyName)
	return out
}

func setIf[T any](m map[string]any, key string, v *T) {
	if v != nil {
		m[key] = *v
	}
}

func (j *Job) PublicID() string { return j.JobID }

// Stamp assigns the server-side id and timestamps of a new listing.
func (j *Job) Stamp(id string, now time.Time) {
	j.ID = primitive.NilObjectID
	j.JobID = id
	j.CreatedAt = now
	j.UpdatedAt = now
}
