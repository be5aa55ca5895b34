package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type PersonalDetails struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName   string             `bson:"FirstName" json:"FirstName"`
	LastName    string             `bson:"LastName" json:"LastName"`
	PhoneNumber string             `bson:"PhoneNumber" json:"PhoneNumber"`
	EmailID     string             `bson:"EmailId" json:"EmailId"`
	Address     string             `bson:"Address" json:"Address"`
	State       string             `bson:"State" json:"State"`
	City        string             `bson:"City" json:"City"`
	ZipCode     string             `bson:"ZipCode" json:"ZipCode"`
}

type EducationalDetails struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CollegeName    string             `bson:"collegeName" json:"collegeName"`
	BranchOfStudy  string             `bson:"branchOfStudy" json:"branchOfStudy"`
	EducationLevel string             `bson:"educationLevel" json:"educationLevel"`
	StartDate      string             `bson:"startDate" json:"startDate"`
	EndDate        string             `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

type WorkExperience struct {
	CompanyName string `bson:"companyName" json:"companyName"`
	JobTitle    string `bson:"jobTitle" json:"jobTitle"`
	StartDate   string `bson:"startDate" json:"startDate"`
	EndDate     string `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type WorkExperienceDetails struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Experience []WorkExperience   `bson:"experience" json:"experience"`
}

type SocialMediaLinks struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	GithubURL    string             `bson:"githubURL,omitempty" json:"githubURL,omitempty"`
	LinkedinURL  string             `bson:"linkedinURL,omitempty" json:"linkedinURL,omitempty"`
	PortfolioURL string             `bson:"portfolioURL,omitempty" json:"portfolioURL,omitempty"`
}

type Skillset struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Skillset []string           `bson:"skillset" json:"skillset"`
}

// Incoming payload shapes. Field names follow what the frontend sends.

type PersonalInfoInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	State     string `json:"state"`
	City      string `json:"city"`
	Code      string `json:"code"`
}

func (in PersonalInfoInput) Doc() *PersonalDetails {
	return &PersonalDetails{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.Phone,
		EmailID:     in.Email,
		Address:     in.Address,
		State:       in.State,
		City:        in.City,
		ZipCode:     in.Code,
	}
}

type EducationInput struct {
	Clg            string `json:"clg"`
	Branch         string `json:"branch"`
	EducationLevel string `json:"educationLevel"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

func (in EducationInput) Doc() *EducationalDetails {
	return &EducationalDetails{
		CollegeName:    in.Clg,
		BranchOfStudy:  in.Branch,
		EducationLevel: in.EducationLevel,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	}
}

type WorkExperienceInput struct {
	WorkExperiences []WorkExperience `json:"workExperiences"`
}

func (in WorkExperienceInput) Doc() *WorkExperienceDetails {
	exp := in.WorkExperiences
	if exp == nil {
		exp = []WorkExperience{}
	}
	return &WorkExperienceDetails{Experience: exp}
}

type SocialMediaInput struct {
	GithubURL    string `json:"githubUrl"`
	LinkedInURL  string `json:"linkedInUrl"`
	PortfolioURL string `json:"portfolioUrl"`
}

func (in SocialMediaInput) Doc() *SocialMediaLinks {
	return &SocialMediaLinks{
		GithubURL:    in.GithubURL,
		LinkedinURL:  in.LinkedInURL,
		PortfolioURL: in.PortfolioURL,
	}
}

type SkillsetInput struct {
	Skills []string `json:"skills"`
}

func (in SkillsetInput) Doc() *Skillset {
	return &Skillset{Skillset: in.Skills}
}
