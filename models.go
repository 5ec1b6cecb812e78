// models.go database models and their display helpers
package main

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

const monthYear = "Jan 2006"

// Date is a day-precision timestamp. Stored as a datetime by gorm, carried
// over the wire as "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

type Project struct {
	gorm.Model
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"required"`
	Technologies string `json:"technologies" validate:"max=500"`
	GithubLink   string `json:"github_link" validate:"omitempty,url,max=500"`
	DemoLink     string `json:"demo_link" validate:"omitempty,url,max=500"`
	Image        string `json:"image"`
	IsFeatured   bool   `json:"is_featured"`
	Order        int    `json:"order"`
	DateCreated  Date   `json:"date_created" validate:"required"`
}

// TechList returns the comma-separated technologies field as a list.
func (p Project) TechList() []string {
	return splitList(p.Technologies, ",")
}

func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	return json.Marshal(struct {
		alias
		TechList []string `json:"tech_list"`
	}{alias(p), p.TechList()})
}

type Experience struct {
	gorm.Model
	Company      string `json:"company" validate:"required,max=200"`
	Position     string `json:"position" validate:"required,max=200"`
	StartDate    Date   `json:"start_date" validate:"required"`
	EndDate      *Date  `json:"end_date"`
	Description  string `json:"description" validate:"required"`
	Achievements string `json:"achievements"`
	Order        int    `json:"order"`
}

// IsCurrent reports whether this is a current position (no end date).
func (e Experience) IsCurrent() bool {
	return e.EndDate == nil
}

// Duration formats the tenure, e.g. "Aug 2023 - Present".
func (e Experience) Duration() string {
	end := "Present"
	if e.EndDate != nil {
		end = e.EndDate.Format(monthYear)
	}
	return fmt.Sprintf("%s - %s", e.StartDate.Format(monthYear), end)
}

// AchievementsList returns the newline-separated achievements field as a list.
func (e Experience) AchievementsList() []string {
	return splitList(e.Achievements, "\n")
}

func (e Experience) MarshalJSON() ([]byte, error) {
	type alias Experience
	return json.Marshal(struct {
		alias
		IsCurrent        bool     `json:"is_current"`
		Duration         string   `json:"duration"`
		AchievementsList []string `json:"achievements_list"`
	}{alias(e), e.IsCurrent(), e.Duration(), e.AchievementsList()})
}

type Education struct {
	gorm.Model
	Institution  string `json:"institution" validate:"required,max=200"`
	Degree       string `json:"degree" validate:"required,max=200"`
	FieldOfStudy string `json:"field_of_study" validate:"required,max=200"`
	StartDate    Date   `json:"start_date" validate:"required"`
	EndDate      *Date  `json:"end_date"`
	Description  string `json:"description"`
	GPA          string `json:"gpa" validate:"max=50"`
	Order        int    `json:"order"`
}

// IsCurrent reports whether studies are ongoing (no end date).
func (e Education) IsCurrent() bool {
	return e.EndDate == nil
}

// Duration formats the study period with year granularity, e.g. "2019 - 2023".
func (e Education) Duration() string {
	end := "Present"
	if e.EndDate != nil {
		end = e.EndDate.Format("2006")
	}
	return fmt.Sprintf("%s - %s", e.StartDate.Format("2006"), end)
}

func (e Education) MarshalJSON() ([]byte, error) {
	type alias Education
	return json.Marshal(struct {
		alias
		IsCurrent bool   `json:"is_current"`
		Duration  string `json:"duration"`
	}{alias(e), e.IsCurrent(), e.Duration()})
}

type Certificate struct {
	gorm.Model
	Title               string `json:"title" validate:"required,max=200"`
	IssuingOrganization string `json:"issuing_organization" validate:"required,max=200"`
	IssueDate           Date   `json:"issue_date" validate:"required"`
	ExpiryDate          *Date  `json:"expiry_date"`
	CredentialID        string `json:"credential_id" validate:"max=200"`
	CredentialURL       string `json:"credential_url" validate:"omitempty,url,max=500"`
	CertificateImage    string `json:"certificate_image"`
	Description         string `json:"description"`
	Order               int    `json:"order"`
}

// DateDisplay formats the issue date, plus the expiry when one is set,
// e.g. "Jan 2023 - Expires Jun 2024".
func (c Certificate) DateDisplay() string {
	issue := c.IssueDate.Format(monthYear)
	if c.ExpiryDate != nil {
		return fmt.Sprintf("%s - Expires %s", issue, c.ExpiryDate.Format(monthYear))
	}
	return issue
}

// IsExpired reports whether the expiry date has passed. Time-dependent, so
// it is recomputed on every call rather than stored.
func (c Certificate) IsExpired() bool {
	if c.ExpiryDate == nil {
		return false
	}
	y, m, d := time.Now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return c.ExpiryDate.Before(today)
}

func (c Certificate) MarshalJSON() ([]byte, error) {
	type alias Certificate
	return json.Marshal(struct {
		alias
		DateDisplay string `json:"date_display"`
		IsExpired   bool   `json:"is_expired"`
	}{alias(c), c.DateDisplay(), c.IsExpired()})
}

type SkillCategory string

const (
	CategoryLanguages  SkillCategory = "languages"
	CategoryFrameworks SkillCategory = "frameworks"
	CategoryTools      SkillCategory = "tools"
	CategoryDatabases  SkillCategory = "databases"
	CategoryOther      SkillCategory = "other"
)

var categoryLabels = map[SkillCategory]string{
	CategoryLanguages:  "Programming Languages",
	CategoryFrameworks: "Frameworks & Libraries",
	CategoryTools:      "Tools & Technologies",
	CategoryDatabases:  "Databases",
	CategoryOther:      "Other",
}

// Label returns the human-readable name for the category.
func (c SkillCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type Skill struct {
	gorm.Model
	Name        string        `json:"name" validate:"required,max=100"`
	Category    SkillCategory `json:"category" validate:"required,oneof=languages frameworks tools databases other"`
	Proficiency int           `json:"proficiency" validate:"min=1,max=4"`
	Order       int           `json:"order"`
}

// ProficiencyPercentage maps the 1-4 proficiency scale onto 25-100.
func (s Skill) ProficiencyPercentage() float64 {
	p := s.Proficiency
	if p < 1 {
		p = 1
	}
	if p > 4 {
		p = 4
	}
	return float64(p) / 4 * 100
}

func (s Skill) MarshalJSON() ([]byte, error) {
	type alias Skill
	return json.Marshal(struct {
		alias
		CategoryLabel         string  `json:"category_label"`
		ProficiencyPercentage float64 `json:"proficiency_percentage"`
	}{alias(s), s.Category.Label(), s.ProficiencyPercentage()})
}

// About holds the site owner's profile and contact details. At most one row
// ever exists; see Store.GetOrCreateAbout.
type About struct {
	gorm.Model
	Name         string `json:"name" validate:"required,max=200"`
	Tagline      string `json:"tagline" validate:"max=300"`
	Bio          string `json:"bio" validate:"required"`
	ProfileImage string `json:"profile_image"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"max=50"`
	Location     string `json:"location" validate:"max=200"`
	GithubURL    string `json:"github_url" validate:"omitempty,url,max=500"`
	LinkedinURL  string `json:"linkedin_url" validate:"omitempty,url,max=500"`
	TwitterURL   string `json:"twitter_url" validate:"omitempty,url,max=500"`
	WebsiteURL   string `json:"website_url" validate:"omitempty,url,max=500"`
	ResumeFile   string `json:"resume_file"`
}

// SkillGroup is one category's worth of skills for the resume page.
type SkillGroup struct {
	Category SkillCategory `json:"category"`
	Label    string        `json:"label"`
	Skills   []Skill       `json:"skills"`
}

// splitList breaks a delimiter-separated text field into trimmed segments,
// dropping empty ones.
func splitList(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// sortedTechSet deduplicates technology names (exact match, case matters)
// and returns them lexicographically sorted.
func sortedTechSet(projects []Project) []string {
	seen := make(map[string]bool)
	var techs []string
	for _, p := range projects {
		for _, tech := range p.TechList() {
			if !seen[tech] {
				seen[tech] = true
				techs = append(techs, tech)
			}
		}
	}
	sort.Strings(techs)
	return techs
}
