// store.go persistence layer: validated CRUD plus the read paths the pages use
package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// aboutID pins the About singleton to a fixed primary key.
const aboutID = 1

// Default sort order per entity, encoded once and reused by every reader.
const (
	projectOrder     = "`order`, date_created DESC"
	experienceOrder  = "`order`, start_date DESC"
	educationOrder   = "`order`, start_date DESC"
	certificateOrder = "`order`, issue_date DESC"
	skillOrder       = "category, `order`, name"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Let "required" see through the Date wrapper to the zero time.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})
	// Report json names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateRecord(rec interface{}) error {
	if err := validate.Struct(rec); err != nil {
		return asValidationError(err)
	}
	return nil
}

// Store is the record store backing both the public pages and the admin API.
type Store struct {
	db *gorm.DB

	// Serializes singleton writes so concurrent first reads cannot race
	// into two About rows.
	aboutMu sync.Mutex
}

// OpenStore opens (or creates) the sqlite database and migrates the schema.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Project{}, &Experience{}, &Education{}, &Certificate{}, &Skill{}, &About{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Projects

func (s *Store) CreateProject(p *Project) error {
	if err := validateRecord(p); err != nil {
		return err
	}
	return s.db.Create(p).Error
}

func (s *Store) Project(id uint) (*Project, error) {
	var p Project
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (s *Store) UpdateProject(id uint, p *Project) error {
	var existing Project
	if err := s.db.First(&existing, id).Error; err != nil {
		return notFoundOr(err)
	}
	if err := validateRecord(p); err != nil {
		return err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	return s.db.Save(p).Error
}

func (s *Store) DeleteProject(id uint) error {
	return deleteByID(s.db, &Project{}, id)
}

func (s *Store) Projects() ([]Project, error) {
	var projects []Project
	err := s.db.Order(projectOrder).Find(&projects).Error
	return projects, err
}

// FeaturedProjects returns up to limit projects flagged for the landing page.
func (s *Store) FeaturedProjects(limit int) ([]Project, error) {
	var projects []Project
	err := s.db.Where("is_featured = ?", true).Order(projectOrder).Limit(limit).Find(&projects).Error
	return projects, err
}

// ProjectsByTech filters projects by a case-insensitive substring match on
// the raw technologies field. An empty filter returns everything.
func (s *Store) ProjectsByTech(tech string) ([]Project, error) {
	if tech == "" {
		return s.Projects()
	}
	var projects []Project
	pattern := "%" + escapeLike(strings.ToLower(tech)) + "%"
	err := s.db.Where("lower(technologies) LIKE ? ESCAPE '\\'", pattern).Order(projectOrder).Find(&projects).Error
	return projects, err
}

// escapeLike neutralizes LIKE metacharacters so the filter is a plain
// substring match, not a pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(s)
}

// AllTechnologies collects the distinct technology names used across all
// projects, sorted lexicographically. Deduplication is exact-match: "Python"
// and "python" stay separate entries.
func (s *Store) AllTechnologies() ([]string, error) {
	projects, err := s.Projects()
	if err != nil {
		return nil, err
	}
	return sortedTechSet(projects), nil
}

// Experiences

func (s *Store) CreateExperience(e *Experience) error {
	if err := validateRecord(e); err != nil {
		return err
	}
	return s.db.Create(e).Error
}

func (s *Store) Experience(id uint) (*Experience, error) {
	var e Experience
	if err := s.db.First(&e, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &e, nil
}

func (s *Store) UpdateExperience(id uint, e *Experience) error {
	var existing Experience
	if err := s.db.First(&existing, id).Error; err != nil {
		return notFoundOr(err)
	}
	if err := validateRecord(e); err != nil {
		return err
	}
	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	return s.db.Save(e).Error
}

func (s *Store) DeleteExperience(id uint) error {
	return deleteByID(s.db, &Experience{}, id)
}

func (s *Store) Experiences() ([]Experience, error) {
	var experiences []Experience
	err := s.db.Order(experienceOrder).Find(&experiences).Error
	return experiences, err
}

// Education

func (s *Store) CreateEducation(e *Education) error {
	if err := validateRecord(e); err != nil {
		return err
	}
	return s.db.Create(e).Error
}

func (s *Store) EducationByID(id uint) (*Education, error) {
	var e Education
	if err := s.db.First(&e, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &e, nil
}

func (s *Store) UpdateEducation(id uint, e *Education) error {
	var existing Education
	if err := s.db.First(&existing, id).Error; err != nil {
		return notFoundOr(err)
	}
	if err := validateRecord(e); err != nil {
		return err
	}
	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	return s.db.Save(e).Error
}

func (s *Store) DeleteEducation(id uint) error {
	return deleteByID(s.db, &Education{}, id)
}

func (s *Store) Education() ([]Education, error) {
	var education []Education
	err := s.db.Order(educationOrder).Find(&education).Error
	return education, err
}

// Certificates

func (s *Store) CreateCertificate(c *Certificate) error {
	if err := validateRecord(c); err != nil {
		return err
	}
	return s.db.Create(c).Error
}

func (s *Store) Certificate(id uint) (*Certificate, error) {
	var c Certificate
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &c, nil
}

func (s *Store) UpdateCertificate(id uint, c *Certificate) error {
	var existing Certificate
	if err := s.db.First(&existing, id).Error; err != nil {
		return notFoundOr(err)
	}
	if err := validateRecord(c); err != nil {
		return err
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	return s.db.Save(c).Error
}

func (s *Store) DeleteCertificate(id uint) error {
	return deleteByID(s.db, &Certificate{}, id)
}

func (s *Store) Certificates() ([]Certificate, error) {
	var certificates []Certificate
	err := s.db.Order(certificateOrder).Find(&certificates).Error
	return certificates, err
}

// Skills

func (s *Store) CreateSkill(sk *Skill) error {
	if err := validateRecord(sk); err != nil {
		return err
	}
	return s.db.Create(sk).Error
}

func (s *Store) Skill(id uint) (*Skill, error) {
	var sk Skill
	if err := s.db.First(&sk, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &sk, nil
}

func (s *Store) UpdateSkill(id uint, sk *Skill) error {
	var existing Skill
	if err := s.db.First(&existing, id).Error; err != nil {
		return notFoundOr(err)
	}
	if err := validateRecord(sk); err != nil {
		return err
	}
	sk.ID = existing.ID
	sk.CreatedAt = existing.CreatedAt
	return s.db.Save(sk).Error
}

func (s *Store) DeleteSkill(id uint) error {
	return deleteByID(s.db, &Skill{}, id)
}

func (s *Store) Skills() ([]Skill, error) {
	var skills []Skill
	err := s.db.Order(skillOrder).Find(&skills).Error
	return skills, err
}

// SkillsByCategory groups skills under their category labels, groups ordered
// by first appearance within the default skill sort.
func (s *Store) SkillsByCategory() ([]SkillGroup, error) {
	skills, err := s.Skills()
	if err != nil {
		return nil, err
	}
	index := make(map[SkillCategory]int)
	var groups []SkillGroup
	for _, sk := range skills {
		i, ok := index[sk.Category]
		if !ok {
			i = len(groups)
			index[sk.Category] = i
			groups = append(groups, SkillGroup{Category: sk.Category, Label: sk.Category.Label()})
		}
		groups[i].Skills = append(groups[i].Skills, sk)
	}
	return groups, nil
}

// About singleton

// GetOrCreateAbout returns the About row, lazily creating it with placeholder
// content on first access. Safe to call concurrently; exactly one row results.
func (s *Store) GetOrCreateAbout() (*About, error) {
	s.aboutMu.Lock()
	defer s.aboutMu.Unlock()

	var about About
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&about, aboutID).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		about = About{
			Model:   gorm.Model{ID: aboutID},
			Name:    "Your Name",
			Tagline: "Your tagline here",
			Bio:     "Your bio here",
			Email:   "your.email@example.com",
		}
		return tx.Create(&about).Error
	})
	if err != nil {
		return nil, err
	}
	return &about, nil
}

// UpsertAbout writes the About row in place. A create while a row exists
// becomes an update of that row; a second row is never produced.
func (s *Store) UpsertAbout(a *About) error {
	if err := validateRecord(a); err != nil {
		return err
	}

	s.aboutMu.Lock()
	defer s.aboutMu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing About
		err := tx.First(&existing, aboutID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.ID = aboutID
			a.CreatedAt = time.Time{}
			return tx.Create(a).Error
		}
		if err != nil {
			return err
		}
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		return tx.Save(a).Error
	})
}

// DeleteAbout always refuses: the profile is a singleton.
func (s *Store) DeleteAbout() error {
	return ErrSingletonDelete
}

// Stats reports per-entity row counts for the admin dashboard.
func (s *Store) Stats() (map[string]int64, error) {
	stats := make(map[string]int64)
	for name, model := range map[string]interface{}{
		"projects":     &Project{},
		"experiences":  &Experience{},
		"education":    &Education{},
		"certificates": &Certificate{},
		"skills":       &Skill{},
	} {
		var count int64
		if err := s.db.Model(model).Count(&count).Error; err != nil {
			return nil, err
		}
		stats[name] = count
	}
	return stats, nil
}

func deleteByID(db *gorm.DB, model interface{}, id uint) error {
	result := db.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
