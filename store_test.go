package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	store, err := OpenStore(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	return store
}

func testProject(title string) *Project {
	return &Project{
		Title:        title,
		Description:  "A test project",
		Technologies: "Go, SQLite",
		DateCreated:  NewDate(2024, time.January, 1),
	}
}

func TestProjectCRUD(t *testing.T) {
	store := newTestStore(t)

	p := testProject("First")
	if err := store.CreateProject(p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("create did not assign an id")
	}

	got, err := store.Project(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "First" {
		t.Errorf("title = %q, want %q", got.Title, "First")
	}

	update := testProject("Renamed")
	if err := store.UpdateProject(p.ID, update); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = store.Project(p.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("title after update = %q, want %q", got.Title, "Renamed")
	}

	if err := store.DeleteProject(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Project(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := store.DeleteProject(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestProjectValidation(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		mutate  func(*Project)
		field   string
	}{
		{"missing title", func(p *Project) { p.Title = "" }, "title"},
		{"missing description", func(p *Project) { p.Description = "" }, "description"},
		{"title too long", func(p *Project) { p.Title = strings.Repeat("x", 201) }, "title"},
		{"bad github link", func(p *Project) { p.GithubLink = "not a url" }, "github_link"},
		{"missing date", func(p *Project) { p.DateCreated = Date{} }, "date_created"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProject("Valid")
			tt.mutate(p)
			err := store.CreateProject(p)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("create = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestSkillProficiencyRejectedOutsideRange(t *testing.T) {
	store := newTestStore(t)

	for _, proficiency := range []int{0, 5, -1} {
		err := store.CreateSkill(&Skill{Name: "Go", Category: CategoryLanguages, Proficiency: proficiency})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "proficiency" {
			t.Errorf("proficiency %d: err = %v, want ValidationError on proficiency", proficiency, err)
		}
	}

	for proficiency := 1; proficiency <= 4; proficiency++ {
		sk := &Skill{Name: fmt.Sprintf("Skill %d", proficiency), Category: CategoryLanguages, Proficiency: proficiency}
		if err := store.CreateSkill(sk); err != nil {
			t.Errorf("proficiency %d rejected: %v", proficiency, err)
		}
	}
}

func TestSkillCategoryRejected(t *testing.T) {
	store := newTestStore(t)

	err := store.CreateSkill(&Skill{Name: "Go", Category: "wizardry", Proficiency: 3})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "category" {
		t.Errorf("err = %v, want ValidationError on category", err)
	}
}

func TestProjectsDefaultOrder(t *testing.T) {
	store := newTestStore(t)

	older := testProject("B older")
	older.Order = 1
	older.DateCreated = NewDate(2023, time.January, 1)
	newer := testProject("A newer")
	newer.Order = 1
	newer.DateCreated = NewDate(2024, time.January, 1)
	last := testProject("C last")
	last.Order = 2
	last.DateCreated = NewDate(2025, time.January, 1)

	for _, p := range []*Project{older, last, newer} {
		if err := store.CreateProject(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	projects, err := store.Projects()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var titles []string
	for _, p := range projects {
		titles = append(titles, p.Title)
	}
	want := []string{"A newer", "B older", "C last"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("order = %v, want %v", titles, want)
	}
}

func TestFeaturedProjects(t *testing.T) {
	store := newTestStore(t)

	for i := 1; i <= 4; i++ {
		p := testProject(fmt.Sprintf("Featured %d", i))
		p.IsFeatured = true
		p.Order = i
		if err := store.CreateProject(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	hidden := testProject("Not featured")
	if err := store.CreateProject(hidden); err != nil {
		t.Fatalf("create: %v", err)
	}

	featured, err := store.FeaturedProjects(3)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(featured) != 3 {
		t.Fatalf("len = %d, want 3", len(featured))
	}
	for i, p := range featured {
		if !p.IsFeatured {
			t.Errorf("result %d is not featured", i)
		}
	}
	if featured[0].Title != "Featured 1" || featured[2].Title != "Featured 3" {
		t.Errorf("unexpected order: %q ... %q", featured[0].Title, featured[2].Title)
	}
}

func TestProjectsByTech(t *testing.T) {
	store := newTestStore(t)

	django := testProject("Django app")
	django.Technologies = "Django, Python"
	flask := testProject("Flask app")
	flask.Technologies = "Flask, Python"
	for _, p := range []*Project{django, flask} {
		if err := store.CreateProject(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tests := []struct {
		tech string
		want int
	}{
		{"django", 1},
		{"DJANGO", 1},
		{"python", 2},
		{"jang", 1}, // substring inside one technology name still matches
		{"rust", 0},
		{"", 2},
		// LIKE metacharacters are literals, not wildcards
		{"d%o", 0},
		{"dj_ngo", 0},
		{`dj\ango`, 0},
	}

	for _, tt := range tests {
		got, err := store.ProjectsByTech(tt.tech)
		if err != nil {
			t.Fatalf("filter %q: %v", tt.tech, err)
		}
		if len(got) != tt.want {
			t.Errorf("filter %q matched %d projects, want %d", tt.tech, len(got), tt.want)
		}
	}
}

func TestAllTechnologies(t *testing.T) {
	store := newTestStore(t)

	a := testProject("A")
	a.Technologies = "Python, Django"
	b := testProject("B")
	b.Technologies = "python, React"
	for _, p := range []*Project{a, b} {
		if err := store.CreateProject(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	techs, err := store.AllTechnologies()
	if err != nil {
		t.Fatalf("all technologies: %v", err)
	}
	// dedup is exact-match, so "Python" and "python" both survive
	want := []string{"Django", "Python", "React", "python"}
	if !reflect.DeepEqual(techs, want) {
		t.Errorf("techs = %v, want %v", techs, want)
	}
}

func TestSkillsByCategory(t *testing.T) {
	store := newTestStore(t)

	skills := []Skill{
		{Name: "Docker", Category: CategoryTools, Proficiency: 3, Order: 1},
		{Name: "Go", Category: CategoryLanguages, Proficiency: 4, Order: 1},
		{Name: "Python", Category: CategoryLanguages, Proficiency: 3, Order: 2},
		{Name: "React", Category: CategoryFrameworks, Proficiency: 3, Order: 1},
	}
	for i := range skills {
		if err := store.CreateSkill(&skills[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	groups, err := store.SkillsByCategory()
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	var labels []string
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	want := []string{"Frameworks & Libraries", "Programming Languages", "Tools & Technologies"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("group labels = %v, want %v", labels, want)
	}

	languages := groups[1]
	if len(languages.Skills) != 2 || languages.Skills[0].Name != "Go" || languages.Skills[1].Name != "Python" {
		t.Errorf("languages group = %+v, want Go then Python", languages.Skills)
	}
}

func TestGetOrCreateAbout(t *testing.T) {
	store := newTestStore(t)

	first, err := store.GetOrCreateAbout()
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.Name != "Your Name" || first.Email != "your.email@example.com" {
		t.Errorf("placeholder defaults missing: %+v", first)
	}

	second, err := store.GetOrCreateAbout()
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call returned id %d, want %d", second.ID, first.ID)
	}

	var count int64
	if err := store.db.Model(&About{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("about rows = %d, want 1", count)
	}
}

func TestGetOrCreateAboutConcurrent(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.GetOrCreateAbout(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent call: %v", err)
	}

	var count int64
	if err := store.db.Model(&About{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("about rows = %d, want 1", count)
	}
}

func TestUpsertAboutNeverCreatesSecondRow(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetOrCreateAbout(); err != nil {
		t.Fatalf("get or create: %v", err)
	}

	// a "create" with no id must update the existing row in place
	replacement := &About{Name: "Jane Doe", Bio: "Engineer", Email: "jane@example.com"}
	if err := store.UpsertAbout(replacement); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if replacement.ID != aboutID {
		t.Errorf("upsert id = %d, want %d", replacement.ID, aboutID)
	}

	var count int64
	if err := store.db.Model(&About{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("about rows = %d, want 1", count)
	}

	got, err := store.GetOrCreateAbout()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Jane Doe" {
		t.Errorf("name = %q, want %q", got.Name, "Jane Doe")
	}
}

func TestUpsertAboutValidation(t *testing.T) {
	store := newTestStore(t)

	err := store.UpsertAbout(&About{Name: "Jane", Bio: "Bio", Email: "not-an-email"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Errorf("err = %v, want ValidationError on email", err)
	}
}

func TestDeleteAboutRejected(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetOrCreateAbout(); err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if err := store.DeleteAbout(); !errors.Is(err, ErrSingletonDelete) {
		t.Errorf("delete = %v, want ErrSingletonDelete", err)
	}

	var count int64
	if err := store.db.Model(&About{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("about rows = %d, want 1", count)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	store := newTestStore(t)

	if err := store.UpdateProject(999, testProject("Ghost")); !errors.Is(err, ErrNotFound) {
		t.Errorf("update project = %v, want ErrNotFound", err)
	}
	if err := store.UpdateSkill(999, &Skill{Name: "Go", Category: CategoryLanguages, Proficiency: 3}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update skill = %v, want ErrNotFound", err)
	}
}

func TestExperienceDefaultOrder(t *testing.T) {
	store := newTestStore(t)

	old := &Experience{Company: "Old Co", Position: "Dev", Description: "d", StartDate: NewDate(2018, time.March, 1), Order: 1}
	recent := &Experience{Company: "New Co", Position: "Dev", Description: "d", StartDate: NewDate(2023, time.March, 1), Order: 1}
	for _, e := range []*Experience{old, recent} {
		if err := store.CreateExperience(e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	experiences, err := store.Experiences()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(experiences) != 2 || experiences[0].Company != "New Co" {
		t.Errorf("expected the newer start date first, got %+v", experiences)
	}
}

func TestCertificatesDefaultOrder(t *testing.T) {
	store := newTestStore(t)

	certs := []*Certificate{
		{Title: "B older", IssuingOrganization: "Org", IssueDate: NewDate(2022, time.March, 1), Order: 1},
		{Title: "C last", IssuingOrganization: "Org", IssueDate: NewDate(2025, time.March, 1), Order: 2},
		{Title: "A newer", IssuingOrganization: "Org", IssueDate: NewDate(2024, time.March, 1), Order: 1},
	}
	for _, c := range certs {
		if err := store.CreateCertificate(c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := store.Certificates()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var titles []string
	for _, c := range got {
		titles = append(titles, c.Title)
	}
	// order asc first, issue_date desc breaking the tie
	want := []string{"A newer", "B older", "C last"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("order = %v, want %v", titles, want)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)

	if err := store.CreateProject(testProject("P")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateSkill(&Skill{Name: "Go", Category: CategoryLanguages, Proficiency: 4}); err != nil {
		t.Fatalf("create: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats["projects"] != 1 || stats["skills"] != 1 || stats["certificates"] != 0 {
		t.Errorf("stats = %v", stats)
	}
}
