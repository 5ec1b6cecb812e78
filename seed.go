// seed.go sample content for a fresh database, behind the -seed flag
package main

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// alreadySeeded reports whether a record matching the natural key exists, so
// running -seed twice never duplicates content.
func alreadySeeded(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := db.Model(model).Where(query, args...).Count(&count).Error
	return count > 0, err
}

// seedSampleData fills an empty portfolio with editable placeholder content.
// Safe to re-run; existing records are left alone.
func seedSampleData(s *Store) error {
	about, err := s.GetOrCreateAbout()
	if err != nil {
		return fmt.Errorf("seed about: %w", err)
	}
	if about.Name != "Your Name" {
		log.Printf("about profile already filled in, skipping")
		return seedRecords(s)
	}
	about.Name = "Your Name Here"
	about.Tagline = "Full Stack Developer | Go Enthusiast | Problem Solver"
	about.Bio = "I'm a passionate developer who loves building elegant solutions to complex problems. " +
		"With expertise in Go, Python, and modern web technologies, I create applications that make a difference. " +
		"When I'm not coding, you can find me exploring new technologies or contributing to open-source projects."
	about.Email = "your.email@example.com"
	about.Location = "Your City, Country"
	about.GithubURL = "https://github.com/yourusername"
	about.LinkedinURL = "https://linkedin.com/in/yourusername"
	if err := s.UpsertAbout(about); err != nil {
		return fmt.Errorf("seed about: %w", err)
	}

	return seedRecords(s)
}

func seedRecords(s *Store) error {
	projects := []Project{
		{
			Title: "Portfolio Website",
			Description: "A modern portfolio website backend with project showcases, resume display, " +
				"and an admin API for easy content management.",
			Technologies: "Go, SQLite, REST, JavaScript",
			GithubLink:   "https://github.com/yourusername/portfolio",
			IsFeatured:   true,
			Order:        1,
			DateCreated:  NewDate(2024, time.November, 1),
		},
		{
			Title: "Task Management API",
			Description: "RESTful API for task management with user authentication, CRUD operations, " +
				"and real-time updates. Implements JWT authentication and includes comprehensive API documentation.",
			Technologies: "Go, PostgreSQL, Redis, Docker",
			GithubLink:   "https://github.com/yourusername/task-api",
			IsFeatured:   true,
			Order:        2,
			DateCreated:  NewDate(2024, time.September, 15),
		},
		{
			Title: "Weather Dashboard",
			Description: "Interactive weather dashboard that displays real-time weather data with beautiful " +
				"visualizations. Features location-based forecasts and weather alerts.",
			Technologies: "React, Python, Flask, OpenWeather API, Chart.js",
			GithubLink:   "https://github.com/yourusername/weather-dashboard",
			IsFeatured:   true,
			Order:        3,
			DateCreated:  NewDate(2024, time.July, 20),
		},
		{
			Title: "E-Commerce Platform",
			Description: "Full-featured e-commerce platform with shopping cart, payment integration, and order " +
				"management. Includes admin dashboard for inventory management.",
			Technologies: "Django, Stripe API, PostgreSQL, Bootstrap",
			GithubLink:   "https://github.com/yourusername/ecommerce",
			Order:        4,
			DateCreated:  NewDate(2024, time.May, 10),
		},
	}
	for i := range projects {
		exists, err := alreadySeeded(s.db, &Project{}, "title = ?", projects[i].Title)
		if err != nil {
			return fmt.Errorf("seed project %q: %w", projects[i].Title, err)
		}
		if exists {
			log.Printf("project %q already exists, skipping", projects[i].Title)
			continue
		}
		if err := s.CreateProject(&projects[i]); err != nil {
			return fmt.Errorf("seed project %q: %w", projects[i].Title, err)
		}
	}

	end := NewDate(2022, time.December, 31)
	experiences := []Experience{
		{
			Company:     "Tech Company Inc.",
			Position:    "Senior Software Developer",
			StartDate:   NewDate(2023, time.January, 1),
			Description: "Leading backend development for customer-facing products.",
			Achievements: "Reduced API response times by 40% through query optimization\n" +
				"Mentored three junior developers\n" +
				"Shipped a payments integration used by 50k customers",
			Order: 1,
		},
		{
			Company:     "Startup Labs",
			Position:    "Software Developer",
			StartDate:   NewDate(2020, time.June, 1),
			EndDate:     &end,
			Description: "Full stack development across web and internal tooling.",
			Achievements: "Built the internal admin dashboard from scratch\n" +
				"Introduced CI that cut release time in half",
			Order: 2,
		},
	}
	for i := range experiences {
		exists, err := alreadySeeded(s.db, &Experience{}, "company = ? AND position = ?", experiences[i].Company, experiences[i].Position)
		if err != nil {
			return fmt.Errorf("seed experience %q: %w", experiences[i].Company, err)
		}
		if exists {
			log.Printf("experience at %q already exists, skipping", experiences[i].Company)
			continue
		}
		if err := s.CreateExperience(&experiences[i]); err != nil {
			return fmt.Errorf("seed experience %q: %w", experiences[i].Company, err)
		}
	}

	eduEnd := NewDate(2020, time.May, 15)
	education := []Education{
		{
			Institution:  "State University",
			Degree:       "Bachelor of Science",
			FieldOfStudy: "Computer Science",
			StartDate:    NewDate(2016, time.September, 1),
			EndDate:      &eduEnd,
			Description:  "Graduated with honors. Relevant coursework: algorithms, databases, distributed systems.",
			GPA:          "3.8/4.0",
			Order:        1,
		},
	}
	for i := range education {
		exists, err := alreadySeeded(s.db, &Education{}, "institution = ? AND degree = ?", education[i].Institution, education[i].Degree)
		if err != nil {
			return fmt.Errorf("seed education %q: %w", education[i].Institution, err)
		}
		if exists {
			log.Printf("education at %q already exists, skipping", education[i].Institution)
			continue
		}
		if err := s.CreateEducation(&education[i]); err != nil {
			return fmt.Errorf("seed education %q: %w", education[i].Institution, err)
		}
	}

	certExpiry := NewDate(2027, time.March, 1)
	certificates := []Certificate{
		{
			Title:               "AWS Certified Solutions Architect",
			IssuingOrganization: "Amazon Web Services",
			IssueDate:           NewDate(2024, time.March, 1),
			ExpiryDate:          &certExpiry,
			CredentialID:        "AWS-SAA-000000",
			CredentialURL:       "https://aws.amazon.com/verification",
			Order:               1,
		},
		{
			Title:               "Machine Learning Specialization",
			IssuingOrganization: "Coursera",
			IssueDate:           NewDate(2023, time.August, 12),
			Description:         "Three-course specialization covering supervised and unsupervised learning.",
			Order:               2,
		},
	}
	for i := range certificates {
		exists, err := alreadySeeded(s.db, &Certificate{}, "title = ?", certificates[i].Title)
		if err != nil {
			return fmt.Errorf("seed certificate %q: %w", certificates[i].Title, err)
		}
		if exists {
			log.Printf("certificate %q already exists, skipping", certificates[i].Title)
			continue
		}
		if err := s.CreateCertificate(&certificates[i]); err != nil {
			return fmt.Errorf("seed certificate %q: %w", certificates[i].Title, err)
		}
	}

	skills := []Skill{
		{Name: "Go", Category: CategoryLanguages, Proficiency: 4, Order: 1},
		{Name: "Python", Category: CategoryLanguages, Proficiency: 4, Order: 2},
		{Name: "JavaScript", Category: CategoryLanguages, Proficiency: 3, Order: 3},
		{Name: "SQL", Category: CategoryLanguages, Proficiency: 3, Order: 4},
		{Name: "Django", Category: CategoryFrameworks, Proficiency: 3, Order: 1},
		{Name: "React", Category: CategoryFrameworks, Proficiency: 3, Order: 2},
		{Name: "Docker", Category: CategoryTools, Proficiency: 3, Order: 1},
		{Name: "Git", Category: CategoryTools, Proficiency: 4, Order: 2},
		{Name: "PostgreSQL", Category: CategoryDatabases, Proficiency: 3, Order: 1},
		{Name: "SQLite", Category: CategoryDatabases, Proficiency: 4, Order: 2},
		{Name: "Technical Writing", Category: CategoryOther, Proficiency: 3, Order: 1},
	}
	for i := range skills {
		exists, err := alreadySeeded(s.db, &Skill{}, "name = ? AND category = ?", skills[i].Name, skills[i].Category)
		if err != nil {
			return fmt.Errorf("seed skill %q: %w", skills[i].Name, err)
		}
		if exists {
			log.Printf("skill %q already exists, skipping", skills[i].Name)
			continue
		}
		if err := s.CreateSkill(&skills[i]); err != nil {
			return fmt.Errorf("seed skill %q: %w", skills[i].Name, err)
		}
	}

	return nil
}
