package repositories

import (
	"time"

	"github.com/applyflow/applyflow/internal/entities"
)

func intPtr(v int) *int { return &v }

func sampleListings() []entities.JobListing {
	now := time.Now()
	return []entities.JobListing{
		{
			Title:        "Frontend Developer",
			Company:      "TechCorp",
			Location:     "San Francisco, CA",
			Type:         "Full-time",
			Remote:       true,
			SalaryMin:    intPtr(90000),
			SalaryMax:    intPtr(120000),
			Description:  "Build user interfaces with React and TypeScript",
			Requirements: "3+ years React experience, TypeScript, CSS",
			SourceURL:    "https://example.com/job1",
			Posted:       now.Add(-24 * time.Hour),
		},
		{
			Title:        "Full Stack Engineer",
			Company:      "StartupXYZ",
			Location:     "New York, NY",
			Type:         "Full-time",
			Remote:       false,
			SalaryMin:    intPtr(100000),
			SalaryMax:    intPtr(130000),
			Description:  "Work on both frontend and backend systems",
			Requirements: "Node.js, React, PostgreSQL, 5+ years experience",
			SourceURL:    "https://example.com/job2",
			Posted:       now.Add(-48 * time.Hour),
		},
		{
			Title:        "React Developer",
			Company:      "WebSolutions",
			Location:     "Remote",
			Type:         "Contract",
			Remote:       true,
			SalaryMin:    intPtr(130000),
			SalaryMax:    intPtr(150000),
			Description:  "Create responsive web applications using React",
			Requirements: "React, JavaScript, HTML/CSS, 2+ years experience",
			SourceURL:    "https://example.com/job3",
			Posted:       now.Add(-72 * time.Hour),
		},
		{
			Title:        "Software Engineer",
			Company:      "BigTech Inc",
			Location:     "Seattle, WA",
			Type:         "Full-time",
			Remote:       true,
			SalaryMin:    intPtr(130000),
			SalaryMax:    intPtr(160000),
			Description:  "Develop scalable software solutions",
			Requirements: "Computer Science degree, 4+ years experience",
			SourceURL:    "https://example.com/job4",
			Posted:       now.Add(-96 * time.Hour),
		},
		{
			Title:        "UI/UX Developer",
			Company:      "DesignStudio",
			Location:     "Austin, TX",
			Type:         "Full-time",
			Remote:       false,
			SalaryMin:    intPtr(80000),
			SalaryMax:    intPtr(100000),
			Description:  "Design and implement user interfaces",
			Requirements: "Figma, HTML/CSS, JavaScript, design experience",
			SourceURL:    "https://example.com/job5",
			Posted:       now.Add(-120 * time.Hour),
		},
	}
}
