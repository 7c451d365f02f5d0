package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abceng/results-portal/model"
	"github.com/abceng/results-portal/utils/auth"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds seeds reference data and the admin user.
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	if err := s.SeedSubjects(); err != nil {
		return fmt.Errorf("failed to seed subjects: %w", err)
	}

	if err := s.SeedStudents(); err != nil {
		return fmt.Errorf("failed to seed students: %w", err)
	}

	log.Println("Database seeding completed.")
	return nil
}

// SeedAdminUser creates the default admin user from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped when either variable is unset.
func (s *Seeder) SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin user already exists, skipping")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:         "Examination Cell",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user %s", email)
	return nil
}

// SeedCourses creates the sample courses.
func (s *Seeder) SeedCourses() error {
	courses := []model.Course{
		{Name: "B.Tech Computer Science & Engineering", Code: "CSE", Duration: 8},
		{Name: "B.Tech Electronics & Communication", Code: "ECE", Duration: 8},
	}

	for _, course := range courses {
		var existing model.Course
		err := s.db.Where("code = ?", course.Code).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&course).Error; err != nil {
				return err
			}
			log.Printf("Created course %s", course.Code)
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SeedSubjects creates the semester 4 subject set for CSE.
func (s *Seeder) SeedSubjects() error {
	var cse model.Course
	if err := s.db.Where("code = ?", "CSE").First(&cse).Error; err != nil {
		return err
	}

	subjects := []model.Subject{
		{CourseID: cse.ID, Semester: 4, Code: "CSE401", Name: "Design & Analysis of Algorithms", MaxMarks: 100},
		{CourseID: cse.ID, Semester: 4, Code: "CSE402", Name: "Database Management Systems", MaxMarks: 100},
		{CourseID: cse.ID, Semester: 4, Code: "CSE403", Name: "Operating Systems", MaxMarks: 100},
		{CourseID: cse.ID, Semester: 4, Code: "CSE404", Name: "Computer Networks", MaxMarks: 100},
		{CourseID: cse.ID, Semester: 4, Code: "CSE405L", Name: "DBMS Laboratory", MaxMarks: 50},
	}

	for _, subject := range subjects {
		var existing model.Subject
		err := s.db.Where("code = ?", subject.Code).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&subject).Error; err != nil {
				return err
			}
			log.Printf("Created subject %s", subject.Code)
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SeedStudents creates a couple of sample students for local development.
func (s *Seeder) SeedStudents() error {
	var cse model.Course
	if err := s.db.Where("code = ?", "CSE").First(&cse).Error; err != nil {
		return err
	}

	dob := func(value string) datatypes.Date {
		t, _ := time.Parse("2006-01-02", value)
		return datatypes.Date(t)
	}

	students := []model.Student{
		{
			Name:               "John Doe",
			RegistrationNumber: "CSE2025010",
			RollNumber:         "21CSE010",
			CourseID:           cse.ID,
			Semester:           4,
			AcademicYear:       "2024-25",
			DateOfBirth:        dob("2002-03-12"),
		},
		{
			Name:               "Asha Verma",
			RegistrationNumber: "CSE2025011",
			RollNumber:         "21CSE011",
			CourseID:           cse.ID,
			Semester:           4,
			AcademicYear:       "2024-25",
			DateOfBirth:        dob("2003-07-28"),
		},
	}

	for _, student := range students {
		var existing model.Student
		err := s.db.Where("registration_number = ?", student.RegistrationNumber).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&student).Error; err != nil {
				return err
			}
			log.Printf("Created student %s", student.RegistrationNumber)
		} else if err != nil {
			return err
		}
	}
	return nil
}
