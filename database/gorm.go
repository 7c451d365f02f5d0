package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/abceng/results-portal/config"
	"github.com/abceng/results-portal/model"
	"github.com/abceng/results-portal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GORMStore is the PostgreSQL-backed record store. It satisfies
// services.Store and is constructed once at process start.
type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Student{},
		&model.Subject{},
		&model.Result{},
		&model.ExportSnapshot{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	log.Println("GORM AutoMigrate completed.")
	return nil
}

// GetDB returns the underlying *gorm.DB handle.
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// Close closes the underlying database connection.
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck pings the database.
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// FindStudentByCredentials matches registration number + date of birth.
// Returns nil when no pair matches.
func (s *GORMStore) FindStudentByCredentials(ctx context.Context, regNo, dob string) (*model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).
		Preload("Course").
		Where("registration_number = ? AND date_of_birth = ?", regNo, dob).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindStudentByReg returns the student with the given registration number,
// or nil when absent.
func (s *GORMStore) FindStudentByReg(ctx context.Context, regNo string) (*model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).
		Where("registration_number = ?", regNo).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindSubjectByCode returns the subject with the given code, or nil when
// absent.
func (s *GORMStore) FindSubjectByCode(ctx context.Context, code string) (*model.Subject, error) {
	var subject model.Subject
	err := s.db.WithContext(ctx).
		Where("code = ?", code).
		First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// FindSubjectsInScope lists the subjects of a course and semester.
func (s *GORMStore) FindSubjectsInScope(ctx context.Context, courseID uint, semester int) ([]model.Subject, error) {
	var subjects []model.Subject
	err := s.db.WithContext(ctx).
		Where("course_id = ? AND semester = ?", courseID, semester).
		Order("id").
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

// FindResult returns the result for a (student, subject) pair, or nil when
// no marks have been entered.
func (s *GORMStore) FindResult(ctx context.Context, studentID, subjectID uint) (*model.Result, error) {
	var result model.Result
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpsertResult creates or replaces the result row for a pair. The pair is
// serialized with a transaction-scoped advisory lock: a row lock alone
// cannot cover the absent-row case, where two concurrent first entries
// would both see no row and both insert.
func (s *GORMStore) UpsertResult(ctx context.Context, studentID, subjectID uint, internal, external int, grade string) (uint, error) {
	var id uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Released automatically at commit/rollback.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(studentID), int32(subjectID)).Error; err != nil {
			return err
		}

		var existing model.Result
		err := tx.Where("student_id = ? AND subject_id = ?", studentID, subjectID).
			First(&existing).Error

		if err == nil {
			existing.Internal = internal
			existing.External = external
			existing.Grade = grade
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			id = existing.ID
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created := model.Result{
			StudentID: studentID,
			SubjectID: subjectID,
			Internal:  internal,
			External:  external,
			Grade:     grade,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListAllResults returns the joined export rows ordered by registration
// number, then subject code.
func (s *GORMStore) ListAllResults(ctx context.Context) ([]services.ExportRow, error) {
	var rows []services.ExportRow
	err := s.db.WithContext(ctx).
		Table("results r").
		Select(`st.registration_number, st.name AS student_name, st.roll_number,
			c.name AS course_name, st.semester, st.academic_year,
			sub.code AS subject_code, sub.name AS subject_name,
			r.internal_marks AS internal, r.external_marks AS external, r.grade`).
		Joins("JOIN students st ON st.id = r.student_id").
		Joins("JOIN courses c ON c.id = st.course_id").
		Joins("JOIN subjects sub ON sub.id = r.subject_id").
		Where("r.deleted_at IS NULL AND st.deleted_at IS NULL AND c.deleted_at IS NULL AND sub.deleted_at IS NULL").
		Order("st.registration_number, sub.code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
