// Command resultsadmin is a standalone admin tool for the results portal.
// It opens its own plain database connection so it can run on hosts that
// do not carry the API process.
//
// Usage:
//
//	resultsadmin add-student -name "John Doe" -reg CSE2025010 -roll 21CSE010 -course CSE -semester 4 -year 2024-25 -dob 2002-03-12
//	resultsadmin update-result -reg CSE2025010 -subject CSE401 -internal 12 -external 56 -grade A
//	resultsadmin export-csv -out results.csv
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/abceng/results-portal/config"
	"github.com/abceng/results-portal/services"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	db, err := openDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "add-student":
		err = addStudent(db, os.Args[2:])
	case "update-result":
		err = updateResult(db, os.Args[2:])
	case "export-csv":
		err = exportCSV(db, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: resultsadmin <add-student|update-result|export-csv> [flags]")
}

func openDB() (*sql.DB, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD, getEnv.DB_NAME, getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func addStudent(db *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-student", flag.ExitOnError)
	name := fs.String("name", "", "student name")
	reg := fs.String("reg", "", "registration number")
	roll := fs.String("roll", "", "roll number")
	course := fs.String("course", "", "course code")
	semester := fs.Int("semester", 0, "semester")
	year := fs.String("year", "", "academic year, e.g. 2024-25")
	dob := fs.String("dob", "", "date of birth, YYYY-MM-DD")
	fs.Parse(args)

	if *name == "" || *reg == "" || *roll == "" || *course == "" || *semester <= 0 || *year == "" || *dob == "" {
		return fmt.Errorf("add-student: all flags are required")
	}
	if _, err := time.Parse("2006-01-02", *dob); err != nil {
		return fmt.Errorf("add-student: -dob must be in YYYY-MM-DD format")
	}

	var courseID int64
	err := db.QueryRow(
		`SELECT id FROM courses WHERE code = $1 AND deleted_at IS NULL`, *course,
	).Scan(&courseID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("course not found: %s", *course)
	}
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO students (created_at, updated_at, name, registration_number, roll_number, course_id, semester, academic_year, date_of_birth)
		 VALUES (now(), now(), $1, $2, $3, $4, $5, $6, $7)`,
		*name, *reg, *roll, courseID, *semester, *year, *dob,
	)
	if err != nil {
		return err
	}

	fmt.Println("Student added.")
	return nil
}

func updateResult(db *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-result", flag.ExitOnError)
	reg := fs.String("reg", "", "registration number")
	subject := fs.String("subject", "", "subject code")
	internal := fs.Int("internal", 0, "internal marks")
	external := fs.Int("external", 0, "external marks")
	grade := fs.String("grade", "", "grade label (optional)")
	fs.Parse(args)

	if *reg == "" || *subject == "" {
		return fmt.Errorf("update-result: -reg and -subject are required")
	}

	var studentID int64
	err := db.QueryRow(
		`SELECT id FROM students WHERE registration_number = $1 AND deleted_at IS NULL`, *reg,
	).Scan(&studentID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("student not found: %s", *reg)
	}
	if err != nil {
		return err
	}

	var subjectID int64
	err = db.QueryRow(
		`SELECT id FROM subjects WHERE code = $1 AND deleted_at IS NULL LIMIT 1`, *subject,
	).Scan(&subjectID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("subject not found: %s", *subject)
	}
	if err != nil {
		return err
	}

	// Check-then-write inside one transaction, serialized per pair with an
	// advisory lock. A row lock alone cannot cover the absent-row case,
	// where a concurrent first entry through the API could also insert.
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1::int, $2::int)`, studentID, subjectID); err != nil {
		return err
	}

	var resultID int64
	err = tx.QueryRow(
		`SELECT id FROM results WHERE student_id = $1 AND subject_id = $2 AND deleted_at IS NULL`,
		studentID, subjectID,
	).Scan(&resultID)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(
			`INSERT INTO results (created_at, updated_at, student_id, subject_id, internal_marks, external_marks, grade)
			 VALUES (now(), now(), $1, $2, $3, $4, $5)`,
			studentID, subjectID, *internal, *external, *grade,
		)
	case err == nil:
		_, err = tx.Exec(
			`UPDATE results SET internal_marks = $1, external_marks = $2, grade = $3, updated_at = now() WHERE id = $4`,
			*internal, *external, *grade, resultID,
		)
	}
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Println("Result updated.")
	return nil
}

func exportCSV(db *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export-csv", flag.ExitOnError)
	out := fs.String("out", "results_export.csv", "output file")
	fs.Parse(args)

	rows, err := db.Query(
		`SELECT st.registration_number, st.name, st.roll_number, c.name, st.semester, st.academic_year,
		        sub.code, sub.name, r.internal_marks, r.external_marks, COALESCE(r.grade, '')
		 FROM results r
		 JOIN students st ON st.id = r.student_id
		 JOIN courses c ON c.id = st.course_id
		 JOIN subjects sub ON sub.id = r.subject_id
		 WHERE r.deleted_at IS NULL AND st.deleted_at IS NULL
		   AND c.deleted_at IS NULL AND sub.deleted_at IS NULL
		 ORDER BY st.registration_number, sub.code`,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(services.ExportHeader); err != nil {
		return err
	}

	count := 0
	for rows.Next() {
		var (
			regNo, studentName, rollNo, courseName, year, subCode, subName, grade string
			semester, internal, external                                          int
		)
		if err := rows.Scan(&regNo, &studentName, &rollNo, &courseName, &semester, &year, &subCode, &subName, &internal, &external, &grade); err != nil {
			return err
		}
		record := []string{
			regNo, studentName, rollNo, courseName,
			strconv.Itoa(semester), year, subCode, subName,
			strconv.Itoa(internal), strconv.Itoa(external), grade,
		}
		if err := w.Write(record); err != nil {
			return err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Printf("Exported %d rows to %s\n", count, *out)
	return nil
}
