package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample source files in the on-disk format read by the ingest package.
// CS101 has two sections; CS101 A and CS202 A share a slot.
const (
	LocationsCSV = "ID,Room\n" +
		"1,BA1130\n" +
		"2,BA1160\n" +
		"3,EX100, Hall B\n" +
		"4,EX200\n" +
		"5,GB120\n"

	CoursesCSV = "ID,Course,Section,Name\n" +
		"1,CS101,A,Smith\n" +
		"2,CS101,B,\"Jones, Lee\"\n" +
		"3,CS202,A,\"Gries, Campbell, Horton\"\n" +
		"4,ENG100,A,Brown\n" +
		"5,MATH135,A,Euler\n"

	// TimeCSV uses bare CR line endings.
	TimeCSV = "ID,Date,Start,End,Duration\r" +
		"1,2024-04-10,09:00,12:00,3\r" +
		"2,2024-04-10,13:00,16:00,3\r" +
		"3,2024-04-10,09:00,11:00,2\r" +
		"4,2024-04-12,09:00,12:00,3\r" +
		"5,2024-04-13,14:00,16:30,2.5\r"
)

// SourceFiles names the three source files inside a data directory.
type SourceFiles struct {
	Dir       string
	Locations string
	Courses   string
	Time      string
}

// WriteSources writes the sample source files into a fresh temp dir using
// the default file names.
func WriteSources(t testing.TB) SourceFiles {
	t.Helper()
	return WriteSourcesWith(t, LocationsCSV, CoursesCSV, TimeCSV)
}

// WriteSourcesWith writes the given contents as locations.csv, courses.csv
// and time.csv in a fresh temp dir.
func WriteSourcesWith(t testing.TB, locations, courses, times string) SourceFiles {
	t.Helper()

	dir := t.TempDir()
	files := SourceFiles{
		Dir:       dir,
		Locations: filepath.Join(dir, "locations.csv"),
		Courses:   filepath.Join(dir, "courses.csv"),
		Time:      filepath.Join(dir, "time.csv"),
	}
	for path, content := range map[string]string{
		files.Locations: locations,
		files.Courses:   courses,
		files.Time:      times,
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return files
}
