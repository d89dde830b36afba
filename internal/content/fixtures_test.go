package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domerrors "github.com/aimldept/deptbot-go/internal/errors"
)

func loadEmbedded(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return snap
}

func TestLoadEmbeddedFixtures(t *testing.T) {
	snap := loadEmbedded(t)

	if len(snap.Faculty) == 0 {
		t.Error("no faculty records loaded")
	}
	if len(snap.Courses) == 0 {
		t.Error("no course records loaded")
	}
	if len(snap.Calendar) == 0 {
		t.Error("no calendar records loaded")
	}
	if len(snap.Infrastructure) == 0 {
		t.Error("no infrastructure records loaded")
	}
}

func TestSnapshotHasHOD(t *testing.T) {
	snap := loadEmbedded(t)

	hod := snap.HOD()
	if hod == nil {
		t.Fatal("no HOD record in fixtures")
	}
	if !strings.Contains(strings.ToLower(hod.Designation), "hod") {
		t.Errorf("HOD designation = %q", hod.Designation)
	}
}

func TestCoursesBySemester(t *testing.T) {
	snap := loadEmbedded(t)

	fifth := snap.CoursesBySemester("5")
	if len(fifth) == 0 {
		t.Fatal("no 5th semester courses in fixtures")
	}
	for _, c := range fifth {
		if !strings.HasPrefix(c.Semester, "5") {
			t.Errorf("course %s has semester %q", c.Code, c.Semester)
		}
	}
}

func TestCourseByCodeIsCaseInsensitive(t *testing.T) {
	snap := loadEmbedded(t)

	if snap.CourseByCode("21ai51") == nil {
		t.Error("lowercase course code lookup failed")
	}
	if snap.CourseByCode("99XX99") != nil {
		t.Error("unknown code should return nil")
	}
}

func TestDirectoryOverrideBeatsEmbedded(t *testing.T) {
	dir := t.TempDir()
	override := `[
		{
			"id": "FAC901", "name": "Dr. Test Only", "email": "t@x.edu",
			"designation": "Professor", "specialization": [], "researchAreas": [],
			"courses": []
		}
	]`
	if err := os.WriteFile(filepath.Join(dir, "faculty.json"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(snap.Faculty) != 1 || snap.Faculty[0].ID != "FAC901" {
		t.Errorf("override not applied, got %d faculty", len(snap.Faculty))
	}
	// Other domains still come from the embedded copies.
	if len(snap.Courses) == 0 {
		t.Error("courses should fall back to embedded fixture")
	}
}

func TestLoadRejectsMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	bad := `[{"id": "CRS900", "code": "badcode", "name": "X", "credits": 3, "semester": "5th"}]`
	if err := os.WriteFile(filepath.Join(dir, "courses.json"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected validation error for lowercase course code")
	}
	if !errors.Is(err, domerrors.ErrFixtureInvalid) {
		t.Errorf("error should wrap ErrFixtureInvalid, got: %v", err)
	}
}

func TestLoadRejectsDuplicateCourseCode(t *testing.T) {
	dir := t.TempDir()
	dup := `[
		{"id": "C1", "code": "21AI51", "name": "A", "credits": 3, "semester": "5th"},
		{"id": "C2", "code": "21AI51", "name": "B", "credits": 3, "semester": "5th"}
	]`
	if err := os.WriteFile(filepath.Join(dir, "courses.json"), []byte(dup), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected duplicate code error")
	}
}

func TestSemesterNumber(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"5th", "5"},
		{"3rd", "3"},
		{"10th", "10"},
		{"elective", ""},
	}
	for _, tt := range tests {
		c := CourseRecord{Semester: tt.label}
		if got := c.SemesterNumber(); got != tt.want {
			t.Errorf("SemesterNumber(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
