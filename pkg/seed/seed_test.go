package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(d.Projects) == 0 || len(d.Staff) == 0 || len(d.Tasks) == 0 || len(d.Assignments) == 0 {
		t.Fatalf("Expected every collection to be seeded, got %d/%d/%d/%d",
			len(d.Projects), len(d.Staff), len(d.Tasks), len(d.Assignments))
	}

	if d.Projects[0].Name != "Riverside Office Complex" {
		t.Errorf("Unexpected first project %q", d.Projects[0].Name)
	}
	if d.Projects[0].Status != "in progress" {
		t.Errorf("Expected status 'in progress', got %q", d.Projects[0].Status)
	}
	for _, s := range d.Staff {
		if s.DailyRate != s.HourlyRate*8 {
			t.Errorf("Staff %d: daily rate %f does not match hourly %f", s.ID, s.DailyRate, s.HourlyRate)
		}
	}
}

func TestParse_DuplicateIDs(t *testing.T) {
	raw := []byte(`
staff:
  - id: 1
    name: A
  - id: 1
    name: B
`)
	if _, err := Parse(raw); err == nil {
		t.Error("Expected duplicate id error")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	raw := []byte("projects:\n  - id: 7\n    name: Test Site\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Projects) != 1 || d.Projects[0].ID != 7 {
		t.Errorf("Unexpected projects: %+v", d.Projects)
	}
	if len(d.Staff) != 0 {
		t.Errorf("Expected no staff, got %d", len(d.Staff))
	}
}
