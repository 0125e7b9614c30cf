package scene

import (
	"os"
	"path/filepath"
	"testing"
)

// TestParseMTLBasics verifies Kd, transparency, and Ni parse into a
// named material, and Tr is stored as the complement of Tr's argument.
func TestParseMTLBasics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mtl")
	data := "newmtl shiny\nKa 0.2 0.2 0.2\nKd 0.8 0.1 0.1\nKs 1 1 1\nTr 0.25\nNi 1.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	mats, err := loadMTL(path)
	if err != nil {
		t.Fatalf("loadMTL: %v", err)
	}
	m, ok := mats["shiny"]
	if !ok {
		t.Fatalf("expected material 'shiny', got %v", mats)
	}
	if m.Kd.R != 0.8 || m.Kd.G != 0.1 || m.Kd.B != 0.1 {
		t.Errorf("Kd = %+v, want (0.8,0.1,0.1)", m.Kd)
	}
	if m.Transparency != 0.75 {
		t.Errorf("Tr 0.25 should yield Transparency 0.75, got %f", m.Transparency)
	}
	if m.Ni != 1.5 {
		t.Errorf("Ni = %f, want 1.5", m.Ni)
	}
}

// TestParseMTLMultipleMaterials verifies each newmtl commits the prior
// material before starting a new one.
func TestParseMTLMultipleMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.mtl")
	data := "newmtl a\nKd 1 0 0\nnewmtl b\nKd 0 1 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	mats, err := loadMTL(path)
	if err != nil {
		t.Fatalf("loadMTL: %v", err)
	}
	if len(mats) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mats))
	}
	if mats["a"].Kd.R != 1 || mats["b"].Kd.G != 1 {
		t.Errorf("material colors not parsed correctly: %+v", mats)
	}
}
