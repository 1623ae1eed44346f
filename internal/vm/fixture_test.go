package vm

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestFixtures runs every .kpl program under testdata/ and compares its
// print output against the matching .out file, one checked-in golden
// program per language feature area.
func TestFixtures(t *testing.T) {
	fixtures, err := filepath.Glob("../../testdata/*.kpl")
	if err != nil {
		t.Fatalf("failed to glob fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatal("expected at least one .kpl fixture under testdata/")
	}

	for _, kplFile := range fixtures {
		kplFile := kplFile
		name := filepath.Base(kplFile)
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(kplFile)
			if err != nil {
				t.Fatalf("failed to read %s: %v", kplFile, err)
			}

			outFile := kplFile[:len(kplFile)-len(filepath.Ext(kplFile))] + ".out"
			expected, err := os.ReadFile(outFile)
			if err != nil {
				t.Skipf("no expected output file %s", outFile)
			}

			var out bytes.Buffer
			v := New()
			v.SetOutput(&out)
			if _, err := v.Run(string(source)); err != nil {
				t.Fatalf("Run(%s) returned error: %v", name, err)
			}

			if out.String() != string(expected) {
				t.Errorf("output mismatch for %s:\nExpected:\n%s\nActual:\n%s", name, expected, out.String())
			}
		})
	}
}
