package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rtctrl/rtctrl"
)

func TestBuildFormulaTranslatesUntilWithNestedOperands(t *testing.T) {
	fj := &formulaJSON{
		Op: "until",
		Left: &formulaJSON{Op: "ap", AP: "a"},
		Right: &formulaJSON{Op: "not", Left: &formulaJSON{Op: "ap", AP: "b"}},
		Interval: &intervalJSON{
			Lower: boundJSON{Kind: "closed", Value: 0},
			Upper: boundJSON{Kind: "open", Value: 5},
		},
	}
	f, err := buildFormula(fj)
	if err != nil {
		t.Fatal(err)
	}
	if f.Op != rtctrl.MTLUntil {
		t.Fatalf("expected MTLUntil, got %v", f.Op)
	}
	if f.Interval.Upper.Kind != rtctrl.Open || f.Interval.Upper.Value != 5 {
		t.Fatalf("unexpected interval %v", f.Interval)
	}
}

func TestBuildFormulaRejectsUnknownOperator(t *testing.T) {
	_, err := buildFormula(&formulaJSON{Op: "nonsense"})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoadFormulaRoundTripsThroughJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phi.json")
	doc := `{"op":"and","left":{"op":"true"},"right":{"op":"ap","ap":"a"}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := loadFormula(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Op != rtctrl.MTLAnd {
		t.Fatalf("expected MTLAnd, got %v", f.Op)
	}
}

func TestSplitActionsTrimsAndIgnoresEmpty(t *testing.T) {
	got := splitActions(" a, b ,,c")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSplitActionsReturnsNilForEmptyString(t *testing.T) {
	if got := splitActions("  "); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
