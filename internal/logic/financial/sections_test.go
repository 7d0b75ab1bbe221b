package financial

import "testing"

func TestExtractSections(t *testing.T) {
	text := `[current_analysis]
Solid savings, underinvested.
[strategy_1]
Max out NISA.
[strategy_2]
Increase iDeCo contributions.
[strategy_3]
Rebalance to 60/40.`

	s, err := extractSections(text)
	if err != nil {
		t.Fatalf("extractSections: %v", err)
	}
	if s.CurrentAnalysis != "Solid savings, underinvested." {
		t.Errorf("current_analysis = %q", s.CurrentAnalysis)
	}
	if s.Strategy1 != "Max out NISA." {
		t.Errorf("strategy_1 = %q", s.Strategy1)
	}
	if s.Strategy3 != "Rebalance to 60/40." {
		t.Errorf("strategy_3 = %q", s.Strategy3)
	}
}

func TestExtractSectionsOutOfOrder(t *testing.T) {
	text := `[strategy_3]
c
[strategy_1]
a
[strategy_2]
b
[current_analysis]
analysis`

	s, err := extractSections(text)
	if err != nil {
		t.Fatalf("extractSections: %v", err)
	}
	if s.Strategy1 != "a" || s.Strategy2 != "b" || s.Strategy3 != "c" {
		t.Errorf("sections = (%q, %q, %q)", s.Strategy1, s.Strategy2, s.Strategy3)
	}
	if s.CurrentAnalysis != "analysis" {
		t.Errorf("current_analysis = %q", s.CurrentAnalysis)
	}
}

func TestExtractSectionsMissingHeader(t *testing.T) {
	if _, err := extractSections("[current_analysis]\nonly this"); err == nil {
		t.Fatal("expected an error for missing sections")
	}
}
