package domain

import "testing"

func TestMatchFirstAidLevelCanonicalizes(t *testing.T) {
	level, ok := MatchFirstAidLevel("  standard first aid ")
	if !ok {
		t.Fatalf("expected match for standard first aid")
	}
	if level != "Standard First Aid" {
		t.Fatalf("expected canonical name, got %q", level)
	}
}

func TestMatchFirstAidLevelPassesThroughUnknown(t *testing.T) {
	level, ok := MatchFirstAidLevel("Advanced Diving")
	if ok {
		t.Fatalf("did not expect a vocabulary match")
	}
	if level != "Advanced Diving" {
		t.Fatalf("expected trimmed passthrough, got %q", level)
	}
}

func TestMatchCPRLevelEmpty(t *testing.T) {
	level, ok := MatchCPRLevel("   ")
	if ok || level != "" {
		t.Fatalf("expected empty result for blank input, got %q, %v", level, ok)
	}
}

func TestHeaderSynonymsCoverDocumentedAlternates(t *testing.T) {
	cases := map[string]string{
		"Student Name": "Name",
		"Email":        "Email Address",
		"Phone":        "Phone Number",
		"Company":      "Organization",
		"Province":     "State",
		"Postal Code":  "Zip Code",
	}

	for canonical, alternate := range cases {
		found := false
		for _, synonym := range HeaderSynonyms[canonical] {
			if synonym == alternate {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %q to be a documented synonym of %q", alternate, canonical)
		}
	}
}

func TestRosterEntryWithErrorsKeepsInvariant(t *testing.T) {
	entry := RosterEntry{RowIndex: 3}

	clean := entry.WithErrors(nil)
	if clean.HasError {
		t.Fatalf("entry with no errors must not be flagged")
	}
	if clean.Errors == nil {
		t.Fatalf("errors must be non-nil so JSON renders an empty list")
	}

	flagged := entry.WithErrors([]string{"Row 4: Student name is required"})
	if !flagged.HasError {
		t.Fatalf("entry with errors must be flagged")
	}
	if len(flagged.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(flagged.Errors))
	}
}
