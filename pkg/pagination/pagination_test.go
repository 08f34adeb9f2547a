package pagination

import "testing"

func TestParseDefaults(t *testing.T) {
	page, err := Parse("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.From != 0 || page.Size != DefaultSize {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestParseExplicitValues(t *testing.T) {
	page, err := Parse("10", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.From != 10 || page.Size != 5 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestParseCapsSize(t *testing.T) {
	page, err := Parse("0", "500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Size != MaxSize {
		t.Fatalf("expected size capped at %d, got %d", MaxSize, page.Size)
	}
}

func TestParseRejectsNegativeFrom(t *testing.T) {
	if _, err := Parse("-1", ""); err == nil {
		t.Fatal("expected error for negative from")
	}
}

func TestParseRejectsZeroSize(t *testing.T) {
	if _, err := Parse("", "0"); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("abc", ""); err == nil {
		t.Fatal("expected error for non-numeric from")
	}
}
