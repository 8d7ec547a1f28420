package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("solarized").Name; got != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want default", got)
	}
}

func TestNamesAndValid(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("names = %v", names)
	}
	for _, n := range names {
		if !Valid(n) {
			t.Errorf("Valid(%q) = false", n)
		}
	}
	if Valid("") {
		t.Error("empty name should not be valid")
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("flexoki-light")
	if Active.Name != "flexoki-light" {
		t.Errorf("Active = %q", Active.Name)
	}
}
