package stats

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected Status
	}{
		{"Pending", Pending},
		{"IN_PROGRESS", InProgress},
		{"in progress", InProgress},
		{"resolved-case", Resolved},
		{"Resolve", Resolved},
		{"CLOSED", Closed},
		{"closure pending", Pending}, // "pending" wins over "close"
		{"progress resolved", InProgress},
		{"", Pending},
		{"unknown", Pending},
		{"ÉN COURS", Pending},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeStatus(tt.raw); got != tt.expected {
				t.Errorf("NormalizeStatus(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeStatus_Total(t *testing.T) {
	inputs := []string{"", " ", "\x00", "🔥", "PROGRESS", "closedpendingresolve", "ｐｅｎｄｉｎｇ"}
	for _, in := range inputs {
		s := NormalizeStatus(in)
		switch s {
		case Pending, InProgress, Resolved, Closed:
		default:
			t.Errorf("NormalizeStatus(%q) returned out-of-range status %d", in, s)
		}
	}
}

func TestNormalizeUrgency(t *testing.T) {
	tests := []struct {
		raw      string
		expected Urgency
		ok       bool
	}{
		{"High priority", High, true},
		{"MEDIUM", Medium, true},
		{"low", Low, true},
		{"highlow", High, true},
		{"n/a", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeUrgency(tt.raw)
			if ok != tt.ok {
				t.Fatalf("NormalizeUrgency(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("NormalizeUrgency(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name     string
		raw      *string
		expected string
	}{
		{"Nil", nil, "Uncategorized"},
		{"Empty", str(""), "Uncategorized"},
		{"OnlySeparators", str(" -_ "), "Uncategorized"},
		{"Underscore", str(" Foo_Bar "), "Foo Bar"},
		{"Hyphen", str("Network-Issue"), "Network Issue"},
		{"Runs", str("a__b -- c\t\td"), "a b c d"},
		{"CasePreserved", str("Billing"), "Billing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCategory(tt.raw); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestVariantMetadata(t *testing.T) {
	if InProgress.Key() != "inProgress" || InProgress.Label() != "In Progress" {
		t.Errorf("unexpected InProgress metadata: %s / %s", InProgress.Key(), InProgress.Label())
	}
	if Pending.Color() != "#f97316" {
		t.Errorf("unexpected pending color: %s", Pending.Color())
	}
	if High.Color() != "#dc2626" || Low.Label() != "Low" {
		t.Errorf("unexpected urgency metadata")
	}
}
