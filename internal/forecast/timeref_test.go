package forecast

import (
	"testing"
	"time"
)

func TestParseTimeReference(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantErr  bool
	}{
		{"", "local", false},
		{"local", "local", false},
		{"UTC", "utc", false},
		{"city", "city", false},
		{" City ", "city", false},
		{"Asia/Kolkata", "Asia/Kolkata", false},
		{"Not/AZone", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := ParseTimeReference(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeReference(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && ref.String() != tt.wantName {
				t.Errorf("ParseTimeReference(%q).String() = %s, want %s", tt.input, ref.String(), tt.wantName)
			}
		})
	}
}

func TestTimeReference_Location(t *testing.T) {
	if loc := UTCTime().Location(3600, "Paris"); loc != time.UTC {
		t.Errorf("UTCTime().Location() = %v, want UTC", loc)
	}

	if loc := LocalTime().Location(3600, "Paris"); loc != time.Local {
		t.Errorf("LocalTime().Location() = %v, want Local", loc)
	}

	loc := CityTime().Location(19800, "Visakhapatnam")
	_, offset := time.Date(2025, 8, 6, 0, 0, 0, 0, loc).Zone()
	if offset != 19800 {
		t.Errorf("CityTime() offset = %d, want 19800", offset)
	}

	var zero TimeReference
	if zero.Location(0, "") != time.Local {
		t.Error("zero TimeReference should resolve to local time")
	}
}
