package cmd

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		input  string
		hour   int
		minute int
		err    bool
	}{
		{"08:30", 8, 30, false},
		{"0:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"9:05", 9, 5, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"noon", 0, 0, true},
		{"12", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		hour, minute, err := parseClock(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("parseClock(%q): expected error, got %d:%d", tt.input, hour, minute)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if hour != tt.hour || minute != tt.minute {
			t.Errorf("parseClock(%q) = %d:%d, want %d:%d", tt.input, hour, minute, tt.hour, tt.minute)
		}
	}
}

func TestStartupLinkFlagWinsOverEnv(t *testing.T) {
	t.Setenv("QUOTEVAULT_LINK", "quotevault://login-callback")

	flagLink = "quotevault://reset-password#type=recovery"
	defer func() { flagLink = "" }()

	if got := startupLink(); got != "quotevault://reset-password#type=recovery" {
		t.Errorf("startupLink() = %q, want the flag value", got)
	}

	flagLink = ""
	if got := startupLink(); got != "quotevault://login-callback" {
		t.Errorf("startupLink() = %q, want the env value", got)
	}
}
