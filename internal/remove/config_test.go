package remove

import "testing"

func TestVerbosityFromCount(t *testing.T) {
	tests := []struct {
		count int
		want  Verbosity
	}{
		{count: -1, want: VerbositySimple},
		{count: 0, want: VerbositySimple},
		{count: 1, want: VerbosityStandard},
		{count: 2, want: VerbosityDetailed},
		{count: 5, want: VerbosityDetailed},
	}

	for _, tt := range tests {
		if got := VerbosityFromCount(tt.count); got != tt.want {
			t.Errorf("VerbosityFromCount(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestConfigWithDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.ScanThreads <= 0 {
		t.Errorf("ScanThreads = %d, want > 0", c.ScanThreads)
	}
	if c.DeleteThreads <= 0 {
		t.Errorf("DeleteThreads = %d, want > 0", c.DeleteThreads)
	}

	c = Config{ScanThreads: 3, DeleteThreads: 7}.withDefaults()
	if c.ScanThreads != 3 || c.DeleteThreads != 7 {
		t.Errorf("explicit thread counts changed: %+v", c)
	}
}
