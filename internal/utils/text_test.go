package utils

import "testing"

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{
			name:   "longer than max",
			in:     "0123456789",
			maxLen: 6,
			want:   "012...89",
		},
		{
			name:   "exactly max",
			in:     "012345",
			maxLen: 6,
			want:   "012345",
		},
		{
			name:   "shorter than max",
			in:     "012",
			maxLen: 6,
			want:   "012",
		},
		{
			name:   "empty",
			in:     "",
			maxLen: 6,
			want:   "",
		},
		{
			name:   "odd max favors the head",
			in:     "0123456789",
			maxLen: 7,
			want:   "0123...89",
		},
		{
			name:   "multibyte runes",
			in:     "àéîöùàéîöù",
			maxLen: 6,
			want:   "àéî...öù",
		},
		{
			name:   "zero max is passthrough",
			in:     "0123456789",
			maxLen: 0,
			want:   "0123456789",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateMiddle(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("TruncateMiddle(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
