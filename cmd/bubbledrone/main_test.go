package main

import (
	"strings"
	"testing"
)

func TestHelpDescribesColors(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{"red", "kills the drone on contact, or pops whatever it hits"},
		{"yellow", "shields the drone"},
		{"orange", "bursts nearby bubbles and speeds the drone up"},
		{"green", "turns the other bubbles green and multiplies"},
	}
	for _, tt := range tests {
		if !strings.Contains(rootCmd.Long, tt.want) {
			t.Errorf("help for %s does not mention %q", tt.color, tt.want)
		}
	}
}
