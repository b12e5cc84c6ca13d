package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyLatePenalty(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		penalty float64
		want    float64
	}{
		{"default ten percent", 80, 10, 72},
		{"no penalty configured", 95, 0, 95},
		{"half off", 50, 50, 25},
		{"full penalty floors at zero", 60, 100, 0},
		{"penalty above hundred clamps", 60, 150, 0},
		{"zero score stays zero", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ApplyLatePenalty(tt.score, tt.penalty), 0.01)
		})
	}
}
