package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantMin string
		wantMax string
	}{
		{"already ordered", "aspirin", "warfarin", "aspirin", "warfarin"},
		{"reversed order", "warfarin", "aspirin", "aspirin", "warfarin"},
		{"mixed case", "Warfarin", "ASPIRIN", "aspirin", "warfarin"},
		{"surrounding whitespace", "  warfarin ", "\taspirin", "aspirin", "warfarin"},
		{"equal names", "aspirin", "aspirin", "aspirin", "aspirin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := PairKey(tt.a, tt.b)
			assert.Equal(t, tt.wantMin, gotMin)
			assert.Equal(t, tt.wantMax, gotMax)
		})
	}
}

func TestPairKey_Symmetric(t *testing.T) {
	minAB, maxAB := PairKey("ibuprofen", "lisinopril")
	minBA, maxBA := PairKey("lisinopril", "ibuprofen")

	assert.Equal(t, minAB, minBA)
	assert.Equal(t, maxAB, maxBA)
}
