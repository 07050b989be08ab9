package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all character classes", "Abcdef1!", true},
		{"lowercase only", "abcdefgh", false},
		{"uppercase only", "ABCDEFGH", false},
		{"digits only", "12345678", false},
		{"too short", "Abc1!", false},
		{"missing special", "Abcdefg1", false},
		{"missing digit", "Abcdefg!", false},
		{"missing upper", "abcdef1!", false},
		{"missing lower", "ABCDEF1!", false},
		{"empty", "", false},
		{"special outside fixed set", "Abcdefg1~", false},
		{"longer valid password", "Sup3rSecret#Pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrongPassword(tt.password))
		})
	}
}

func TestGenerateToken(t *testing.T) {
	first, err := generateToken()
	assert.NoError(t, err)
	// 32 random bytes, hex-encoded.
	assert.Len(t, first, 64)

	second, err := generateToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
