package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Foo@Example.com", "foo@example.com"},
		{"  warung@umkm.id  ", "warung@umkm.id"},
		{"ALL.CAPS@MAIL.COM", "all.caps@mail.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.input))
	}
}

func TestNormalizePhoneDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0812-345-678", "0812345678"},
		{"0812 345 678", "0812345678"},
		{"+62 812-3456-7890", "6281234567890"},
		{"(021) 555-0101", "0215550101"},
		{"no digits here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhoneDigits(tt.input))
	}
}
