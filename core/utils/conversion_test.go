package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"Empty", "", []string{}},
		{"Semicolons", "eu-fr-paris;eu-fr-north", []string{"eu-fr-paris", "eu-fr-north"}},
		{"Commas and spaces", " prd , uat ;dev ", []string{"prd", "uat", "dev"}},
		{"Repeats and blanks", "a;;a; ;b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 21, ToInt(" 21 "))
	assert.Equal(t, 0, ToInt("abc"))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("yes"))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(""))
}
