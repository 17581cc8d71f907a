package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"Naturaleza", []string{"naturaleza"}},
		{" Azul , ROJO,,azul ", []string{"azul", "rojo"}},
		{",,", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitNames(tt.in))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "cielo nocturno", NormalizeName("  Cielo Nocturno "))
}
