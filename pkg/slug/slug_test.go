package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Hello,   World!  ", "hello-world"},
		{"Go 1.22 Release Notes", "go-1-22-release-notes"},
		{"Çalışma Ölçüsü ve Ağaç", "calisma-olcusu-ve-agac"},
		{"İstanbul'da Şubat", "istanbul-da-subat"},
		{"Crème brûlée à la carte", "creme-brulee-a-la-carte"},
		{"Straße", "strasse"},
		{"---already-a-slug---", "already-a-slug"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMake_ResultIsValid(t *testing.T) {
	inputs := []string{"Hello World", "Ağaç / Tree", "a__b__c", "ÜBER-schnell 2024"}
	for _, in := range inputs {
		got := Make(in)
		assert.True(t, Valid(got), "Make(%q) = %q is not a valid slug", in, got)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("hello-world"))
	assert.True(t, Valid("post-42"))
	assert.False(t, Valid("Hello-World"))
	assert.False(t, Valid("hello--world"))
	assert.False(t, Valid("-hello"))
	assert.False(t, Valid(""))
}
