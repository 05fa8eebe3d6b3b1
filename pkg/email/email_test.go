package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInDomain(t *testing.T) {
	tests := []struct {
		address, domain string
		want            bool
	}{
		{"ana@kivu.com.co", "kivu.com.co", true},
		{"ana@KIVU.com.co", "@kivu.com.co", true},
		{"ana@evilkivu.com.co", "kivu.com.co", false},
		{"ana@kivu.com.co.evil.io", "kivu.com.co", false},
		{"ana", "kivu.com.co", false},
		{"ana@kivu.com.co", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.address+"/"+tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.want, InDomain(tt.address, tt.domain))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Gomez", DisplayName("ana.gomez@kivu.com.co"))
	assert.Equal(t, "Ops", DisplayName("OPS@kivu.com.co"))
	assert.Equal(t, "Maria Jose Ruiz", DisplayName("maria_jose-ruiz+bo@x.co"))
	assert.Equal(t, "", DisplayName("@x.co"))
}
