// Package email holds small helpers for staff email addresses.
package email

import (
	"strings"
	"unicode"
)

// Domain returns the lowercased part after the last '@', or "" when there is none.
func Domain(address string) string {
	at := strings.LastIndexByte(address, '@')
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return strings.ToLower(address[at+1:])
}

// InDomain reports whether address belongs to domain, ignoring case and a
// leading '@' on domain.
func InDomain(address, domain string) bool {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@"))
	return domain != "" && Domain(address) == domain
}

// DisplayName derives a name from the local part, so "ana.gomez@x.co"
// becomes "Ana Gomez". A "+tag" suffix is dropped; '.', '_' and '-'
// separate words.
func DisplayName(address string) string {
	local := address
	if at := strings.IndexByte(address, '@'); at >= 0 {
		local = address[:at]
	}
	if plus := strings.IndexByte(local, '+'); plus >= 0 {
		local = local[:plus]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return ""
	}
	for i, p := range parts {
		runes := []rune(strings.ToLower(p))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
