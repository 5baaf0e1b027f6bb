// Package search is the client-side filter of the payments table.
package search

import (
	"strings"
	"unicode"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

// Snapshots keeps rows whose name, surname, phone or group contains term,
// case-insensitively. Phones are compared with whitespace removed. An empty
// term returns rows untouched.
func Snapshots(rows []models.PaymentSnapshot, term string) []models.PaymentSnapshot {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return rows
	}
	phoneNeedle := stripSpaces(needle)

	out := make([]models.PaymentSnapshot, 0, len(rows))
	for _, r := range rows {
		if matches(needle, phoneNeedle, r) {
			out = append(out, r)
		}
	}
	return out
}

func matches(needle, phoneNeedle string, r models.PaymentSnapshot) bool {
	name := strings.ToLower(r.Name + " " + r.Surname)
	if strings.Contains(name, needle) {
		return true
	}
	if strings.Contains(strings.ToLower(r.GroupName), needle) {
		return true
	}
	return phoneNeedle != "" && strings.Contains(stripSpaces(r.Phone), phoneNeedle)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
