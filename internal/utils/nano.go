package utils

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Record ids and photo keys are lowercase alphanumerics so they can be used
// unescaped in admin urls and object keys.
const (
	RecordIDSize = 21
	maxIDLength  = 64
	idAlphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
)

func NanoID() string {
	return NanoIDSize(RecordIDSize)
}

func NanoIDSize(size int) string {
	if size <= 0 {
		size = RecordIDSize
	}

	return gonanoid.MustGenerate(idAlphabet, size)
}

// IsNanoID reports whether s only uses the id alphabet. Route params are
// checked with it before they reach a query.
func IsNanoID(s string) bool {
	if s == "" || len(s) > maxIDLength {
		return false
	}
	return strings.Trim(s, idAlphabet) == ""
}
