package models

import (
	"math"
	"strings"
)

// FormatDiseaseName turns a classifier label into display text:
// underscores become spaces, the first letter of every word is
// upper-cased and a lower-case letter directly followed by an upper-case
// one is split by a space ("Tomato_Early_blight" -> "Tomato Early Blight").
// Only ASCII letters are affected.
func FormatDiseaseName(name string) string {
	b := []byte(strings.ReplaceAll(name, "_", " "))

	prevWord := false
	for i, ch := range b {
		word := isWordByte(ch)
		if word && !prevWord && isLower(ch) {
			b[i] = ch - ('a' - 'A')
		}
		prevWord = word
	}

	var out strings.Builder
	out.Grow(len(b) + 4)
	for i := 0; i < len(b); i++ {
		if i+1 < len(b) && isLower(b[i]) && isUpper(b[i+1]) {
			out.WriteByte(b[i])
			out.WriteByte(' ')
			out.WriteByte(b[i+1])
			i++
			continue
		}
		out.WriteByte(b[i])
	}
	return out.String()
}

// ConfidencePercent rounds a [0,1] confidence to a whole percent, halves
// rounding up.
func ConfidencePercent(confidence float64) int {
	return int(math.Floor(confidence*100 + 0.5))
}

func (r DiagnosisResult) DisplayName() string {
	return FormatDiseaseName(r.Disease)
}

func (r DiagnosisResult) ConfidencePercent() int {
	return ConfidencePercent(r.Confidence)
}

func isWordByte(ch byte) bool {
	return isLower(ch) || isUpper(ch) || ch >= '0' && ch <= '9' || ch == '_'
}

func isLower(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }
