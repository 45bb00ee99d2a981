package helpers

import (
	"errors"
	"regexp"
	"strings"
)

// GetSplitPart returns the index-th part of target split by separate
func GetSplitPart(target string, separate string, index int) (string, error) {
	parts := strings.Split(target, separate)
	if index < 0 || index >= len(parts) {
		return "", errors.New("index out of range")
	}
	return parts[index], nil
}

var colorNumber = regexp.MustCompile(`^\s*(?:#|No\.?|NO\.?|no\.?)?\s*([A-Za-z]{0,3}-?\d{1,4})\s*[:.\-_)\s]\s*`)

// StripColorNumber removes a leading chart number ("#01 ", "No.12 ", "S-03 ")
// from a color label and returns the number and the remaining name.
func StripColorNumber(label string) (number, name string) {
	label = strings.TrimSpace(label)
	m := colorNumber.FindStringSubmatchIndex(label)
	if m == nil || m[1] >= len(label) {
		return "", label
	}
	return label[m[2]:m[3]], strings.TrimSpace(label[m[1]:])
}

// FirstNonEmpty returns the first argument that is not blank
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
