// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRe.MatchString(cleaned)
}
