package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans HTML in stored content values to prevent XSS when the site
// renders them back out.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
