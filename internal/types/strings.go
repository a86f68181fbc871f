package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
	nonAlphaNum   = regexp.MustCompile(`[^a-z0-9]+`)
)

// ToSnakeCase converts a string to snake_case.
// Any run of non-alphanumeric characters, dots included, becomes a single underscore.
func ToSnakeCase(input string) string {
	snake := matchFirstCap.ReplaceAllString(input, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	snake = strings.ToLower(snake)
	snake = nonAlphaNum.ReplaceAllString(snake, "_")
	return strings.Trim(snake, "_")
}

// ToString formats scalar values the way they appear as JSON object keys.
func ToString(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
