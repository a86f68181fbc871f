package types

import (
	"fmt"
	"testing"
)

func TestToSnakeCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"convertToSnakeCase", "convert_to_snake_case"},
		{"HTTPStatusCode", "http_status_code"},
		{"mock.nullChance", "mock_null_chance"},
		{"server.maxCount", "server_max_count"},
		{"__double__underscore__", "double_underscore"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			actual := ToSnakeCase(tc.input)
			if actual != tc.expected {
				t.Errorf("Expected: %s, Got: %s", tc.expected, actual)
			}
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{42, "42"},
		{int64(1234567890), "1234567890"},
		{3.14159265359, "3.14159265359"},
		{2.0, "2"},
		{uint8(255), "255"},
		{"Hello, world!", "Hello, world!"},
		{true, "true"},
		{nil, ""},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("ToString(%v)", test.input), func(t *testing.T) {
			result := ToString(test.input)
			if result != test.expected {
				t.Errorf("Expected %s, but got %s", test.expected, result)
			}
		})
	}
}
