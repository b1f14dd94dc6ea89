// Package envfile reads the optional .env file merged into the environment
// of launched products.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// ParseFile reads path into a key-value map. An absent file is not an
// error; it yields an empty map.
func ParseFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.EnvfileOpenFailedFmt, path, err)
	}
	return Parse(string(data))
}

// Parse reads .env content into a key-value map.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	if content == "" {
		return env, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}

	return env, nil
}

// parseLine parses a single .env line and returns key/value when present.
// Blank lines and comments yield ok=false without error.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	if strings.HasPrefix(trimmed, "export ") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	value := strings.TrimSpace(trimmed[idx+1:])
	if strings.HasPrefix(value, `"`) {
		parsed, err := parseDoubleQuotedValue(value)
		if err != nil {
			return "", "", false, err
		}
		value = parsed
	} else if strings.HasPrefix(value, `'`) {
		parsed, err := parseSingleQuotedValue(value)
		if err != nil {
			return "", "", false, err
		}
		value = parsed
	}
	return key, value, true, nil
}

// parseDoubleQuotedValue parses a double-quoted value and validates
// trailing content.
func parseDoubleQuotedValue(value string) (string, error) {
	closing := findClosingDoubleQuote(value)
	if closing < 0 {
		return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
	}
	if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
		return "", err
	}
	return unescapeDoubleQuotedValue(value[1:closing]), nil
}

// parseSingleQuotedValue parses a single-quoted value and validates
// trailing content.
func parseSingleQuotedValue(value string) (string, error) {
	if len(value) < 2 {
		return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
	}
	closingOffset := strings.IndexByte(value[1:], '\'')
	if closingOffset < 0 {
		return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
	}
	closing := 1 + closingOffset
	if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
		return "", err
	}
	return value[1:closing], nil
}

// findClosingDoubleQuote returns the index of the first unescaped closing
// quote in value, which is expected to start with a double quote.
func findClosingDoubleQuote(value string) int {
	escaped := false
	for i := 1; i < len(value); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch value[i] {
		case '\\':
			escaped = true
		case '"':
			return i
		}
	}
	return -1
}

// validateQuotedValueSuffix allows only whitespace and an optional comment
// after a quoted value.
func validateQuotedValueSuffix(suffix string) error {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	return fmt.Errorf(messages.EnvfileInvalidQuotedSuffix)
}

func unescapeDoubleQuotedValue(value string) string {
	var b strings.Builder
	escaped := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		if escaped {
			switch c {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(c)
			}
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		b.WriteByte(c)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
