package utils

import "strings"

// StripCodeFences removes a leading ```json (or bare ```) marker and a
// trailing ``` marker from model output.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && isFenceTag(s[:nl]) {
			s = s[nl+1:]
		} else if isFenceTag(s) {
			s = ""
		} else {
			for _, tag := range []string{"json", "JSON", "Json"} {
				if strings.HasPrefix(s, tag) {
					s = s[len(tag):]
					break
				}
			}
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isFenceTag reports whether s looks like a fence language tag ("json", "")
// rather than payload.
func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	return !strings.ContainsAny(s, "{}[]\" \t")
}

// FindMatchingBrace returns the offset of the '}' closing the object opened at
// start, or -1 when s[start] is not '{' or the object never closes. Braces
// inside string literals are ignored.
func FindMatchingBrace(s string, start int) int {
	if start < 0 || start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// EnclosingObjects scans s up to pos and returns the offsets of the '{'
// characters still open at pos, innermost first. inString reports whether pos
// itself falls inside a string literal.
func EnclosingObjects(s string, pos int) (open []int, inString bool) {
	if pos > len(s) {
		pos = len(s)
	}

	var stack []int
	escaped := false

	for i := 0; i < pos; i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			stack = append(stack, i)
		case '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	open = make([]int, len(stack))
	for i := range stack {
		open[i] = stack[len(stack)-1-i]
	}
	return open, inString
}

// BalancedObject returns the object literal starting at start, or "" when it
// is unbalanced.
func BalancedObject(s string, start int) string {
	end := FindMatchingBrace(s, start)
	if end < 0 {
		return ""
	}
	return s[start : end+1]
}
