package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper tag", "```JSON\n{\"a\":1}\n```\n", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line", "```json{\"a\":1}```", `{"a":1}`},
		{"other tag", "```javascript\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"prose untouched", "Here you go: {\"a\":1}", "Here you go: {\"a\":1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestFindMatchingBrace(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		start int
		want  int
	}{
		{"flat", `{"a":1}`, 0, 6},
		{"nested", `{"a":{"b":{}}} tail`, 0, 13},
		{"brace in string", `{"a":"}{"}`, 0, 9},
		{"escaped quote in string", `{"a":"say \"}\" now"}`, 0, 20},
		{"escaped backslash before quote", `{"a":"c:\\"}`, 0, 11},
		{"truncated", `{"a":{"b":1}`, 0, -1},
		{"not a brace", `x{}`, 0, -1},
		{"out of range", `{}`, 5, -1},
		{"inner object", `{"a":{"b":1}}`, 5, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindMatchingBrace(tt.in, tt.start))
		})
	}
}

func TestEnclosingObjects(t *testing.T) {
	s := `{"type":"object","properties":{"trips":{"type":"array"}}}{"trips":[]}`

	first := 31 // offset of the first "trips"
	open, inString := EnclosingObjects(s, first)
	assert.False(t, inString)
	assert.Equal(t, []int{30, 0}, open)

	second := len(`{"type":"object","properties":{"trips":{"type":"array"}}}{`)
	open, inString = EnclosingObjects(s, second)
	assert.False(t, inString)
	assert.Equal(t, []int{second - 1}, open)
}

func TestEnclosingObjects_IgnoresBracesInStrings(t *testing.T) {
	s := `{"note":"{{{ not real","trips":[]}`
	pos := len(`{"note":"{{{ not real",`)

	open, inString := EnclosingObjects(s, pos)
	assert.False(t, inString)
	assert.Equal(t, []int{0}, open)

	open, inString = EnclosingObjects(s, 10)
	assert.True(t, inString)
	assert.Equal(t, []int{0}, open)
}

func TestBalancedObject(t *testing.T) {
	assert.Equal(t, `{"x":{"y":2}}`, BalancedObject(`junk {"x":{"y":2}} more`, 5))
	assert.Equal(t, "", BalancedObject(`{"x":`, 0))
}
