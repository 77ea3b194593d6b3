package parsing

import (
	"regexp"
	"strings"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)

// Sanitize repairs the JSON defects models commonly emit: trailing commas
// before closing brackets, and Python-style literals (None/True/False)
// leaking into what should be JSON output.
func Sanitize(jsonText string) string {
	jsonText = trailingCommaRe.ReplaceAllString(jsonText, "$1")
	return rewriteBareLiterals(jsonText)
}

// literalRewrites maps scripting-language literals to their JSON equivalents.
var literalRewrites = map[string]string{
	"None":  "null",
	"True":  "true",
	"False": "false",
}

// rewriteBareLiterals replaces None/True/False tokens appearing as bare
// values. The scan is string-aware so occurrences inside quoted values
// (e.g. a business named "None of the Above") are left untouched.
func rewriteBareLiterals(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	inString := false
	escaped := false

	for i := 0; i < len(text); {
		ch := text[i]

		if inString {
			out.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			i++
			continue
		}

		if ch == '"' {
			inString = true
			out.WriteByte(ch)
			i++
			continue
		}

		if isTokenStart(ch) && (i == 0 || !isTokenChar(text[i-1])) {
			end := i
			for end < len(text) && isTokenChar(text[end]) {
				end++
			}
			token := text[i:end]
			if replacement, ok := literalRewrites[token]; ok {
				out.WriteString(replacement)
			} else {
				out.WriteString(token)
			}
			i = end
			continue
		}

		out.WriteByte(ch)
		i++
	}

	return out.String()
}

func isTokenStart(ch byte) bool {
	return ch == 'N' || ch == 'T' || ch == 'F'
}

func isTokenChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}
