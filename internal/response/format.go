package response

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format selectors accepted by Format. Anything other than FormatJSON
// renders as markdown.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// CharacterLimit is the maximum length of a formatted response before the
// truncation notice is appended.
const CharacterLimit = 25000

const truncationNotice = "\n\n⚠️ Response truncated at 25000 characters. Use filters or pagination to reduce results."

var titleCaser = cases.Title(language.English)

// Format renders a document as JSON or markdown and enforces the character
// limit. It never fails: failures belong upstream, surfaced as documents
// carrying an "error" key.
func Format(doc *Document, format string) string {
	var result string
	if format == FormatJSON {
		b, _ := json.MarshalIndent(doc, "", "  ")
		result = string(b)
	} else {
		result = formatMarkdown(doc)
	}

	// The budget counts characters, not bytes; the byte check is just a
	// fast path since len(result) >= the rune count.
	if len(result) > CharacterLimit && utf8.RuneCountInString(result) > CharacterLimit {
		runes := []rune(result)
		return string(runes[:CharacterLimit]) + truncationNotice
	}
	return result
}

// formatMarkdown renders a document as indented pseudo-markdown.
func formatMarkdown(doc *Document) string {
	if errVal, ok := doc.Get("error"); ok {
		return fmt.Sprintf("❌ **Error**: %s", formatValue(errVal))
	}

	var lines []string
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		switch v := value.(type) {
		case *Document:
			lines = append(lines, fmt.Sprintf("\n**%s:**", label(key)))
			for _, subKey := range v.Keys() {
				subValue, _ := v.Get(subKey)
				lines = append(lines, fmt.Sprintf("  - %s: %s", subKey, formatValue(subValue)))
			}
		case []any:
			lines = append(lines, fmt.Sprintf("\n**%s:**", label(key)))
			for _, item := range v {
				if sub, ok := item.(*Document); ok {
					lines = append(lines, "\n  ---")
					for _, subKey := range sub.Keys() {
						subValue, _ := sub.Get(subKey)
						lines = append(lines, fmt.Sprintf("  - %s: %s", subKey, formatValue(subValue)))
					}
				} else {
					lines = append(lines, fmt.Sprintf("  - %s", formatValue(item)))
				}
			}
		default:
			lines = append(lines, fmt.Sprintf("**%s:** %s", label(key), formatValue(value)))
		}
	}

	return strings.Join(lines, "\n")
}

// label converts a snake_case key to a display label: underscores become
// spaces and each word is title-cased.
func label(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// formatValue coerces a value to its display string. Absent values render
// as "None", floats use plain decimal notation so large values never render
// in scientific form.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.String()
	case *Document:
		b, _ := json.Marshal(val)
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}
