// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock recovers a JSON payload from an LLM response. It strips
// markdown code fences and conversational preamble/trailing text, returning
// the first balanced JSON object or array found. If no JSON value can be
// located the (trimmed) input is returned unchanged.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Locate the first JSON value, skipping any conversational preamble.
	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	switch {
	case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
		if extracted := extractJSONObject(text[objIdx:]); extracted != "" {
			return extracted
		}
	case arrIdx >= 0:
		if extracted := extractJSONArray(text[arrIdx:]); extracted != "" {
			return extracted
		}
	}

	return text
}

// extractJSONObject returns the first balanced JSON object at the start of
// text, or "" if text does not begin with one.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the first balanced JSON array at the start of
// text, or "" if text does not begin with one.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

// extractBalanced scans for a balanced open..close span, ignoring delimiters
// inside JSON string literals.
func extractBalanced(text string, open, closing byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// delimiters inside strings are literal
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}

// SchemaInstruction renders the output-shape contract appended to a request's
// user message when a response JSON schema is supplied.
func SchemaInstruction(schemaDoc string) string {
	var sb strings.Builder
	sb.WriteString("Return ONLY valid JSON conforming to this JSON Schema:\n")
	sb.WriteString(schemaDoc)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON value, no markdown, no explanation, no code blocks.\n")
	sb.WriteString("- Every required field must be present.\n")
	return sb.String()
}
