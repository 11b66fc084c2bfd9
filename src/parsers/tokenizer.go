// backend/src/parsers/tokenizer.go
package parsers

import "strings"

const quoteChar = '"'

// DetectDelimiter inspects only the first line of the text: the semicolon
// wins whenever it appears there (o formato mais comum em exportações
// brasileiras), otherwise the comma is used.
func DetectDelimiter(text string) rune {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}
	if strings.ContainsRune(firstLine, ';') {
		return ';'
	}
	return ','
}

// Tokenize splits resolved text into rows of trimmed fields. Line endings are
// normalized first, blank lines are dropped, and the field delimiter is
// inferred from the first line. A double-quote both protects the delimiter
// and escapes itself by doubling. A lone trailing delimiter yields an empty
// trailing field, which downstream column-count checks rely on.
func Tokenize(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	sep := DetectDelimiter(text)

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line, sep))
	}
	return rows
}

func splitLine(line string, sep rune) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == quoteChar:
			if inQuotes && i+1 < len(runes) && runes[i+1] == quoteChar {
				// Aspas duplicadas dentro de campo citado = escape.
				current.WriteRune(quoteChar)
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == sep && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
