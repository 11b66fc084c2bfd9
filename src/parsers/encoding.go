// backend/src/parsers/encoding.go
package parsers

import (
	"bytes"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Candidate 8-bit encodings, tried in order. UTF-8 first (the working
// default), then the single-byte encodings common in Brazilian exports.
// Ties on score favor the earlier entry.
var candidateEncodings = []struct {
	Name    string
	Charmap *charmap.Charmap // nil means UTF-8
}{
	{"utf-8", nil},
	{"windows-1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
	{"iso-8859-15", charmap.ISO8859_15},
}

const replacementChar = "�"

// Acentos comuns em português; a presença de um deles num decode sem
// caracteres de substituição identifica o encoding correto.
const portugueseAccents = "áàâãéêíóôõúçÁÀÂÃÉÊÍÓÔÕÚÇ"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ResolveEncoding converts a raw upload buffer into text, detecting the
// best-fit encoding from a fixed candidate list. It returns the decoded text
// and the name of the encoding that was selected.
//
// A UTF-16 byte-order mark short-circuits everything: the 16-bit code units
// are widened directly. Otherwise every candidate decodes the buffer and the
// one producing the fewest replacement markers wins; a decode with zero
// markers that also contains a Portuguese accented letter is taken
// immediately. The function never fails: when nothing decodes cleanly the
// least-bad candidate (or lenient UTF-8) is returned.
func ResolveEncoding(data []byte) (string, string) {
	if bytes.HasPrefix(data, bomUTF16LE) {
		return decodeUTF16(data[2:], false), "utf-16le"
	}
	if bytes.HasPrefix(data, bomUTF16BE) {
		return decodeUTF16(data[2:], true), "utf-16be"
	}
	data = bytes.TrimPrefix(data, bomUTF8)

	bestText := ""
	bestName := ""
	bestScore := -1
	for _, cand := range candidateEncodings {
		text, err := decodeWith(cand.Charmap, data)
		if err != nil {
			continue
		}
		score := strings.Count(text, replacementChar)
		if score == 0 && strings.ContainsAny(text, portugueseAccents) {
			return text, cand.Name
		}
		if bestScore < 0 || score < bestScore {
			bestScore = score
			bestText = text
			bestName = cand.Name
		}
	}
	if bestScore < 0 {
		// Every candidate failed outright; decode as UTF-8 with
		// replacement of invalid sequences.
		return strings.ToValidUTF8(string(data), replacementChar), "utf-8"
	}
	return bestText, bestName
}

func decodeWith(cm *charmap.Charmap, data []byte) (string, error) {
	if cm == nil {
		return strings.ToValidUTF8(string(data), replacementChar), nil
	}
	out, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeUTF16 widens 16-bit code units into text. A dangling trailing byte is
// dropped.
func decodeUTF16(data []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}
	return string(utf16.Decode(units))
}
