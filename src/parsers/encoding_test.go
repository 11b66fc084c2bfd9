package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/charmap"
)

func encodeLatin1(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return out
}

func TestResolveEncodingUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Data;Valor\n")...)
	text, name := ResolveEncoding(data)
	assert.Equal(t, "utf-8", name)
	assert.Equal(t, "Data;Valor\n", text)
}

func TestResolveEncodingUTF16LE(t *testing.T) {
	// "Olá" em UTF-16 little-endian com BOM.
	data := []byte{0xFF, 0xFE, 'O', 0x00, 'l', 0x00, 0xE1, 0x00}
	text, name := ResolveEncoding(data)
	assert.Equal(t, "utf-16le", name)
	assert.Equal(t, "Olá", text)
}

func TestResolveEncodingUTF16BE(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0x00, 'O', 0x00, 'l', 0x00, 0xE1}
	text, name := ResolveEncoding(data)
	assert.Equal(t, "utf-16be", name)
	assert.Equal(t, "Olá", text)
}

func TestResolveEncodingPlainUTF8(t *testing.T) {
	text, name := ResolveEncoding([]byte("Salário;5000"))
	assert.Equal(t, "utf-8", name)
	assert.Equal(t, "Salário;5000", text)
}

func TestResolveEncodingLatin1Accents(t *testing.T) {
	// Texto acentuado em Latin-1 não é UTF-8 válido; o decode Latin-1
	// com acentos e zero marcadores deve vencer.
	data := encodeLatin1(t, "Alimentação;Cartão de Crédito")
	text, name := ResolveEncoding(data)
	assert.NotEqual(t, "utf-8", name)
	assert.Equal(t, "Alimentação;Cartão de Crédito", text)
}

func TestResolveEncodingNeverFails(t *testing.T) {
	// Bytes arbitrários sempre produzem algum texto.
	text, name := ResolveEncoding([]byte{0x80, 0x81, 0xFE, 0xFF, 0x00})
	assert.NotEmpty(t, name)
	_ = text
}

func TestResolveEncodingEmptyBuffer(t *testing.T) {
	text, name := ResolveEncoding(nil)
	assert.Equal(t, "", text)
	assert.Equal(t, "utf-8", name)
}
