package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/username/fundify/backend/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // Often used for CSV by older Excel
	"text/plain":               true, // CSVs are often plain text
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": false, // .xlsx explicitly disallow
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	base := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed, exists := AllowedClientContentTypes[base]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for CSV upload", contentType)
	}
	return nil
}

// Signatures of common binary formats users upload by mistake (spreadsheets
// exported as .xlsx, PDFs, zipped archives).
var binaryMagicPrefixes = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},       // zip / xlsx / docx
	{0x25, 0x50, 0x44, 0x46},       // %PDF
	{0x7F, 0x45, 0x4C, 0x46},       // ELF
	{0x4D, 0x5A},                   // MZ (PE executable)
	{0x89, 0x50, 0x4E, 0x47},       // PNG
	{0xFF, 0xD8, 0xFF},             // JPEG
	{0x47, 0x49, 0x46, 0x38},       // GIF8
	{0xD0, 0xCF, 0x11, 0xE0},       // legacy MS Office (xls)
	{0x1F, 0x8B},                   // gzip
}

// isBinaryContent reports whether a buffer looks like a non-text format.
// Unlike a plain null-byte check, UTF-16 files (which interleave null bytes)
// and Latin-1 files (which are invalid UTF-8) must still pass: bank exports
// arrive in all three encodings. Only known binary signatures, or null bytes
// without a UTF-16 byte-order mark, cause rejection.
func isBinaryContent(buf []byte) bool {
	for _, magic := range binaryMagicPrefixes {
		if bytes.HasPrefix(buf, magic) {
			return true
		}
	}
	utf16BOM := bytes.HasPrefix(buf, []byte{0xFF, 0xFE}) || bytes.HasPrefix(buf, []byte{0xFE, 0xFF})
	if !utf16BOM && bytes.IndexByte(buf, 0) != -1 {
		return true
	}
	return false
}

// ValidateFileContent checks the actual file content signature (magic bytes)
// to ensure the upload is text-based before it reaches the parser.
func ValidateFileContent(file io.ReadSeeker) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}

	// Read first 1024 bytes (1KB) for detection
	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// IMPORTANT: Reset the file read pointer to the beginning so the actual parser can read the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n == 0 {
		return fmt.Errorf("file is empty")
	}

	if isBinaryContent(buffer[:n]) {
		logger.L.Warn("File rejected: binary content detected in text upload")
		return fmt.Errorf("file appears to be binary or executable, not text/CSV")
	}

	logger.L.Debug("File content validated as text")
	return nil
}
