// Package tabular reads and writes delimited candidate tables from local
// files, standard streams and object storage.
package tabular

import (
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Supported input encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// SupportedEncodings lists the canonical encoding names.
func SupportedEncodings() []string {
	return []string{EncodingUTF8, EncodingLatin1, EncodingWindows1252}
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, errors.New(errors.ErrCodeTableEncoding, "unsupported text encoding").WithDetail("encoding=" + name)
}

// ValidateEncoding reports whether name is a supported encoding.
func ValidateEncoding(name string) error {
	_, err := lookupEncoding(name)
	return err
}

// decode wraps r so that it yields UTF-8.  A UTF-8 byte order mark is
// dropped.
func decode(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// DelimiterFor picks the field delimiter.  A configured value wins; "\t" and
// "tab" both mean tab.  Otherwise .tsv and .tab locations use tab and
// everything else uses a comma.
func DelimiterFor(location, configured string) (rune, error) {
	switch configured {
	case "":
	case "\\t", "\t", "tab":
		return '\t', nil
	default:
		r := []rune(configured)
		if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
			return 0, errors.NewValidationError("delimiter", "must be a single character other than quote or newline")
		}
		return r[0], nil
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".tsv", ".tab":
		return '\t', nil
	}
	return ',', nil
}

//Personal.AI order the ending
