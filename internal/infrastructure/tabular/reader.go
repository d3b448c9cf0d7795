package tabular

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/ScaffoldSieve/internal/domain/candidate"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// ReadOptions controls how a table is parsed.
type ReadOptions struct {
	Delimiter    rune
	Encoding     string
	SMILESColumn string
}

// Read parses a delimited table with a header row.  Header names are
// trimmed and NFC-normalised; cell values are kept verbatim.  A header with
// no data rows yields an empty table.
func Read(r io.Reader, opts ReadOptions) (*candidate.Table, error) {
	src, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(src)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeTableMalformed, "input has no header row")
	}
	if err != nil {
		return nil, wrapReadError(err)
	}
	for i, h := range header {
		header[i] = norm.NFC.String(strings.TrimSpace(h))
	}

	table, err := candidate.NewTable(header, opts.SMILESColumn)
	if err != nil {
		return nil, err
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}
		if len(header) > 1 && isBlank(row) {
			continue
		}
		if _, err := table.Append(row); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, errors.Wrap(err, errors.CodeUnknown, "malformed row").WithDetail(fmt.Sprintf("line=%d", line))
		}
	}
	return table, nil
}

// isBlank reports a row consisting of a single empty field, which
// encoding/csv only produces for whitespace-only lines.
func isBlank(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}

func wrapReadError(err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.Wrap(err, errors.ErrCodeTableMalformed, "cannot parse delimited input").
			WithDetail(fmt.Sprintf("line=%d column=%d", pe.Line, pe.Column))
	}
	if errors.GetCode(err) != errors.CodeUnknown {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeTableMalformed, "cannot read input")
}

//Personal.AI order the ending
