package tabular

import (
	"encoding/csv"
	"io"

	"github.com/turtacn/ScaffoldSieve/internal/domain/candidate"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Write emits the table as UTF-8 delimited text: the header, then every
// record's original values in column order.
func Write(w io.Writer, t *candidate.Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(t.Header().Columns()); err != nil {
		return errors.Wrap(err, errors.ErrCodeTableWriteFailed, "failed to write header")
	}
	for _, r := range t.Records() {
		if err := cw.Write(r.Values); err != nil {
			return errors.Wrap(err, errors.ErrCodeTableWriteFailed, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeTableWriteFailed, "failed to flush output")
	}
	return nil
}

//Personal.AI order the ending
