package ledger

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"expensedash/internal/entity/expense"
	"expensedash/internal/model/customerr"
)

const dateLayout = "2006-01-02"

var header = []string{"Date", "Description", "Category", "Currency", "Amount", "Normalized_Amount"}

type config interface {
	FilePath() string
}

// FileStore is the append-only ledger: a delimited file that is the sole
// durable state of the system. The design targets a single active
// writer; multi-process deployments must serialize appends themselves.
type FileStore struct {
	path string
}

func NewFileStore(cfg config) *FileStore {
	return &FileStore{path: cfg.FilePath()}
}

// Append encodes the header (only when the file is new or empty) and the
// row into one buffer and lands them in a single write followed by a
// sync, so a crash mid-append leaves no partial row visible.
func (s *FileStore) Append(entry expense.Entry) error {
	needHeader, err := s.needHeader()
	if err != nil {
		return &customerr.PersistenceError{Op: "append", Cause: err}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if needHeader {
		if err = w.Write(header); err != nil {
			return &customerr.PersistenceError{Op: "append", Cause: err}
		}
	}
	if err = w.Write(encodeRow(entry)); err != nil {
		return &customerr.PersistenceError{Op: "append", Cause: err}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return &customerr.PersistenceError{Op: "append", Cause: err}
	}

	if err = s.writeDurably(buf.Bytes()); err != nil {
		return &customerr.PersistenceError{Op: "append", Cause: err}
	}
	return nil
}

func (s *FileStore) needHeader() (bool, error) {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "stat ledger file")
	}
	return info.Size() == 0, nil
}

func (s *FileStore) writeDurably(row []byte) (err error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open ledger file")
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "close ledger file")
		}
	}()

	if _, err = f.Write(row); err != nil {
		return errors.Wrap(err, "write ledger row")
	}
	if err = f.Sync(); err != nil {
		return errors.Wrap(err, "sync ledger file")
	}
	return nil
}

// ReadAll returns every entry in insertion order. A missing or empty
// file is an empty ledger, not an error. Any unparseable row fails the
// whole read: a partial ledger would corrupt downstream aggregation.
func (s *FileStore) ReadAll() ([]expense.Entry, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return []expense.Entry{}, nil
	}
	if err != nil {
		return nil, &customerr.PersistenceError{Op: "read", Cause: err}
	}
	defer f.Close()

	r := csv.NewReader(f)

	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []expense.Entry{}, nil
	}
	if err != nil {
		return nil, &customerr.CorruptRecordError{Line: 1, Cause: err}
	}
	if !equalHeader(head) {
		return nil, &customerr.CorruptRecordError{Line: 1, Cause: errors.Errorf("unexpected header %v", head)}
	}

	entries := make([]expense.Entry, 0)
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &customerr.CorruptRecordError{Line: line, Cause: err}
		}
		entry, err := decodeRow(row)
		if err != nil {
			return nil, &customerr.CorruptRecordError{Line: line, Cause: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func encodeRow(entry expense.Entry) []string {
	return []string{
		entry.Date.Format(dateLayout),
		entry.Description,
		entry.Category,
		entry.Currency,
		entry.Amount.String(),
		entry.NormalizedAmount.String(),
	}
}

func decodeRow(row []string) (expense.Entry, error) {
	date, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return expense.Entry{}, errors.Wrap(err, "parsing date")
	}
	amount, err := decimal.NewFromString(row[4])
	if err != nil {
		return expense.Entry{}, errors.Wrap(err, "parsing amount")
	}
	normalized, err := decimal.NewFromString(row[5])
	if err != nil {
		return expense.Entry{}, errors.Wrap(err, "parsing normalized amount")
	}
	return expense.Entry{
		Date:             date,
		Description:      row[1],
		Category:         row[2],
		Currency:         row[3],
		Amount:           amount,
		NormalizedAmount: normalized,
	}, nil
}

func equalHeader(head []string) bool {
	if len(head) != len(header) {
		return false
	}
	for i := range header {
		if head[i] != header[i] {
			return false
		}
	}
	return true
}
