package currency

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed currencies.csv
var metaCSV string

const metaColumns = 5

// ErrInvalidMetaCSV is returned when the currency list has the wrong shape.
var ErrInvalidMetaCSV = errors.New("invalid currency csv")

// LoadMetaCSV loads currency metadata from a CSV file or embedded content.
// If path is empty, it uses the embedded CSV content.
func LoadMetaCSV(path string) ([]Meta, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	} else {
		r = strings.NewReader(metaCSV)
	}

	return ParseMetaCSV(r)
}

// ParseMetaCSV reads rows of code,name,symbol,decimals,active with a header.
// Rows with too few columns are skipped.
func ParseMetaCSV(r io.Reader) ([]Meta, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetaCSV, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidMetaCSV)
	}
	if len(records[0]) < metaColumns {
		return nil, fmt.Errorf(
			"%w: expected at least %d columns, got %d",
			ErrInvalidMetaCSV, metaColumns, len(records[0]),
		)
	}

	metas := make([]Meta, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < metaColumns {
			continue
		}
		decimals, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil || decimals < 0 {
			decimals = DefaultDecimals
		}
		metas = append(metas, Meta{
			Code:     strings.TrimSpace(rec[0]),
			Name:     strings.TrimSpace(rec[1]),
			Symbol:   strings.TrimSpace(rec[2]),
			Decimals: decimals,
			Active:   strings.EqualFold(strings.TrimSpace(rec[4]), "true"),
		})
	}
	return metas, nil
}
