package mockstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/zero-touch-cx/server/internal/cx/flows"
)

// LoadBillingCSV replaces the store's billing data with rows from a CSV file
// of the form: customer_id,date,amount,description. A header row is skipped
// when the amount column does not parse.
func (s *Store) LoadBillingCSV(path string) error {
	rows, err := readCSV(path, 4)
	if err != nil {
		return err
	}
	billing := map[string][]flows.BillingEntry{}
	for i, row := range rows {
		amount, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			if i == 0 {
				continue
			}
			return fmt.Errorf("row %d: bad amount %q: %w", i+1, row[2], err)
		}
		date, err := time.Parse("2006-01-02", row[1])
		if err != nil {
			return fmt.Errorf("row %d: bad date %q: %w", i+1, row[1], err)
		}
		billing[row[0]] = append(billing[row[0]], flows.BillingEntry{
			CustomerID:  row[0],
			Date:        date,
			Amount:      amount,
			Description: row[3],
		})
	}
	s.billing = billing
	return nil
}

// LoadWireEventsCSV replaces the store's wire data with rows from a CSV file
// of the form: customer_id,report_id,status,occurred_at.
func (s *Store) LoadWireEventsCSV(path string) error {
	rows, err := readCSV(path, 4)
	if err != nil {
		return err
	}
	wires := map[string][]flows.WireEvent{}
	for i, row := range rows {
		at, err := time.Parse("2006-01-02", row[3])
		if err != nil {
			if i == 0 {
				continue
			}
			return fmt.Errorf("row %d: bad date %q: %w", i+1, row[3], err)
		}
		wires[row[0]] = append(wires[row[0]], flows.WireEvent{
			CustomerID: row[0],
			ReportID:   row[1],
			Status:     row[2],
			OccurredAt: at,
		})
	}
	s.wires = wires
	return nil
}

func readCSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
