package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/beelight/beelight/pkg/model"
)

// csvHeader is the record-log column layout. Booleans are serialized as 1/0.
var csvHeader = []string{"timestamp", "ambient_light", "screen_brightness", "is_manual_adjustment"}

// CSVProvider reads and appends observations in the brightness_data.csv
// record-log format. Malformed rows are skipped with a warning rather than
// failing the whole read.
type CSVProvider struct {
	path string
}

// NewCSVProvider creates a provider for the given record-log path.
func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{path: path}
}

// FetchObservations reads the whole record log, sorted by timestamp.
func (p *CSVProvider) FetchObservations(ctx context.Context) ([]model.Observation, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record log header: %w", err)
	}
	if !headerMatches(header) {
		log.Printf("Warning: unexpected record log header %v in %s", header, p.path)
	}

	var observations []model.Observation
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record log row: %w", err)
		}

		obs, ok := parseRow(row)
		if !ok {
			log.Printf("Warning: skipping malformed row %v", row)
			continue
		}
		observations = append(observations, obs)
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Timestamp < observations[j].Timestamp
	})
	return observations, nil
}

// AppendObservation appends a single record, creating the file with a header
// when it does not exist yet.
func (p *CSVProvider) AppendObservation(ctx context.Context, obs model.Observation) error {
	if err := p.ensureHeader(); err != nil {
		return err
	}

	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open record log for append: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(formatRow(obs)); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush record log: %w", err)
	}
	return f.Sync()
}

func (p *CSVProvider) ensureHeader() error {
	info, err := os.Stat(p.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat record log: %w", err)
	}

	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create record log: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write record log header: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return false
		}
	}
	return true
}

func parseRow(row []string) (model.Observation, bool) {
	if len(row) != len(csvHeader) {
		return model.Observation{}, false
	}

	timestamp, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return model.Observation{}, false
	}
	ambient, err := strconv.Atoi(row[1])
	if err != nil {
		return model.Observation{}, false
	}
	brightness, err := strconv.Atoi(row[2])
	if err != nil {
		return model.Observation{}, false
	}
	manual, err := strconv.Atoi(row[3])
	if err != nil {
		return model.Observation{}, false
	}

	return model.Observation{
		Timestamp:          timestamp,
		AmbientLight:       ambient,
		ScreenBrightness:   brightness,
		IsManualAdjustment: manual != 0,
	}, true
}

func formatRow(obs model.Observation) []string {
	manual := "0"
	if obs.IsManualAdjustment {
		manual = "1"
	}
	return []string{
		strconv.FormatInt(obs.Timestamp, 10),
		strconv.Itoa(obs.AmbientLight),
		strconv.Itoa(obs.ScreenBrightness),
		manual,
	}
}
