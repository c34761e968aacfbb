package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type ExactRecord struct {
	Length int
	Count  uint64
}

type NaiveRecord struct {
	Length int
	Trials int
	Ratio  float64
	Count  float64
}

type RosenbluthRecord struct {
	Length       int
	Trials       int
	MeanWeight   float64
	SuccessRatio float64
	Mu           float64
}

type HistogramRecord struct {
	Length      int
	Count       int
	Probability float64
}

type PivotRecord struct {
	Length              int
	Steps               int
	Configurations      int
	AcceptanceRatio     float64
	MeanSquaredDistance float64
}

type Writer struct {
	baseDir string
}

func NewWriter(outputDir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	parent := filepath.Join(outputDir, name)
	err := os.MkdirAll(parent, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Runs started within the same clock tick get a numeric suffix.
	baseDir := filepath.Join(parent, timestamp)
	for i := 1; ; i++ {
		err = os.Mkdir(baseDir, 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		baseDir = filepath.Join(parent, fmt.Sprintf("%s-%d", timestamp, i))
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir is the directory all files are written to.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteExactCounts(records []ExactRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Length),
			strconv.FormatUint(record.Count, 10),
		})
	}
	return w.write("exact_counts.csv", []string{"length", "count"}, rows)
}

func (w *Writer) WriteNaiveRecords(records []NaiveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Length),
			strconv.Itoa(record.Trials),
			formatFloat(record.Ratio),
			formatFloat(record.Count),
		})
	}
	return w.write("naive_records.csv", []string{"length", "trials", "saw_ratio", "estimated_count"}, rows)
}

func (w *Writer) WriteRosenbluthRecords(records []RosenbluthRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Length),
			strconv.Itoa(record.Trials),
			formatFloat(record.MeanWeight),
			formatFloat(record.SuccessRatio),
			formatFloat(record.Mu),
		})
	}
	header := []string{"length", "trials", "mean_weight", "success_ratio", "mu"}
	return w.write("rosenbluth_records.csv", header, rows)
}

// WriteHistogram stores one length distribution under name, e.g. "grand_canonical".
func (w *Writer) WriteHistogram(name string, records []HistogramRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Length),
			strconv.Itoa(record.Count),
			formatFloat(record.Probability),
		})
	}
	return w.write(name+"_histogram.csv", []string{"length", "count", "probability"}, rows)
}

func (w *Writer) WritePivotRecords(records []PivotRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Length),
			strconv.Itoa(record.Steps),
			strconv.Itoa(record.Configurations),
			formatFloat(record.AcceptanceRatio),
			formatFloat(record.MeanSquaredDistance),
		})
	}
	header := []string{"length", "steps", "configurations", "acceptance_ratio", "mean_squared_end_to_end"}
	return w.write("pivot_records.csv", header, rows)
}

func (w *Writer) WriteRunMetrics(records []RunMetric) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Sampler,
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Steps),
			strconv.Itoa(record.Accepted),
			strconv.Itoa(record.Trapped),
		})
	}
	header := []string{"sampler", "start_time", "duration", "steps", "accepted", "trapped"}
	return w.write("run_metrics.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
