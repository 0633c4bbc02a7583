package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID          int
	Policy      string
	Playouts    int
	Goroutines  int
	Temperature float64
}

type PolicyRecord struct {
	BoardSize int
	MeanScore float64
	TrainMetric
}

type GameRecord struct {
	ID    int
	Black int // AgentConfig.ID
	White int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> for the experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) writeCSV(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "policy", "playouts", "goroutines", "temperature"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Policy,
			strconv.Itoa(config.Playouts),
			strconv.Itoa(config.Goroutines),
			formatFloat(config.Temperature),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WritePolicyRecords(records []PolicyRecord) error {
	header := []string{"policy", "board_size", "goroutines", "playouts", "pass_pass", "mercy", "too_long", "mean_length", "mean_score", "duration", "playouts_per_second"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Policy,
			strconv.Itoa(record.BoardSize),
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Playouts),
			strconv.Itoa(record.Statuses[StatusPassPass]),
			strconv.Itoa(record.Statuses[StatusMercy]),
			strconv.Itoa(record.Statuses[StatusTooLong]),
			formatFloat(record.MeanLength()),
			formatFloat(record.MeanScore),
			record.Duration.String(),
			formatFloat(record.PlayoutsPerSecond()),
		})
	}
	return w.writeCSV("policy_records.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "black", "white", "starting_player", "winner", "end_reason", "score", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			record.StartingPlayer,
			record.Winner,
			record.EndReason,
			formatFloat(record.Score),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "vertex", "policy", "duration", "playouts", "pass_pass", "too_long", "mean_length"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Vertex,
			record.Policy,
			record.Duration.String(),
			strconv.Itoa(record.Playouts),
			strconv.Itoa(record.Statuses[StatusPassPass]),
			strconv.Itoa(record.Statuses[StatusTooLong]),
			formatFloat(record.MeanLength()),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
