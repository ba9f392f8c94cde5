package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MatchRecord struct {
	ID      int
	Agent1  int // AgentConfig.ID
	Agent2  int // AgentConfig.ID
	Timeout time.Duration
	GameMetric
}

type MoveRecord struct {
	Match int // MatchRecord.ID
	MoveMetric
}

// ThroughputRecord sums the searches of one goroutine setting.
type ThroughputRecord struct {
	Goroutines int
	Depth      int
	Positions  int
	Nodes      int64
	Duration   time.Duration
}

func (r ThroughputRecord) NodesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Duration.Seconds()
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes every file there.
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

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "kind", "depth", "heuristic", "weight", "goroutines"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Kind,
			strconv.Itoa(config.Depth),
			config.Heuristic,
			strconv.FormatFloat(config.Weight, 'g', -1, 64),
			strconv.Itoa(config.Goroutines),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	header := []string{"id", "agent1", "agent2", "player1", "player2", "timeout", "status1", "status2", "winner", "game_time", "actions", "start_time", "end_time"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			string(record.Players[0]),
			string(record.Players[1]),
			formatSeconds(record.Timeout),
			strconv.Itoa(int(record.Statuses[0])),
			strconv.Itoa(int(record.Statuses[1])),
			string(record.Winner),
			record.GameTime(),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
		})
	}
	return w.write("match_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"match", "step", "player", "move", "elapsed", "nodes", "leaves", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Match),
			strconv.Itoa(record.Step),
			string(record.Player),
			strconv.Itoa(record.Move),
			formatSeconds(record.Elapsed),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Leaves, 10),
			strconv.FormatInt(record.Cutoffs, 10),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteThroughputRecords(records []ThroughputRecord) error {
	header := []string{"goroutines", "depth", "positions", "nodes", "duration", "nodes_per_second"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Positions),
			strconv.FormatInt(record.Nodes, 10),
			formatSeconds(record.Duration),
			strconv.FormatFloat(record.NodesPerSecond(), 'f', 1, 64),
		})
	}
	return w.write("throughput_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
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
	err = writer.WriteAll(rows) // Flushes
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
