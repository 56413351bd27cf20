// Package portfolio loads the holdings file that drives an analysis run.
//
// The file is a plain text format, one position per line:
//
//	# comment
//	AAPL,30,150.25
//	NVDA,50,40.00
//
// ticker,shares,cost_basis. Shares and cost basis are optional; a bare
// ticker line is a watch-only entry that the engine later rejects with a
// per-ticker skip rather than failing the run.
package portfolio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Position is one line of the holdings file.
type Position struct {
	Ticker    string
	Shares    int64
	CostBasis float64
}

// Load reads and parses the holdings file at path.
func Load(path string) ([]Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio file: %w", err)
	}
	defer f.Close()

	positions, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse portfolio file %s: %w", path, err)
	}
	return positions, nil
}

// Parse reads positions from r. Blank lines and lines starting with #
// are skipped. A malformed line fails the whole parse: a silently
// dropped holding is worse than a loud error at startup.
func Parse(r io.Reader) ([]Position, error) {
	var positions []Position

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pos, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		positions = append(positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return positions, nil
}

func parseLine(line string) (Position, error) {
	parts := strings.Split(line, ",")

	ticker := strings.ToUpper(strings.TrimSpace(parts[0]))
	if ticker == "" {
		return Position{}, fmt.Errorf("empty ticker")
	}

	pos := Position{Ticker: ticker}

	if len(parts) > 1 {
		if s := strings.TrimSpace(parts[1]); s != "" {
			shares, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return Position{}, fmt.Errorf("invalid shares %q: %w", s, err)
			}
			pos.Shares = shares
		}
	}

	if len(parts) > 2 {
		if s := strings.TrimSpace(parts[2]); s != "" {
			cost, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Position{}, fmt.Errorf("invalid cost basis %q: %w", s, err)
			}
			pos.CostBasis = cost
		}
	}

	if len(parts) > 3 {
		return Position{}, fmt.Errorf("too many fields (%d)", len(parts))
	}

	return pos, nil
}
