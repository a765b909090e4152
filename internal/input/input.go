// Package input reads pairwise score files.
//
// Each non-empty line holds "ElementX ElementY score", separated by any run
// of tabs, spaces or '+'. Records enumerate all ordered pairs, self-pairs
// included, in row-major order, so the element count is the square root of
// the record count.
package input

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/TrevorS/clustools"
)

// Scores is the parsed content of a score file.
type Scores struct {
	N   int
	Raw []float64
}

// ReadFile parses the score file at path.
func ReadFile(path string) (*Scores, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening score file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses score records from r. Scores are returned as read; inverting
// similarities is left to clustools.Normalize.
func Read(r io.Reader) (*Scores, error) {
	var raw []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.FieldsFunc(sc.Text(), isSeparator)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 fields, got %d", clustools.ErrMalformedInput, line, len(fields))
		}
		score, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: score %q is not a number", clustools.ErrMalformedInput, line, fields[2])
		}
		raw = append(raw, score)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading scores: %w", err)
	}

	n := int(math.Sqrt(float64(len(raw))))
	for n*n > len(raw) {
		n--
	}
	for (n+1)*(n+1) <= len(raw) {
		n++
	}
	if n*n != len(raw) {
		return nil, fmt.Errorf("%w: %d records is not a perfect square", clustools.ErrMalformedInput, len(raw))
	}
	return &Scores{N: n, Raw: raw}, nil
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '+' || r == '\r'
}
