// Package inception reads the WebAnno TSV 3 exports of the Inception
// annotation tool and turns them into documents.
package inception

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

const (
	// DefaultLabelColumn is the cell holding the span labels in exports
	// with a single custom span layer.
	DefaultLabelColumn = 4

	textPrefix = "#Text="
)

// Options controls how an export is read.
type Options struct {
	// LabelColumn is the 0-based index of the label cell in token rows.
	LabelColumn int
}

// Row is a token row of the export.
type Row struct {
	// Sentence and Token are the 1-based numbers of the "S-T" cell.
	Sentence int
	Token    int

	Text  string
	Label string
}

// RawSentence is the group of rows following a "#Text=" line.
type RawSentence struct {
	Text string
	Rows []Row
}

// Labels returns the label of every row.
func (s RawSentence) Labels() []string {
	labels := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		labels[i] = r.Label
	}
	return labels
}

type Export struct {
	Sentences []RawSentence

	// Checksum is the hex BLAKE3-256 digest of the export bytes.
	Checksum string

	// Size is the number of bytes read.
	Size int64
}

// Open reads the export at path. Files ending in ".xz" are decompressed.
func Open(path string, opts Options) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		r = xzr
	}

	exp, err := Read(r, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return exp, nil
}

// Read parses an export. Header lines before the first "#Text=" line are
// skipped; a blank line ends a sentence.
func Read(r io.Reader, opts Options) (*Export, error) {
	if opts.LabelColumn <= 0 {
		opts.LabelColumn = DefaultLabelColumn
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	sum := blake3.Sum256(data)
	exp := &Export{
		Checksum: hex.EncodeToString(sum[:]),
		Size:     int64(len(data)),
	}

	var current *RawSentence
	flush := func() {
		if current != nil && len(current.Rows) > 0 {
			exp.Sentences = append(exp.Sentences, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.HasPrefix(line, textPrefix):
			// a sentence text spanning several lines repeats the prefix
			if current != nil && len(current.Rows) == 0 {
				current.Text += "\n" + strings.TrimPrefix(line, textPrefix)
				continue
			}
			flush()
			current = &RawSentence{Text: strings.TrimPrefix(line, textPrefix)}

		case line == "":
			flush()

		case strings.HasPrefix(line, "#"):
			// format and layer headers

		default:
			if current == nil {
				return nil, fmt.Errorf("line %d: token row outside a sentence", lineNum)
			}
			row, err := parseRow(line, opts.LabelColumn)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current.Rows = append(current.Rows, row)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning export: %w", err)
	}

	flush()

	return exp, nil
}

func parseRow(line string, labelColumn int) (Row, error) {
	cells := strings.Split(line, "\t")
	if len(cells) <= labelColumn {
		return Row{}, fmt.Errorf("token row has %d cells, label column is %d", len(cells), labelColumn)
	}

	// "S-T" holds the sentence and token numbers
	sentNum, tokNum, found := strings.Cut(cells[0], "-")
	if !found {
		return Row{}, fmt.Errorf("malformed token position %q", cells[0])
	}

	s, err := strconv.Atoi(sentNum)
	if err != nil {
		return Row{}, fmt.Errorf("malformed sentence number %q: %w", sentNum, err)
	}

	// sub-token positions ("3-4.1") keep their integer part
	tokNum, _, _ = strings.Cut(tokNum, ".")
	t, err := strconv.Atoi(tokNum)
	if err != nil {
		return Row{}, fmt.Errorf("malformed token number %q: %w", tokNum, err)
	}

	return Row{
		Sentence: s,
		Token:    t,
		Text:     cells[2],
		Label:    cells[labelColumn],
	}, nil
}
