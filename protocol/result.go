package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// WriteResult serializes every prediction of res to w with six decimals. Each record carries a reserved
// "t 0 0" line that readers ignore.
func WriteResult(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	for _, p := range res.Predictions() {
		c, v := p.Center, p.Direction
		if _, err := fmt.Fprintf(bw, "%s %d\n%s %.6f %.6f %.6f\n%s %.6f %.6f %.6f\n%s %.6f %.6f\n%s\n",
			ResultKeyword, p.ID,
			CenterKeyword, c.X, c.Y, c.Z,
			DirectionKeyword, v.X, v.Y, v.Z,
			ReservedKeyword, 0., 0.,
			EndResultKeyword,
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadResult parses a response. A record only yields a prediction when it carries both a center and a
// direction; a record interrupted by another result header is discarded. A malformed header or coordinate
// aborts parsing with a *ParseError.
func ReadResult(r io.Reader) (*Result, error) {
	res := NewResult()

	var cur *Prediction
	var hasCenter, hasDirection bool

	scanner := newScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		switch tokens[0] {
		case ResultKeyword:
			if len(tokens) < 2 {
				return nil, &ParseError{Line: lineNum, Text: line, Err: errors.New("result header is missing an id")}
			}
			id, err := strconv.Atoi(tokens[1])
			if err != nil {
				return nil, &ParseError{Line: lineNum, Text: line, Err: errors.Wrap(err, "invalid result id")}
			}
			cur = &Prediction{ID: id}
			hasCenter, hasDirection = false, false
		case EndResultKeyword:
			if cur != nil && hasCenter && hasDirection {
				res.Put(*cur)
			}
			cur = nil
		case CenterKeyword, DirectionKeyword:
			if cur == nil {
				continue
			}
			v, err := spatialmath.ParseVector(tokens[1:])
			if err != nil {
				return nil, &ParseError{Line: lineNum, Text: line, Err: err}
			}
			if tokens[0] == CenterKeyword {
				cur.Center = v
				hasCenter = true
			} else {
				cur.Direction = v
				hasDirection = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
