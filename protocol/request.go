package protocol

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteRequest serializes the whole request to w. Coordinates are written in fixed notation with as many
// digits as needed to round trip.
func WriteRequest(w io.Writer, req Request) error {
	bw := bufio.NewWriter(w)
	for _, b := range req.Beams {
		header := []string{BeamKeyword, strconv.Itoa(b.ID)}
		if label := strings.Join(strings.Fields(b.Label), "_"); label != "" {
			header = append(header, label)
		}
		if _, err := bw.WriteString(strings.Join(header, " ") + "\n"); err != nil {
			return err
		}
		for _, p := range b.Points {
			if _, err := bw.WriteString(formatFloat(p.X) + " " + formatFloat(p.Y) + " " + formatFloat(p.Z) + "\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(EndBeamKeyword + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadRequest parses a request. Beams without points and beams left open at the end of input are dropped,
// as are point lines outside a beam record.
func ReadRequest(r io.Reader) (Request, error) {
	var req Request
	var cur *BeamRecord

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
		case BeamKeyword:
			if len(tokens) < 2 {
				return Request{}, &ParseError{Line: lineNum, Text: line, Err: errors.New("beam header is missing an id")}
			}
			id, err := strconv.Atoi(tokens[1])
			if err != nil {
				return Request{}, &ParseError{Line: lineNum, Text: line, Err: errors.Wrap(err, "invalid beam id")}
			}
			cur = &BeamRecord{ID: id, Label: strings.Join(tokens[2:], " ")}
		case EndBeamKeyword:
			if cur != nil && len(cur.Points) > 0 {
				req.Beams = append(req.Beams, *cur)
			}
			cur = nil
		default:
			p, err := spatialmath.ParseVector(tokens)
			if err != nil {
				return Request{}, &ParseError{Line: lineNum, Text: line, Err: errors.Wrap(err, "bad point line")}
			}
			if cur != nil {
				cur.Points = append(cur.Points, p)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// NewBeamRecord copies pts into a record.
func NewBeamRecord(id int, label string, pts []r3.Vector) BeamRecord {
	return BeamRecord{ID: id, Label: label, Points: append([]r3.Vector(nil), pts...)}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return scanner
}
