package modelfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed wraps any error encountered while tokenizing the model file
// (missing header field, bad number, truncated SV line). It is distinct
// from the svm package's domain-level validation errors.
type ErrMalformed struct {
	Line   int
	Reason string
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("modelfile: line %d: %s", e.Line, e.Reason)
}

// Parse reads a libSVM svm-train text model from r.
func Parse(r io.Reader) (*ParsedModel, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	m := &ParsedModel{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "SV" {
			break
		}

		fields := strings.Fields(line)
		key := fields[0]
		rest := fields[1:]

		var err error
		switch key {
		case "svm_type":
			m.SVMType = requireOne(rest)
		case "kernel_type":
			m.KernelType = requireOne(rest)
		case "gamma":
			m.Gamma, err = parseFloat(rest)
		case "coef0":
			m.Coef0, err = parseFloat(rest)
		case "degree":
			var d float64
			d, err = parseFloat(rest)
			m.Degree = int(d)
		case "nr_class":
			var n float64
			n, err = parseFloat(rest)
			m.NrClass = int(n)
		case "total_sv":
			var n float64
			n, err = parseFloat(rest)
			m.TotalSV = int(n)
		case "label":
			m.Label, err = parseInts(rest)
		case "nr_sv":
			m.NrSV, err = parseInts(rest)
		case "rho":
			m.Rho, err = parseFloats(rest)
		case "probA":
			m.ProbA, err = parseFloats(rest)
		case "probB":
			m.ProbB, err = parseFloats(rest)
		default:
			// Unknown header keys (libSVM occasionally adds vendor
			// extensions) are ignored rather than rejected here; the svm
			// package validates everything it actually needs.
		}
		if err != nil {
			return nil, &ErrMalformed{Line: lineNo, Reason: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ErrMalformed{Line: lineNo, Reason: err.Error()}
	}

	numCoefs := m.NrClass - 1
	if numCoefs < 0 {
		numCoefs = 0
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < numCoefs {
			return nil, &ErrMalformed{Line: lineNo, Reason: "SV line shorter than nr_class-1 coefficients"}
		}

		sv := SupportVector{
			Coefficients: make([]float64, numCoefs),
		}
		for i := 0; i < numCoefs; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, &ErrMalformed{Line: lineNo, Reason: "bad coefficient: " + err.Error()}
			}
			sv.Coefficients[i] = v
		}

		for _, tok := range fields[numCoefs:] {
			idx, val, err := parseAttribute(tok)
			if err != nil {
				return nil, &ErrMalformed{Line: lineNo, Reason: err.Error()}
			}
			sv.Attributes = append(sv.Attributes, Attribute{Index: idx, Value: val})
		}

		m.Vectors = append(m.Vectors, sv)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ErrMalformed{Line: lineNo, Reason: err.Error()}
	}

	return m, nil
}

func requireOne(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseFloat(fields []string) (float64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(fields[0], 64)
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseAttribute(tok string) (int, float32, error) {
	parts := strings.SplitN(tok, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed attribute token %q", tok)
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad attribute index in %q: %w", tok, err)
	}
	val, err := strconv.ParseFloat(parts[1], 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad attribute value in %q: %w", tok, err)
	}
	return idx, float32(val), nil
}
