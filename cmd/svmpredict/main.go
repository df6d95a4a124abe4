// Command svmpredict runs a single inference against a libSVM C-SVC text
// model.
//
// Usage:
//
//	svmpredict -model model.txt -features 1:0.2,2:-1.5,3:0.9 [-sparse] [-probabilities]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/go-ffsvm/svm"
)

var (
	modelPath    = flag.String("model", "", "Path to a libSVM text model file (required)")
	featuresFlag = flag.String("features", "", "Comma-separated index:value feature pairs, e.g. 1:0.2,2:-1.5 (required)")
	sparse       = flag.Bool("sparse", false, "Use sparse support-vector storage instead of dense")
	probsFlag    = flag.Bool("probabilities", false, "Print the posterior probability per class in addition to the label")
)

func main() {
	flag.Parse()

	if *modelPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -model flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}
	if *featuresFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: -features flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*modelPath)
	if err != nil {
		log.Fatalf("opening model file: %v", err)
	}
	defer f.Close()

	model, err := svm.LoadModel(f, *sparse)
	if err != nil {
		log.Fatalf("loading model: %v", err)
	}

	problem := svm.ProblemFromModel(model)
	if err := fillFeatures(problem, *featuresFlag); err != nil {
		log.Fatalf("parsing -features: %v", err)
	}

	if err := svm.Predict(model, problem); err != nil {
		log.Fatalf("predicting: %v", err)
	}

	fmt.Printf("label: %d\n", problem.Label)
	if *probsFlag {
		if model.Probabilities == nil {
			fmt.Fprintln(os.Stderr, "model has no probability calibration parameters")
			return
		}
		for i, p := range problem.Probabilities {
			label, _ := model.ClassLabelForIndex(i)
			fmt.Printf("  class %d: %.6f\n", label, p)
		}
	}
}

// fillFeatures parses "index:value,index:value,..." pairs into
// problem.Features, 1-indexed to match the model file's attribute
// numbering.
func fillFeatures(problem *svm.Problem, spec string) error {
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("malformed feature token %q", tok)
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("bad feature index in %q: %w", tok, err)
		}
		val, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			return fmt.Errorf("bad feature value in %q: %w", tok, err)
		}
		if idx < 1 || idx > len(problem.Features) {
			return fmt.Errorf("feature index %d out of range [1, %d]", idx, len(problem.Features))
		}
		problem.Features[idx-1] = float32(val)
	}
	return nil
}
