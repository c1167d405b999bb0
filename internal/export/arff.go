package export

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ARFFWriter serializes a labeled dataset as an ARFF feature file: numeric
// attributes in feature-list order, a nominal class attribute, dense rows.
// Output is deterministic for identical inputs.
type ARFFWriter struct {
	Relation      string
	DecimalPlaces int
}

// NewARFFWriter returns the fixed writer configuration of this system:
// dense rows, 3 decimal places, nominal class column.
func NewARFFWriter(relation string) *ARFFWriter {
	return &ARFFWriter{Relation: relation, DecimalPlaces: 3}
}

// Write serializes vectors and labels to path. provenance names the source
// directory the dataset came from; metaTypeName and classFeature identify the
// metadata attribute the class belongs to; classMapping supplies the nominal
// value domain; featureNames give the column headers, positionally aligned
// with every vector.
func (w *ARFFWriter) Write(path string, values [][]float64, labels []string,
	provenance, metaTypeName, classFeature string,
	classMapping map[string]string, featureNames []string) error {

	if len(values) != len(labels) {
		return fmt.Errorf("arff: %d vectors but %d labels", len(values), len(labels))
	}
	for i, row := range values {
		if len(row) != len(featureNames) {
			return fmt.Errorf("arff: row %d has %d values, expected %d", i, len(row), len(featureNames))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("arff: create %s: %w", path, err)
	}
	out := bufio.NewWriter(f)

	fmt.Fprintf(out, "%% Source: %s\n", provenance)
	fmt.Fprintf(out, "%% Class attribute: %s#%s\n", metaTypeName, classFeature)
	fmt.Fprintf(out, "\n@RELATION %s\n\n", quoteIfNeeded(w.Relation))

	for _, name := range featureNames {
		fmt.Fprintf(out, "@ATTRIBUTE %s NUMERIC\n", quoteIfNeeded(name))
	}
	fmt.Fprintf(out, "@ATTRIBUTE class {%s}\n", strings.Join(classValues(classMapping), ","))

	fmt.Fprint(out, "\n@DATA\n")
	for i, row := range values {
		for j, v := range row {
			if j > 0 {
				out.WriteByte(',')
			}
			out.WriteString(strconv.FormatFloat(v, 'f', w.DecimalPlaces, 64))
		}
		out.WriteByte(',')
		out.WriteString(labels[i])
		out.WriteByte('\n')
	}

	if err := out.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("arff: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("arff: close %s: %w", path, err)
	}
	return nil
}

// classValues returns the nominal domain: the distinct mapped class values in
// sorted order, so the header does not depend on map iteration.
func classValues(mapping map[string]string) []string {
	set := make(map[string]bool, len(mapping))
	for _, v := range mapping {
		set[v] = true
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t,{}%") {
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return s
}
