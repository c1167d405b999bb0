package feature

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pwestermann/stylo/internal/model"
)

// TargetClass selects, per use case, how a document's class label is read,
// which metadata attribute is the class attribute in the output file, and how
// raw label values map to output class values. A false second return from
// ClassValue excludes the document from the corpus entirely — identically in
// both pipeline passes.
type TargetClass interface {
	ClassValue(doc *model.AnnotatedDocument) (string, bool)
	ClassFeature() string
	ClassMapping() map[string]string
}

// VeracityClass labels documents by their veracity metadata:
// "true" -> "real", "false" -> "fake". Anything else is unlabeled.
type VeracityClass struct{}

func (v VeracityClass) ClassValue(doc *model.AnnotatedDocument) (string, bool) {
	mapped, ok := v.ClassMapping()[strings.ToLower(doc.Meta.Veracity)]
	return mapped, ok
}

func (VeracityClass) ClassFeature() string {
	return "veracity"
}

func (VeracityClass) ClassMapping() map[string]string {
	return map[string]string{
		"true":  "real",
		"false": "fake",
	}
}

// OrientationClass labels documents by political orientation metadata.
type OrientationClass struct{}

func (o OrientationClass) ClassValue(doc *model.AnnotatedDocument) (string, bool) {
	mapped, ok := o.ClassMapping()[strings.ToLower(doc.Meta.Orientation)]
	return mapped, ok
}

func (OrientationClass) ClassFeature() string {
	return "orientation"
}

func (OrientationClass) ClassMapping() map[string]string {
	return map[string]string{
		"left":       "hyperpartisan-left",
		"right":      "hyperpartisan-right",
		"mainstream": "mainstream",
	}
}

var targetClasses = map[string]TargetClass{
	"veracity":    VeracityClass{},
	"orientation": OrientationClass{},
}

// TargetByName resolves a target class by its CLI name.
func TargetByName(name string) (TargetClass, error) {
	tc, ok := targetClasses[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown target class %q (have: %s)", name, strings.Join(TargetNames(), ", "))
	}
	return tc, nil
}

// TargetNames lists the registered target class names, sorted.
func TargetNames() []string {
	names := make([]string, 0, len(targetClasses))
	for name := range targetClasses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
