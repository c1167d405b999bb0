package export

import "testing"

func TestDownsampler_TrimsToMinorityClass(t *testing.T) {
	values := [][]float64{{1}, {2}, {3}, {4}, {5}}
	labels := []string{"real", "real", "fake", "real", "fake"}

	outValues, outLabels := Downsampler{}.Balance(values, labels)

	counts := map[string]int{}
	for _, l := range outLabels {
		counts[l]++
	}
	if counts["real"] != 2 || counts["fake"] != 2 {
		t.Errorf("counts = %v, want 2 per class", counts)
	}
	if len(outValues) != len(outLabels) {
		t.Fatalf("parallel slices diverged: %d vs %d", len(outValues), len(outLabels))
	}

	// First occurrences win, original order preserved.
	wantFirst := []float64{1, 2, 3, 5}
	for i, want := range wantFirst {
		if outValues[i][0] != want {
			t.Errorf("value %d = %v, want %v", i, outValues[i][0], want)
		}
	}
}

func TestDownsampler_AlreadyBalanced(t *testing.T) {
	values := [][]float64{{1}, {2}}
	labels := []string{"a", "b"}
	outValues, outLabels := Downsampler{}.Balance(values, labels)
	if len(outValues) != 2 || len(outLabels) != 2 {
		t.Errorf("balanced input should pass through, got %v %v", outValues, outLabels)
	}
}

func TestDownsampler_Empty(t *testing.T) {
	outValues, outLabels := Downsampler{}.Balance(nil, nil)
	if len(outValues) != 0 || len(outLabels) != 0 {
		t.Error("empty dataset should stay empty")
	}
}
