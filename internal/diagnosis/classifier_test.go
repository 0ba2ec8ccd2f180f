package diagnosis

import (
	"testing"

	"github.com/abhisek/arbor/internal/planting"
)

func segment(length, interval float64, mode planting.BoundaryMode) planting.SpacingSpec {
	return planting.SpacingSpec{Length: length, Interval: interval, Mode: mode, Shape: planting.Segment}
}

func loop(length, interval float64, shape planting.PathShape) planting.SpacingSpec {
	return planting.SpacingSpec{Length: length, Interval: interval, Mode: planting.Loop, Shape: shape}
}

func mustCount(t *testing.T, spec planting.SpacingSpec) int {
	t.Helper()
	n, err := planting.ComputeCount(spec)
	if err != nil {
		t.Fatalf("ComputeCount(%v): %v", spec, err)
	}
	return n
}

func TestSpeedRushClassifier_UnderThreshold(t *testing.T) {
	c := &SpeedRushClassifier{}
	f := c.Classify(&ClassifyInput{ResponseTimeMs: 1500})
	if f.Category != CategorySpeedRush {
		t.Errorf("got category %q, want %q", f.Category, CategorySpeedRush)
	}
	if f.Confidence != 0.9 {
		t.Errorf("got confidence %f, want 0.9", f.Confidence)
	}
}

func TestSpeedRushClassifier_AtThreshold(t *testing.T) {
	c := &SpeedRushClassifier{}
	if f := c.Classify(&ClassifyInput{ResponseTimeMs: 2000}); f.Category != "" {
		t.Errorf("got category %q at threshold, want empty", f.Category)
	}
}

func TestSpeedRushClassifier_Untimed(t *testing.T) {
	c := &SpeedRushClassifier{}
	if f := c.Classify(&ClassifyInput{ResponseTimeMs: 0}); f.Category != "" {
		t.Errorf("got category %q for untimed answer, want empty", f.Category)
	}
}

func TestCarelessClassifier_HighAccuracy(t *testing.T) {
	c := &CarelessClassifier{}
	f := c.Classify(&ClassifyInput{ModeAccuracy: 0.85})
	if f.Category != CategoryCareless {
		t.Errorf("got category %q, want %q", f.Category, CategoryCareless)
	}
	if f.Confidence != 0.8 {
		t.Errorf("got confidence %f, want 0.8", f.Confidence)
	}
}

func TestCarelessClassifier_AtThreshold(t *testing.T) {
	c := &CarelessClassifier{}
	if f := c.Classify(&ClassifyInput{ModeAccuracy: 0.80}); f.Category != "" {
		t.Errorf("got category %q at threshold, want empty", f.Category)
	}
}

func TestBoundaryClassifier(t *testing.T) {
	tests := []struct {
		name   string
		spec   planting.SpacingSpec
		answer int
		want   string
	}{
		{"both ends answered gaps", segment(100, 10, planting.BothEnds), 10, MisconceptionMissedEnds},
		{"both ends dropped both", segment(100, 10, planting.BothEnds), 9, MisconceptionMissedEnds},
		{"no ends answered gaps", segment(100, 10, planting.NoEnds), 10, MisconceptionKeptEnds},
		{"no ends added both", segment(100, 10, planting.NoEnds), 11, MisconceptionKeptEnds},
		{"one end plus one", segment(100, 10, planting.OneEnd), 11, MisconceptionOneEndShift},
		{"one end minus one", segment(100, 10, planting.OneEnd), 9, MisconceptionOneEndShift},
		{"loop plus one", loop(60, 5, planting.Circle), 13, MisconceptionLoopClosingTree},
		{"unrelated", segment(100, 10, planting.BothEnds), 50, ""},
		{"loop minus one", loop(60, 5, planting.Circle), 11, ""},
	}

	c := &BoundaryClassifier{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := c.Classify(&ClassifyInput{
				Spec:          tt.spec,
				CorrectAnswer: mustCount(t, tt.spec),
				LearnerAnswer: tt.answer,
			})
			if f.MisconceptionID != tt.want {
				t.Errorf("misconception = %q, want %q", f.MisconceptionID, tt.want)
			}
			if tt.want != "" && f.Category != CategoryMisconception {
				t.Errorf("category = %q, want misconception", f.Category)
			}
		})
	}
}

func TestPerimeterClassifier(t *testing.T) {
	square := loop(20, 5, planting.Square) // 16 trees
	tests := []struct {
		answer int
		want   string
	}{
		{4, MisconceptionSideNotPerimeter},
		{5, MisconceptionSideNotPerimeter},
		{20, MisconceptionCornersTwice},
		{15, ""},
	}

	c := &PerimeterClassifier{}
	for _, tt := range tests {
		f := c.Classify(&ClassifyInput{Spec: square, CorrectAnswer: 16, LearnerAnswer: tt.answer})
		if f.MisconceptionID != tt.want {
			t.Errorf("answer %d: misconception = %q, want %q", tt.answer, f.MisconceptionID, tt.want)
		}
	}

	// Circles have no sides to confuse.
	f := c.Classify(&ClassifyInput{Spec: loop(60, 5, planting.Circle), CorrectAnswer: 12, LearnerAnswer: 12 + 1})
	if f.Category != "" {
		t.Errorf("circle matched %q", f.MisconceptionID)
	}
}

func TestOperationClassifier(t *testing.T) {
	c := &OperationClassifier{}
	f := c.Classify(&ClassifyInput{Spec: segment(30, 5, planting.BothEnds), CorrectAnswer: 7, LearnerAnswer: 150})
	if f.MisconceptionID != MisconceptionMultiplied {
		t.Errorf("misconception = %q, want %q", f.MisconceptionID, MisconceptionMultiplied)
	}
	f = c.Classify(&ClassifyInput{Spec: segment(30, 5, planting.BothEnds), CorrectAnswer: 7, LearnerAnswer: 149})
	if f.Category != "" {
		t.Errorf("unexpected match %+v", f)
	}
}

func TestRunClassifiers_PatternBeforeSpeedRush(t *testing.T) {
	spec := segment(100, 10, planting.BothEnds)
	input := &ClassifyInput{Spec: spec, CorrectAnswer: 11, LearnerAnswer: 10, ResponseTimeMs: 500, ModeAccuracy: 0.9}
	f, name := RunClassifiers(DefaultClassifiers(), input)
	if f.MisconceptionID != MisconceptionMissedEnds {
		t.Errorf("got %q, want %q", f.MisconceptionID, MisconceptionMissedEnds)
	}
	if name != "boundary-rule" {
		t.Errorf("got classifier %q, want boundary-rule", name)
	}
}

func TestRunClassifiers_SpeedRushBeforeCareless(t *testing.T) {
	spec := segment(100, 10, planting.BothEnds)
	input := &ClassifyInput{Spec: spec, CorrectAnswer: 11, LearnerAnswer: 40, ResponseTimeMs: 1000, ModeAccuracy: 0.9}
	f, name := RunClassifiers(DefaultClassifiers(), input)
	if f.Category != CategorySpeedRush || name != "speed-rush" {
		t.Errorf("got %q from %q, want speed-rush", f.Category, name)
	}
}

func TestRunClassifiers_CarelessFallback(t *testing.T) {
	spec := segment(100, 10, planting.BothEnds)
	input := &ClassifyInput{Spec: spec, CorrectAnswer: 11, LearnerAnswer: 40, ResponseTimeMs: 5000, ModeAccuracy: 0.9}
	f, name := RunClassifiers(DefaultClassifiers(), input)
	if f.Category != CategoryCareless || name != "careless" {
		t.Errorf("got %q from %q, want careless", f.Category, name)
	}
}

func TestRunClassifiers_NoMatch(t *testing.T) {
	spec := segment(100, 10, planting.BothEnds)
	input := &ClassifyInput{Spec: spec, CorrectAnswer: 11, LearnerAnswer: 40, ResponseTimeMs: 5000, ModeAccuracy: 0.5}
	f, name := RunClassifiers(DefaultClassifiers(), input)
	if f.Category != "" || name != "" {
		t.Errorf("got %q from %q, want no match", f.Category, name)
	}
}

func TestRunClassifiers_CorrectAnswerNeverClassified(t *testing.T) {
	spec := segment(100, 10, planting.BothEnds)
	input := &ClassifyInput{Spec: spec, CorrectAnswer: 11, LearnerAnswer: 11, ResponseTimeMs: 100}
	if f, _ := RunClassifiers(DefaultClassifiers(), input); f.Category != "" {
		t.Errorf("correct answer classified as %q", f.Category)
	}
}

func TestDiagnosisResult_Label(t *testing.T) {
	r := &DiagnosisResult{Category: CategoryMisconception, MisconceptionID: MisconceptionCornersTwice}
	if r.Label() != "Counted corners twice" {
		t.Errorf("label = %q", r.Label())
	}
	if (&DiagnosisResult{Category: CategorySpeedRush}).Label() != "Answered too fast" {
		t.Error("speed-rush label mismatch")
	}
	if (&DiagnosisResult{Category: CategoryUnclassified}).Label() != "Unclassified" {
		t.Error("unclassified label mismatch")
	}
}

func TestPerimeterClassifier_ToleratesFloatRatio(t *testing.T) {
	// 0.7 / 0.1 is 6.999999999999999 in float64; one side still holds 7.
	tri := loop(0.7, 0.1, planting.Triangle)
	c := &PerimeterClassifier{}
	f := c.Classify(&ClassifyInput{Spec: tri, CorrectAnswer: mustCount(t, tri), LearnerAnswer: 7})
	if f.MisconceptionID != MisconceptionSideNotPerimeter {
		t.Errorf("misconception = %q, want %q", f.MisconceptionID, MisconceptionSideNotPerimeter)
	}
}

func TestOperationClassifier_ToleratesFloatProduct(t *testing.T) {
	// 1.1 * 50 is 55.00000000000001 in float64.
	spec := segment(1.1, 50, planting.OneEnd)
	c := &OperationClassifier{}
	f := c.Classify(&ClassifyInput{Spec: spec, CorrectAnswer: 1, LearnerAnswer: 55})
	if f.MisconceptionID != MisconceptionMultiplied {
		t.Errorf("misconception = %q, want %q", f.MisconceptionID, MisconceptionMultiplied)
	}
}
