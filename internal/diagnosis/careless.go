package diagnosis

// CarelessAccuracyThreshold is the minimum historical accuracy (exclusive)
// for a wrong answer to be classified as a careless error.
const CarelessAccuracyThreshold = 0.80

// CarelessClassifier flags wrong answers from learners who usually get the
// mode right as careless slips rather than knowledge gaps.
type CarelessClassifier struct{}

func (c *CarelessClassifier) Name() string { return "careless" }

func (c *CarelessClassifier) Classify(input *ClassifyInput) Finding {
	if input.ModeAccuracy > CarelessAccuracyThreshold {
		return Finding{Category: CategoryCareless, Confidence: 0.8}
	}
	return Finding{}
}
