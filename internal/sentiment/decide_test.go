package sentiment

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name           string
		rawScore       float64
		wantSentiment  string
		wantConfidence float64
	}{
		{"strongly positive", 0.99, LabelPositive, 0.99},
		{"mildly positive", 0.6, LabelPositive, 0.6},
		{"boundary is positive", 0.5, LabelPositive, 0.5},
		{"mildly negative", 0.4, LabelNegative, 0.6},
		{"strongly negative", 0.12, LabelNegative, 0.88},
		{"zero", 0.0, LabelNegative, 1.0},
		{"one", 1.0, LabelPositive, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.rawScore)
			if got.Sentiment != tt.wantSentiment {
				t.Errorf("Decide(%v).Sentiment = %q, want %q", tt.rawScore, got.Sentiment, tt.wantSentiment)
			}
			if diff := got.Confidence - tt.wantConfidence; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Decide(%v).Confidence = %v, want %v", tt.rawScore, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestDecideConfidenceRange(t *testing.T) {
	for _, score := range []float64{0, 0.1, 0.25, 0.49999, 0.5, 0.50001, 0.75, 0.9, 1} {
		got := Decide(score)
		if got.Confidence < 0.5 || got.Confidence > 1 {
			t.Errorf("Decide(%v).Confidence = %v, outside [0.5, 1]", score, got.Confidence)
		}
	}
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.8234567, 0.8235},
		{0.12, 0.12},
		{0.00004, 0.0},
		{0.00006, 0.0001},
		{1.0, 1.0},
	}

	for _, tt := range tests {
		if got := Round4(tt.in); got != tt.want {
			t.Errorf("Round4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
