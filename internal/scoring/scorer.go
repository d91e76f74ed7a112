package scoring

// CriticalScore annotates a critical-trial answer. The three flags are
// computed independently of each other.
type CriticalScore struct {
	IsCorrect bool `json:"is_correct"`
	IsStart   bool `json:"is_start"`
	IsEnd     bool `json:"is_end"`
}

type AttentionScore struct {
	IsCorrect bool `json:"is_correct"`
}

// ScoreCritical compares the normalized response against the correct answer
// and the start and end locations. Matching is exact after lowercasing, so
// "apples" does not match "apple" and surrounding spaces count.
func ScoreCritical(response, correct, start, end string) CriticalScore {
	r := Normalize(response)
	return CriticalScore{
		IsCorrect: r == Normalize(correct),
		IsStart:   r == Normalize(start),
		IsEnd:     r == Normalize(end),
	}
}

func ScoreAttentionCheck(response, correct string) AttentionScore {
	return AttentionScore{IsCorrect: Normalize(response) == Normalize(correct)}
}
