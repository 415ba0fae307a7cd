package metrics

import "golang.org/x/text/unicode/norm"

// EditDistance computes the Levenshtein distance between two strings,
// counted over runes, using the two-row dynamic programming form.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1]
				continue
			}
			insert := cur[j-1]
			del := prev[j]
			replace := prev[j-1]
			cur[j] = min(insert, del, replace) + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// RelativeEditDistance normalizes the edit distance between a ground-truth
// and a predicted string by the ground-truth length: 0 means identical, 1
// completely different, and values above 1 occur when the prediction is much
// longer than the ground truth. An empty ground truth with a non-empty
// prediction yields 1. Both strings go through NFC normalization first so
// recognizer output using decomposed accents does not inflate the distance.
func RelativeEditDistance(groundTruth, predicted string) float64 {
	groundTruth = norm.NFC.String(groundTruth)
	predicted = norm.NFC.String(predicted)
	n := len([]rune(groundTruth))
	if n == 0 {
		if len(predicted) == 0 {
			return 0
		}
		return 1
	}
	return float64(EditDistance(groundTruth, predicted)) / float64(n)
}
