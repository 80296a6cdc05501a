package analyzer

// NameSimilarity returns a normalized string similarity in [0, 1]:
// 1 - d/maxLen, where d is the optimal string alignment distance
// (Levenshtein extended with adjacent transpositions at cost 1).
// Transpositions count once so a single swapped pair in a 5-character
// name still scores 0.8.
func NameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	d := osaDistance(ra, rb)
	return 1.0 - float64(d)/float64(maxLen)
}

// osaDistance computes the optimal string alignment distance between
// two rune slices using three rolling rows.
func osaDistance(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if tr := prev2[j-2] + 1; tr < min {
					min = tr
				}
			}
			curr[j] = min
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}
