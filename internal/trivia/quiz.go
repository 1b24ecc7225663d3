package trivia

// PickUnseen chooses uniformly among the candidates whose id is not in
// previous. It returns nil once every candidate has been seen.
func PickUnseen(candidates []Question, previous []int, intn func(n int) int) *Question {
	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	unseen := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}
	if len(unseen) == 0 {
		return nil
	}

	picked := unseen[intn(len(unseen))]
	return &picked
}
