package rank

import "sort"

// Entry is one ranked word with its occurrence count.
type Entry struct {
	Word  string
	Count int
}

// Top counts token occurrences and returns the limit most frequent words,
// ordered by count descending. Ties keep the order in which the words first
// appeared in the stream, so a given token sequence always ranks the same
// way. A non-positive limit or an empty stream yields nothing.
func Top(tokens []string, limit int) []Entry {
	if limit <= 0 || len(tokens) == 0 {
		return nil
	}

	index := make(map[string]int, len(tokens))
	var entries []Entry
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if i, ok := index[tok]; ok {
			entries[i].Count++
			continue
		}
		index[tok] = len(entries)
		entries = append(entries, Entry{Word: tok, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
