package word

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// diaryExport is the JSON interchange format of the diary.
type diaryExport struct {
	Words      []Word `json:"words"`
	ExportDate int64  `json:"exportDate"`
}

// ExportDiary renders the diary as indented JSON with an export timestamp.
func ExportDiary(words []Word) ([]byte, error) {
	payload, err := json.MarshalIndent(diaryExport{
		Words:      words,
		ExportDate: time.Now().UnixMilli(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent() > %w", err)
	}
	return payload, nil
}

// MergeImport parses an exported diary and merges it into existing words.
// Entries are keyed case-insensitively on the display text; when both sides
// carry the same word, the newer AddedAt wins. The merged diary is returned
// newest first, along with the number of imported entries.
func MergeImport(existing []Word, payload []byte) ([]Word, int, error) {
	var data diaryExport
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, 0, fmt.Errorf("json.Unmarshal() > %w", err)
	}
	if data.Words == nil {
		return nil, 0, fmt.Errorf("invalid diary format: missing words")
	}

	byKey := make(map[string]Word, len(existing))
	for _, w := range existing {
		byKey[w.Key()] = w
	}
	for _, w := range data.Words {
		current, ok := byKey[w.Key()]
		if !ok || current.AddedAt < w.AddedAt {
			byKey[w.Key()] = w
		}
	}

	merged := make([]Word, 0, len(byKey))
	for _, w := range byKey {
		merged = append(merged, w)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].AddedAt > merged[j].AddedAt
	})
	return merged, len(data.Words), nil
}
