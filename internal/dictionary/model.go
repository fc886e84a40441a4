// Package dictionary looks up word definitions from the free dictionary API
// and maps them into diary entries.
package dictionary

import "github.com/worddiary/worddiary/internal/word"

// maxDefinitionsPerMeaning bounds how many definitions are kept per part
// of speech when mapping an API entry into a diary word.
const maxDefinitionsPerMeaning = 3

// Entry is one result of the dictionary API. The API returns an array of
// entries per looked-up word.
type Entry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

type Phonetic struct {
	Text string `json:"text"`
}

type Meaning struct {
	PartOfSpeech string            `json:"partOfSpeech"`
	Definitions  []EntryDefinition `json:"definitions"`
}

type EntryDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// phonetic returns the entry-level pronunciation, falling back to the
// first non-empty phonetics element.
func (e Entry) phonetic() string {
	if e.Phonetic != "" {
		return e.Phonetic
	}
	for _, p := range e.Phonetics {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

// ToSenses converts the entry's meanings into diary senses, keeping at most
// maxDefinitionsPerMeaning definitions each and skipping empty meanings.
func (e Entry) ToSenses() []word.Sense {
	senses := make([]word.Sense, 0, len(e.Meanings))
	for _, meaning := range e.Meanings {
		definitions := make([]word.Definition, 0, maxDefinitionsPerMeaning)
		for _, def := range meaning.Definitions {
			if def.Definition == "" {
				continue
			}
			definitions = append(definitions, word.Definition{
				Text:    def.Definition,
				Example: def.Example,
			})
			if len(definitions) == maxDefinitionsPerMeaning {
				break
			}
		}
		if len(definitions) == 0 {
			continue
		}
		senses = append(senses, word.Sense{
			PartOfSpeech: meaning.PartOfSpeech,
			Definitions:  definitions,
		})
	}
	return senses
}
