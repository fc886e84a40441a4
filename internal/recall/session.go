package recall

import "time"

// sessionDateFormat is the calendar-day key a session is valid for.
const sessionDateFormat = "2006-01-02"

// Session is the persisted state of one day's recall quiz. Questions are
// fixed at creation; Cursor and Score advance one answer at a time.
type Session struct {
	Date      string     `yaml:"date" json:"date"`
	Questions []Question `yaml:"questions" json:"questions"`
	Cursor    int        `yaml:"cursor" json:"cursor"`
	Score     int        `yaml:"score" json:"score"`
	Completed bool       `yaml:"completed" json:"completed"`
}

// Remaining returns how many questions are still unanswered.
func (s Session) Remaining() int {
	return len(s.Questions) - s.Cursor
}

// Current returns the next unanswered question, or false once completed.
func (s Session) Current() (Question, bool) {
	if s.Cursor >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Cursor], true
}

func today(now time.Time) string {
	return now.Format(sessionDateFormat)
}
