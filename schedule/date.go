package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tsawler/subplan/model"
)

// dateLandmark marks the text carrying the issue date, e.g.
// "Datum: Montag, 11.04.2016".
const dateLandmark = "Datum: "

const dateLayout = "02.01.2006"

var (
	// ErrDateNotFound reports a document without a date landmark text.
	ErrDateNotFound = errors.New("schedule: no text contains the date landmark")

	// ErrDateMalformed reports a date landmark text without a space to
	// split the date token off.
	ErrDateMalformed = errors.New("schedule: date text has no date token")

	// ErrDateParse reports a date token that is not DD.MM.YYYY.
	ErrDateParse = errors.New("schedule: date token does not parse")
)

// ExtractDate finds the issue date among the document's texts and returns
// it as epoch milliseconds at UTC midnight. The date is the token after
// the last space of the first text containing the landmark.
func ExtractDate(set *model.ObjectSet) (int64, error) {
	for _, t := range set.Texts() {
		if !strings.Contains(t.Value, dateLandmark) {
			continue
		}
		idx := strings.LastIndex(t.Value, " ")
		if idx < 0 {
			return 0, fmt.Errorf("%w: %q", ErrDateMalformed, t.Value)
		}
		token := t.Value[idx+1:]
		day, err := time.Parse(dateLayout, token)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrDateParse, token, err)
		}
		return day.UnixMilli(), nil
	}
	return 0, ErrDateNotFound
}
