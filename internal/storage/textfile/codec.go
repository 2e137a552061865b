package textfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/roster/internal/models"
)

const (
	delimiter = ","

	// fieldCount is id, name, gender, class and one field per course.
	fieldCount = 4 + models.CourseCount
)

// ErrMalformedLine is wrapped by every parse failure.
var ErrMalformedLine = errors.New("malformed line")

// LineError reports the line that failed to parse.
type LineError struct {
	// Line is the 1-based line number in the file.
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLine decodes one "id,name,gender,className,score1,score2,score3" line.
// Fields are taken verbatim; there is no quoting or trimming.
func ParseLine(line string) (*models.Student, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) != fieldCount {
		return nil, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedLine, len(fields), fieldCount)
	}

	var scores [models.CourseCount]int
	for i := range scores {
		score, err := strconv.Atoi(fields[4+i])
		if err != nil {
			return nil, fmt.Errorf("%w: score %d is not an integer: %q", ErrMalformedLine, i+1, fields[4+i])
		}
		scores[i] = score
	}

	return models.NewStudent(fields[0], fields[1], fields[2], fields[3], scores), nil
}

// FormatLine encodes a student as one line without the trailing newline.
// Names or classes containing a comma cannot be read back.
func FormatLine(s *models.Student) string {
	var b strings.Builder
	b.WriteString(s.ID())
	b.WriteString(delimiter)
	b.WriteString(s.Name())
	b.WriteString(delimiter)
	b.WriteString(s.Gender())
	b.WriteString(delimiter)
	b.WriteString(s.ClassName())
	for _, score := range s.Scores() {
		b.WriteString(delimiter)
		b.WriteString(strconv.Itoa(score))
	}
	return b.String()
}
