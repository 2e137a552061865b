package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/statistics"
)

const separator = "--------------------"

func courseLegend() string {
	parts := make([]string, len(models.Courses))
	for i, course := range models.Courses {
		parts[i] = fmt.Sprintf("%d: %s", i+1, course)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// writeStudent prints the full record of one student.
func writeStudent(w io.Writer, s *models.Student) {
	fmt.Fprintf(w, "ID: %s\n", s.ID())
	fmt.Fprintf(w, "Name: %s\n", s.Name())
	fmt.Fprintf(w, "Gender: %s\n", s.Gender())
	fmt.Fprintf(w, "Class: %s\n", s.ClassName())
	fmt.Fprintln(w, "Scores:")
	for i, course := range models.Courses {
		fmt.Fprintf(w, "  %s: %d\n", course, s.Score(i))
	}
	fmt.Fprintf(w, "Total: %d\n", s.TotalScore())
	fmt.Fprintln(w, separator)
}

func writeStudentAverages(w io.Writer, averages []statistics.StudentAverage) {
	fmt.Fprintln(w, "Average of each student (highest first):")
	for _, a := range averages {
		fmt.Fprintf(w, "%s: %d\n", a.Student.Name(), a.Average)
	}
}

func writeClassAverages(w io.Writer, averages []statistics.ClassAverage) {
	fmt.Fprintln(w, "Average total of each class (highest first):")
	for _, a := range averages {
		fmt.Fprintf(w, "%s: %d\n", a.ClassName, a.Average)
	}
}

func writeExtremes(w io.Writer, extremes []statistics.ClassExtremes) {
	for _, e := range extremes {
		fmt.Fprintf(w, "Class: %s\n", e.ClassName)
		fmt.Fprintf(w, "Top %d by total:\n", statistics.ExtremesSize)
		for _, s := range e.Top {
			writeStudent(w, s)
		}
		fmt.Fprintf(w, "Bottom %d by total:\n", statistics.ExtremesSize)
		for _, s := range e.Bottom {
			writeStudent(w, s)
		}
	}
}

func writeScholars(w io.Writer, scholars []*models.Student) {
	fmt.Fprintln(w, "Scholarship recipients:")
	if len(scholars) == 0 {
		fmt.Fprintln(w, "None.")
		return
	}
	for _, s := range scholars {
		writeStudent(w, s)
	}
}
