// Package ranking implements the orderings used to display students and
// the grouping of students by class.
//
// Every sort works on a copy of its input and is stable, so students that
// compare equal keep their original relative order.
package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/mmynk/roster/internal/models"
)

// ErrInvalidCourse is returned when a course number is outside 1..CourseCount.
var ErrInvalidCourse = errors.New("invalid course")

// Order compares two students the way slices.SortStableFunc expects.
type Order func(a, b *models.Student) int

// ByTotalDesc orders by total score descending, then by identifier ascending.
// This is the class ranking order.
func ByTotalDesc(a, b *models.Student) int {
	if c := cmp.Compare(b.TotalScore(), a.TotalScore()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID(), b.ID())
}

// ByAverageDesc orders by truncated average descending with no tie-break.
func ByAverageDesc(a, b *models.Student) int {
	return cmp.Compare(b.Average(), a.Average())
}

// ByCourseDesc orders by a single 0-based course score, descending.
func ByCourseDesc(course int) Order {
	return func(a, b *models.Student) int {
		return cmp.Compare(b.Score(course), a.Score(course))
	}
}

// Sorted returns a stably sorted copy of students.
func Sorted(students []*models.Student, order Order) []*models.Student {
	sorted := slices.Clone(students)
	slices.SortStableFunc(sorted, order)
	return sorted
}

// SortByTotalDesc returns students in class ranking order.
func SortByTotalDesc(students []*models.Student) []*models.Student {
	return Sorted(students, ByTotalDesc)
}

// SortByAverageDesc returns students by average, highest first.
func SortByAverageDesc(students []*models.Student) []*models.Student {
	return Sorted(students, ByAverageDesc)
}

// SortByCourseDesc returns students by the score of a 1-based course number.
// An out-of-range course yields ErrInvalidCourse and no result.
func SortByCourseDesc(students []*models.Student, course int) ([]*models.Student, error) {
	if err := ValidateCourse(course); err != nil {
		return nil, err
	}
	return Sorted(students, ByCourseDesc(course-1)), nil
}

// ValidateCourse checks a 1-based course number.
func ValidateCourse(course int) error {
	if course < 1 || course > models.CourseCount {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidCourse, course, models.CourseCount)
	}
	return nil
}

// ClassGroup is the set of students sharing a class name.
type ClassGroup struct {
	ClassName string
	Members   []*models.Student
}

// GroupByClass groups students by class. Groups appear in the order their
// class is first seen; members keep insertion order.
func GroupByClass(students []*models.Student) []ClassGroup {
	index := make(map[string]int)
	var groups []ClassGroup
	for _, s := range students {
		i, ok := index[s.ClassName()]
		if !ok {
			i = len(groups)
			index[s.ClassName()] = i
			groups = append(groups, ClassGroup{ClassName: s.ClassName()})
		}
		groups[i].Members = append(groups[i].Members, s)
	}
	return groups
}
