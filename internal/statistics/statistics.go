// Package statistics computes the aggregate views over a roster: averages,
// per-class extremes and scholarship eligibility.
//
// All averages use integer division truncating toward zero. Eligibility
// depends on that truncation, so it must not be changed to rounding.
package statistics

import (
	"cmp"
	"slices"

	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/ranking"
)

const (
	// ScholarshipMinAverage is the lowest truncated average that qualifies.
	ScholarshipMinAverage = 90
	// ScholarshipMinScore is the lowest single course score that qualifies.
	ScholarshipMinScore = 85
	// ScholarshipMaxRank is the worst class rank that qualifies.
	ScholarshipMaxRank = 3

	// ExtremesSize is how many students are listed at each end of a class.
	ExtremesSize = 3
)

// AverageScore returns total / CourseCount, truncated.
func AverageScore(s *models.Student) int {
	return s.Average()
}

// StudentAverage pairs a student with its truncated average.
type StudentAverage struct {
	Student *models.Student
	Average int
}

// StudentAverages returns every student with its average, highest first.
func StudentAverages(students []*models.Student) []StudentAverage {
	sorted := ranking.SortByAverageDesc(students)
	averages := make([]StudentAverage, len(sorted))
	for i, s := range sorted {
		averages[i] = StudentAverage{Student: s, Average: AverageScore(s)}
	}
	return averages
}

// ClassAverage is the average total score of one class.
type ClassAverage struct {
	ClassName string
	Members   int
	// Total is the sum of the members' total scores.
	Total int
	// Average is Total / Members, truncated. It is not an average of averages.
	Average int
}

// ClassAverages returns one entry per class, highest average first.
// Classes with equal averages keep first-seen order.
func ClassAverages(students []*models.Student) []ClassAverage {
	groups := ranking.GroupByClass(students)
	averages := make([]ClassAverage, len(groups))
	for i, g := range groups {
		total := 0
		for _, s := range g.Members {
			total += s.TotalScore()
		}
		averages[i] = ClassAverage{
			ClassName: g.ClassName,
			Members:   len(g.Members),
			Total:     total,
			Average:   total / len(g.Members),
		}
	}
	slices.SortStableFunc(averages, func(a, b ClassAverage) int {
		return cmp.Compare(b.Average, a.Average)
	})
	return averages
}

// ClassExtremes holds the best and worst students of a class by total score.
// Top and Bottom overlap when the class has fewer than 2*ExtremesSize members.
type ClassExtremes struct {
	ClassName string
	Top       []*models.Student
	Bottom    []*models.Student
}

// TopAndBottom returns the extremes of every class in first-seen class order.
func TopAndBottom(students []*models.Student) []ClassExtremes {
	groups := ranking.GroupByClass(students)
	extremes := make([]ClassExtremes, len(groups))
	for i, g := range groups {
		ranked := ranking.SortByTotalDesc(g.Members)
		n := min(ExtremesSize, len(ranked))
		extremes[i] = ClassExtremes{
			ClassName: g.ClassName,
			Top:       ranked[:n],
			Bottom:    ranked[len(ranked)-n:],
		}
	}
	return extremes
}

// ClassRank returns the 1-based rank of s among the students of its class,
// ordered by ranking.ByTotalDesc. Students are matched by identity, so a
// duplicate id elsewhere in the class does not share the rank. It returns 0
// if s is not in students.
//
// The class is re-sorted on every call.
func ClassRank(students []*models.Student, s *models.Student) int {
	classmates := make([]*models.Student, 0, len(students))
	for _, other := range students {
		if other.ClassName() == s.ClassName() {
			classmates = append(classmates, other)
		}
	}
	ranked := ranking.SortByTotalDesc(classmates)
	return slices.Index(ranked, s) + 1
}

// ScholarshipEligible reports whether s qualifies for a scholarship: an
// average of at least ScholarshipMinAverage, no course below
// ScholarshipMinScore, and a class rank no worse than ScholarshipMaxRank.
func ScholarshipEligible(students []*models.Student, s *models.Student) bool {
	if AverageScore(s) < ScholarshipMinAverage {
		return false
	}
	for _, score := range s.Scores() {
		if score < ScholarshipMinScore {
			return false
		}
	}
	rank := ClassRank(students, s)
	return rank >= 1 && rank <= ScholarshipMaxRank
}

// Scholars returns the eligible students in roster order.
func Scholars(students []*models.Student) []*models.Student {
	var eligible []*models.Student
	for _, s := range students {
		if ScholarshipEligible(students, s) {
			eligible = append(eligible, s)
		}
	}
	return eligible
}
