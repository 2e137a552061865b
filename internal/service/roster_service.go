// Package service coordinates the in-memory roster, its persistence and the
// ranking and statistics engines. The shell talks only to this package.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/ranking"
	"github.com/mmynk/roster/internal/roster"
	"github.com/mmynk/roster/internal/statistics"
	"github.com/mmynk/roster/internal/storage"
)

// ErrStudentNotFound is returned when no student has the requested id.
var ErrStudentNotFound = errors.New("student not found")

// RosterService owns the session's roster.
type RosterService struct {
	store   storage.Store
	roster  *roster.Roster
	metrics *metrics.Metrics
}

// NewRosterService creates a RosterService with the given storage backend and
// an empty roster. Call Load to populate it. m may be nil.
func NewRosterService(store storage.Store, m *metrics.Metrics) *RosterService {
	return &RosterService{store: store, roster: roster.New(), metrics: m}
}

// Load replaces the roster with the persisted one.
func (s *RosterService) Load(ctx context.Context) error {
	students, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	s.roster.Replace(students)
	s.observeSize()

	slog.Info("Roster loaded", "students", len(students))
	return nil
}

// Save writes the whole roster back to storage.
func (s *RosterService) Save(ctx context.Context) error {
	err := s.store.Save(ctx, s.roster.All())
	if s.metrics != nil {
		s.metrics.ObserveSave(err)
	}
	if err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	slog.Info("Roster saved", "students", s.roster.Len())
	return nil
}

// Count returns the number of students in the roster.
func (s *RosterService) Count() int {
	return s.roster.Len()
}

// Students returns the roster in insertion order.
func (s *RosterService) Students() []*models.Student {
	return s.roster.All()
}

// AddStudent builds a record and appends it. It reports whether another
// student already had the same id; the record is added either way.
func (s *RosterService) AddStudent(ctx context.Context, id, name, gender, className string, scores [models.CourseCount]int) (*models.Student, bool) {
	duplicate := s.roster.ContainsID(id)
	student := models.NewStudent(id, name, gender, className, scores)
	s.roster.Add(student)
	s.observeSize()

	if duplicate {
		slog.Warn("Student added with an existing id", "student_id", id)
	}
	slog.Info("Student added", "student_id", id, "class", className, "total", student.TotalScore())
	return student, duplicate
}

// DeleteStudent removes the first student with the given id.
func (s *RosterService) DeleteStudent(ctx context.Context, id string) error {
	if !s.roster.RemoveByID(id) {
		slog.Info("DeleteStudent: no match", "student_id", id)
		return fmt.Errorf("%w: %s", ErrStudentNotFound, id)
	}
	s.observeSize()

	slog.Info("Student deleted", "student_id", id)
	return nil
}

// ListByCourse returns every student ordered by a 1-based course number,
// highest score first. An invalid course yields ranking.ErrInvalidCourse.
func (s *RosterService) ListByCourse(ctx context.Context, course int) ([]*models.Student, error) {
	return ranking.SortByCourseDesc(s.roster.All(), course)
}

// SearchByName returns the students with exactly that name, in roster order.
func (s *RosterService) SearchByName(ctx context.Context, name string) []*models.Student {
	return s.roster.FindByName(name)
}

// SearchByClass returns the students of a class in class ranking order.
func (s *RosterService) SearchByClass(ctx context.Context, className string) []*models.Student {
	return ranking.SortByTotalDesc(s.roster.FindByClass(className))
}

// StudentAverages returns every student's average, highest first.
func (s *RosterService) StudentAverages(ctx context.Context) []statistics.StudentAverage {
	return statistics.StudentAverages(s.roster.All())
}

// ClassAverages returns every class's average total, highest first.
func (s *RosterService) ClassAverages(ctx context.Context) []statistics.ClassAverage {
	return statistics.ClassAverages(s.roster.All())
}

// TopAndBottom returns the three best and worst students of each class.
func (s *RosterService) TopAndBottom(ctx context.Context) []statistics.ClassExtremes {
	return statistics.TopAndBottom(s.roster.All())
}

// Scholars returns the students eligible for a scholarship.
func (s *RosterService) Scholars(ctx context.Context) []*models.Student {
	return statistics.Scholars(s.roster.All())
}

func (s *RosterService) observeSize() {
	if s.metrics != nil {
		s.metrics.SetStudents(s.roster.Len())
	}
}
