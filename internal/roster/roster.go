// Package roster holds the in-memory collection of student records for a session.
package roster

import (
	"slices"

	"github.com/mmynk/roster/internal/models"
)

// Roster is an ordered collection of students. Insertion order is preserved;
// any other display order is produced by the ranking package on a copy.
//
// Roster is not safe for concurrent use. The interactive shell is its only user.
type Roster struct {
	students []*models.Student
}

// New creates a Roster holding the given students in order.
func New(students ...*models.Student) *Roster {
	r := &Roster{}
	r.Replace(students)
	return r
}

// Add appends a student. Duplicate identifiers are allowed.
func (r *Roster) Add(s *models.Student) {
	r.students = append(r.students, s)
}

// RemoveByID removes the first student with the given id and reports whether
// one was found. Later students sharing the id are left in place.
func (r *Roster) RemoveByID(id string) bool {
	i := slices.IndexFunc(r.students, func(s *models.Student) bool {
		return s.ID() == id
	})
	if i < 0 {
		return false
	}
	r.students = slices.Delete(r.students, i, i+1)
	return true
}

// ContainsID reports whether any student has the given id.
func (r *Roster) ContainsID(id string) bool {
	return slices.ContainsFunc(r.students, func(s *models.Student) bool {
		return s.ID() == id
	})
}

// All returns a snapshot of the students in insertion order.
func (r *Roster) All() []*models.Student {
	return slices.Clone(r.students)
}

// Len returns the number of students.
func (r *Roster) Len() int {
	return len(r.students)
}

// Find returns every student matching match, in insertion order.
func (r *Roster) Find(match func(*models.Student) bool) []*models.Student {
	var found []*models.Student
	for _, s := range r.students {
		if match(s) {
			found = append(found, s)
		}
	}
	return found
}

// FindByName returns all students whose name equals name exactly.
func (r *Roster) FindByName(name string) []*models.Student {
	return r.Find(func(s *models.Student) bool { return s.Name() == name })
}

// FindByClass returns all students in the given class.
func (r *Roster) FindByClass(className string) []*models.Student {
	return r.Find(func(s *models.Student) bool { return s.ClassName() == className })
}

// Replace swaps the whole collection for students, keeping their order.
func (r *Roster) Replace(students []*models.Student) {
	r.students = slices.Clone(students)
}
