// Package models defines the core domain model for the roster.
//
// # Student
//
// A Student is one record of the roster: an identifier, a name, a gender,
// a class and one score per course. The total score is derived from the
// scores when the record is built and is never stored separately.
//
// # Design Principles
//
// 1. **Immutable records**: a Student has no setters; an edit is a delete
// followed by a fresh add.
// 2. **Fixed courses**: every record carries exactly CourseCount scores, in
// the order of Courses.
// 3. **No validation**: ranges are not checked and identifiers are not
// required to be unique. Callers that care about either do so themselves.
package models
