package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/ranking"
	"github.com/mmynk/roster/internal/service"
)

func (sh *Shell) addStudent(ctx context.Context) error {
	var fields [4]string
	for i, label := range []string{"Student ID: ", "Name: ", "Gender: ", "Class: "} {
		reply, err := sh.prompt(ctx, label)
		if err != nil {
			return err
		}
		fields[i] = reply
	}

	var scores [models.CourseCount]int
	for i, course := range models.Courses {
		score, err := sh.promptInt(ctx, course + " score: ")
		if err != nil {
			return err
		}
		scores[i] = score
	}

	_, duplicate := sh.svc.AddStudent(ctx, fields[0], fields[1], fields[2], fields[3], scores)
	if duplicate {
		fmt.Fprintf(sh.out, "Note: student ID %s already existed; both records are kept.\n", fields[0])
	}
	fmt.Fprintln(sh.out, "Student record added.")
	return nil
}

func (sh *Shell) listByCourse(ctx context.Context) error {
	if sh.svc.Count() == 0 {
		fmt.Fprintln(sh.out, "No student records yet.")
		return nil
	}

	fmt.Fprintln(sh.out, "List scores by one course, highest first.")
	fmt.Fprintln(sh.out, courseLegend())
	course, err := sh.promptInt(ctx, "Course (1-3): ")
	if err != nil {
		return err
	}

	students, err := sh.svc.ListByCourse(ctx, course)
	if errors.Is(err, ranking.ErrInvalidCourse) {
		fmt.Fprintln(sh.out, "Invalid course number.")
		return nil
	}
	if err != nil {
		return err
	}

	for _, s := range students {
		fmt.Fprintf(sh.out, "%s: %d\n", s.Name(), s.Score(course-1))
	}
	return nil
}

func (sh *Shell) deleteStudent(ctx context.Context) error {
	id, err := sh.prompt(ctx, "Student ID to delete: ")
	if err != nil {
		return err
	}

	err = sh.svc.DeleteStudent(ctx, id)
	if errors.Is(err, service.ErrStudentNotFound) {
		fmt.Fprintln(sh.out, "No student found with that ID.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Student record deleted.")
	return nil
}

func (sh *Shell) search(ctx context.Context) error {
	fmt.Fprintln(sh.out, "Search by:")
	fmt.Fprintln(sh.out, "1. Student name")
	fmt.Fprintln(sh.out, "2. Class")
	reply, err := sh.prompt(ctx, "Option: ")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(reply) {
	case "1":
		name, err := sh.prompt(ctx, "Student name: ")
		if err != nil {
			return err
		}
		matches := sh.svc.SearchByName(ctx, name)
		if len(matches) == 0 {
			fmt.Fprintln(sh.out, "No student found with that name.")
			return nil
		}
		for _, s := range matches {
			writeStudent(sh.out, s)
		}
	case "2":
		className, err := sh.prompt(ctx, "Class: ")
		if err != nil {
			return err
		}
		matches := sh.svc.SearchByClass(ctx, className)
		if len(matches) == 0 {
			fmt.Fprintln(sh.out, "No students found in that class.")
			return nil
		}
		fmt.Fprintln(sh.out, "Students in the class by total score:")
		for _, s := range matches {
			writeStudent(sh.out, s)
		}
	default:
		fmt.Fprintln(sh.out, "Invalid option.")
	}
	return nil
}

func (sh *Shell) statistics(ctx context.Context) error {
	if sh.svc.Count() == 0 {
		fmt.Fprintln(sh.out, "No student records yet.")
		return nil
	}

	for {
		fmt.Fprintln(sh.out, "Statistics:")
		fmt.Fprintln(sh.out, "a. Average of each student, highest first")
		fmt.Fprintln(sh.out, "b. Average total of each class, highest first")
		fmt.Fprintln(sh.out, "c. Top and bottom three of each class by total")
		fmt.Fprintln(sh.out, "d. Scholarship recipients")
		reply, err := sh.prompt(ctx, "Option (a/b/c/d): ")
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(reply)) {
		case "a":
			writeStudentAverages(sh.out, sh.svc.StudentAverages(ctx))
		case "b":
			writeClassAverages(sh.out, sh.svc.ClassAverages(ctx))
		case "c":
			writeExtremes(sh.out, sh.svc.TopAndBottom(ctx))
		case "d":
			writeScholars(sh.out, sh.svc.Scholars(ctx))
		default:
			fmt.Fprintln(sh.out, "Invalid option, please try again.")
			continue
		}
		return nil
	}
}
