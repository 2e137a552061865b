package ranking

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mmynk/roster/internal/models"
)

func newStudent(id, className string, a, b, c int) *models.Student {
	return models.NewStudent(id, "name-"+id, "F", className, [models.CourseCount]int{a, b, c})
}

func ids(students []*models.Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.ID()
	}
	return out
}

func TestSortByTotalDesc(t *testing.T) {
	tests := []struct {
		name     string
		students []*models.Student
		want     []string
	}{
		{
			name: "descending by total",
			students: []*models.Student{
				newStudent("1", "C1", 70, 70, 70),
				newStudent("2", "C1", 90, 90, 90),
				newStudent("3", "C1", 80, 80, 80),
			},
			want: []string{"2", "3", "1"},
		},
		{
			name: "ties broken by id ascending",
			students: []*models.Student{
				newStudent("b", "C1", 90, 90, 90),
				newStudent("c", "C1", 100, 80, 90),
				newStudent("a", "C1", 90, 100, 80),
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "id comparison is lexicographic",
			students: []*models.Student{
				newStudent("10", "C1", 50, 50, 50),
				newStudent("9", "C1", 50, 50, 50),
			},
			want: []string{"10", "9"},
		},
		{
			name:     "empty input",
			students: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(SortByTotalDesc(tt.students))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortByTotalDesc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByTotalDescDoesNotMutateInput(t *testing.T) {
	students := []*models.Student{
		newStudent("1", "C1", 10, 10, 10),
		newStudent("2", "C1", 90, 90, 90),
	}

	SortByTotalDesc(students)

	if got := ids(students); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("input reordered to %v", got)
	}
}

func TestSortByCourseDesc(t *testing.T) {
	students := []*models.Student{
		newStudent("1", "C1", 60, 95, 70),
		newStudent("2", "C1", 80, 95, 60),
		newStudent("3", "C1", 70, 85, 90),
		newStudent("4", "C1", 80, 75, 60),
	}

	tests := []struct {
		name    string
		course  int
		want    []string
		wantErr bool
	}{
		{name: "course 1 keeps tie order", course: 1, want: []string{"2", "4", "3", "1"}},
		{name: "course 2 keeps tie order", course: 2, want: []string{"1", "2", "3", "4"}},
		{name: "course 3", course: 3, want: []string{"3", "1", "2", "4"}},
		{name: "course 0 rejected", course: 0, wantErr: true},
		{name: "course 4 rejected", course: 4, wantErr: true},
		{name: "negative course rejected", course: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SortByCourseDesc(students, tt.course)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SortByCourseDesc() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCourse) {
					t.Errorf("error = %v, want ErrInvalidCourse", err)
				}
				if got != nil {
					t.Errorf("expected no result on error, got %v", ids(got))
				}
				return
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("SortByCourseDesc(%d) = %v, want %v", tt.course, ids(got), tt.want)
			}
		})
	}
}

func TestSortByAverageDesc(t *testing.T) {
	// Totals 271 and 270 both truncate to an average of 90, so input order holds.
	students := []*models.Student{
		newStudent("1", "C1", 90, 90, 90),
		newStudent("2", "C1", 80, 80, 80),
		newStudent("3", "C1", 91, 90, 90),
		newStudent("4", "C2", 99, 99, 99),
	}

	got := ids(SortByAverageDesc(students))
	want := []string{"4", "1", "3", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByAverageDesc() = %v, want %v", got, want)
	}
}

func TestGroupByClass(t *testing.T) {
	students := []*models.Student{
		newStudent("1", "C2", 1, 1, 1),
		newStudent("2", "C1", 1, 1, 1),
		newStudent("3", "C2", 1, 1, 1),
		newStudent("4", "C3", 1, 1, 1),
		newStudent("5", "C1", 1, 1, 1),
	}

	groups := GroupByClass(students)

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	wantClasses := []string{"C2", "C1", "C3"}
	wantMembers := [][]string{{"1", "3"}, {"2", "5"}, {"4"}}
	for i, g := range groups {
		if g.ClassName != wantClasses[i] {
			t.Errorf("group %d class = %s, want %s", i, g.ClassName, wantClasses[i])
		}
		if !reflect.DeepEqual(ids(g.Members), wantMembers[i]) {
			t.Errorf("group %s members = %v, want %v", g.ClassName, ids(g.Members), wantMembers[i])
		}
	}

	if len(GroupByClass(nil)) != 0 {
		t.Error("expected no groups for empty input")
	}
}
