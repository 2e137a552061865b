package models

// CourseCount is the number of courses every student is scored on.
const CourseCount = 3

// Courses lists the course names in score order.
var Courses = [CourseCount]string{
	"Data Structures",
	"Linux Programming",
	"Algorithm Design and Analysis",
}

// Student represents one roster record.
type Student struct {
	id        string
	name      string
	gender    string
	className string
	scores    [CourseCount]int

	// total is always the sum of scores.
	total int
}

// NewStudent builds a Student and computes its total score.
func NewStudent(id, name, gender, className string, scores [CourseCount]int) *Student {
	total := 0
	for _, score := range scores {
		total += score
	}
	return &Student{
		id:        id,
		name:      name,
		gender:    gender,
		className: className,
		scores:    scores,
		total:     total,
	}
}

// ID returns the student identifier. Identifiers are not guaranteed unique.
func (s *Student) ID() string { return s.id }

// Name returns the student name.
func (s *Student) Name() string { return s.name }

// Gender returns the student gender as entered.
func (s *Student) Gender() string { return s.gender }

// ClassName returns the class the student belongs to.
func (s *Student) ClassName() string { return s.className }

// Scores returns a copy of the course scores.
func (s *Student) Scores() [CourseCount]int { return s.scores }

// Score returns the score for a 0-based course index.
// It panics if course is out of range, like any array access.
func (s *Student) Score(course int) int { return s.scores[course] }

// TotalScore returns the sum of all course scores.
func (s *Student) TotalScore() int { return s.total }

// Average returns the total divided by CourseCount, truncated toward zero.
func (s *Student) Average() int { return s.total / CourseCount }
