package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/ranking"
	"github.com/mmynk/roster/internal/storage/sqlite"
	"github.com/mmynk/roster/internal/storage/textfile"
)

// failingStore is a storage.Store whose Save always fails.
type failingStore struct{}

func (failingStore) Load(ctx context.Context) ([]*models.Student, error) { return nil, nil }
func (failingStore) Save(ctx context.Context, students []*models.Student) error {
	return errors.New("disk full")
}
func (failingStore) Close() error { return nil }

// setupService creates a RosterService on an empty text file in a temp dir.
func setupService(t *testing.T) (*RosterService, *textfile.FileStore) {
	t.Helper()

	store := textfile.New(filepath.Join(t.TempDir(), "students.txt"))
	svc := NewRosterService(store, metrics.New())
	require.NoError(t, svc.Load(context.Background()))
	return svc, store
}

func addScenario(ctx context.Context, svc *RosterService) {
	svc.AddStudent(ctx, "1", "A", "F", "C1", [models.CourseCount]int{90, 90, 90})
	svc.AddStudent(ctx, "2", "B", "M", "C1", [models.CourseCount]int{80, 85, 83})
	svc.AddStudent(ctx, "3", "C", "F", "C2", [models.CourseCount]int{95, 95, 95})
}

func ids(students []*models.Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.ID()
	}
	return out
}

func TestScenario(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	addScenario(ctx, svc)

	classAverages := svc.ClassAverages(ctx)
	require.Len(t, classAverages, 2)
	assert.Equal(t, "C2", classAverages[0].ClassName)
	assert.Equal(t, 285, classAverages[0].Average)
	assert.Equal(t, "C1", classAverages[1].ClassName)
	assert.Equal(t, 259, classAverages[1].Average)

	assert.Equal(t, []string{"1", "3"}, ids(svc.Scholars(ctx)))

	averages := svc.StudentAverages(ctx)
	require.Len(t, averages, 3)
	assert.Equal(t, "3", averages[0].Student.ID())
	assert.Equal(t, 82, averages[2].Average)

	extremes := svc.TopAndBottom(ctx)
	require.Len(t, extremes, 2)
	assert.Equal(t, []string{"1", "2"}, ids(extremes[0].Top))
}

func TestAddStudentReportsDuplicates(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, dup := svc.AddStudent(ctx, "1", "A", "F", "C1", [models.CourseCount]int{1, 2, 3})
	assert.False(t, dup)

	student, dup := svc.AddStudent(ctx, "1", "A2", "F", "C1", [models.CourseCount]int{4, 5, 6})
	assert.True(t, dup)
	assert.Equal(t, 15, student.TotalScore())
	assert.Equal(t, 2, svc.Count())
}

func TestDeleteStudent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	addScenario(ctx, svc)

	require.NoError(t, svc.DeleteStudent(ctx, "2"))
	assert.Equal(t, []string{"1", "3"}, ids(svc.Students()))

	err := svc.DeleteStudent(ctx, "2")
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Equal(t, []string{"1", "3"}, ids(svc.Students()), "failed delete must not change the roster")
}

func TestListByCourse(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	addScenario(ctx, svc)

	students, err := svc.ListByCourse(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, ids(students))

	_, err = svc.ListByCourse(ctx, 4)
	assert.ErrorIs(t, err, ranking.ErrInvalidCourse)
}

func TestSearch(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	addScenario(ctx, svc)
	svc.AddStudent(ctx, "0", "A", "M", "C1", [models.CourseCount]int{100, 100, 100})

	assert.Equal(t, []string{"1", "0"}, ids(svc.SearchByName(ctx, "A")), "name search keeps roster order")
	assert.Equal(t, []string{"0", "1", "2"}, ids(svc.SearchByClass(ctx, "C1")), "class search ranks by total")
	assert.Empty(t, svc.SearchByName(ctx, "Nobody"))
	assert.Empty(t, svc.SearchByClass(ctx, "C9"))
}

func TestSaveAndReload(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	addScenario(ctx, svc)
	require.NoError(t, svc.DeleteStudent(ctx, "1"))
	require.NoError(t, svc.Save(ctx))

	reloaded := NewRosterService(store, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []string{"2", "3"}, ids(reloaded.Students()))
}

func TestSaveAndReloadSQLite(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	svc := NewRosterService(store, nil)
	require.NoError(t, svc.Load(ctx))
	addScenario(ctx, svc)
	require.NoError(t, svc.Save(ctx))

	reloaded := NewRosterService(store, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []string{"1", "2", "3"}, ids(reloaded.Students()))
	assert.Equal(t, []string{"1", "3"}, ids(reloaded.Scholars(ctx)))
}

func TestSaveFailureIsReported(t *testing.T) {
	svc := NewRosterService(failingStore{}, metrics.New())
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	err := svc.Save(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,A,F,C1,90,90\n"), 0644))

	svc := NewRosterService(textfile.New(path), nil)
	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, textfile.ErrMalformedLine)
	assert.Zero(t, svc.Count())
}
