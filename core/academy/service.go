package academy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"

	"github.com/matedu/matedu-go/core"
)

const defaultPageSize = 10

// Service wraps every data endpoint the dashboards consume. All calls go
// through the gateway, so a 401 anywhere clears the stored token as a side
// effect and the session layer observes a dead session on its next check.
type Service struct {
	gw core.Gateway
}

func NewService(gw core.Gateway) *Service {
	return &Service{gw: gw}
}

// Courses lists courses matching the filter. Limit defaults to 10.
func (svc *Service) Courses(ctx context.Context, filter CourseFilter) ([]Course, error) {
	if filter.Limit == 0 {
		filter.Limit = defaultPageSize
	}
	qs, err := query.Values(filter)
	if err != nil {
		return nil, errors.Wrap(err, "encoding course filter")
	}
	var courses []Course
	err = svc.gw.Request(ctx, http.MethodGet, "/cursos", core.RequestOptions{Query: qs}, &courses)
	return courses, err
}

func (svc *Service) Course(ctx context.Context, courseID int) (Course, error) {
	var course Course
	err := svc.gw.Request(ctx, http.MethodGet, fmt.Sprintf("/cursos/%d", courseID), core.RequestOptions{}, &course)
	return course, err
}

func (svc *Service) Enroll(ctx context.Context, courseID int) (EnrollmentResult, error) {
	var res EnrollmentResult
	err := svc.gw.Request(ctx, http.MethodPost, fmt.Sprintf("/cursos/%d/inscribirse", courseID), core.RequestOptions{}, &res)
	return res, err
}

func (svc *Service) CourseLessons(ctx context.Context, courseID int) ([]Lesson, error) {
	var lessons []Lesson
	err := svc.gw.Request(ctx, http.MethodGet, fmt.Sprintf("/cursos/%d/lecciones", courseID), core.RequestOptions{}, &lessons)
	return lessons, err
}

func (svc *Service) StartLesson(ctx context.Context, lessonID int) (LessonResult, error) {
	var res LessonResult
	err := svc.gw.Request(ctx, http.MethodPost, fmt.Sprintf("/lecciones/%d/iniciar", lessonID), core.RequestOptions{}, &res)
	return res, err
}

func (svc *Service) CompleteLesson(ctx context.Context, lessonID int) (LessonResult, error) {
	var res LessonResult
	err := svc.gw.Request(ctx, http.MethodPost, fmt.Sprintf("/lecciones/%d/completar", lessonID), core.RequestOptions{}, &res)
	return res, err
}

func (svc *Service) LessonExercises(ctx context.Context, lessonID int) ([]Exercise, error) {
	var exercises []Exercise
	err := svc.gw.Request(ctx, http.MethodGet, fmt.Sprintf("/lecciones/%d/ejercicios", lessonID), core.RequestOptions{}, &exercises)
	return exercises, err
}

// SubmitAnswer grades an exercise answer server-side.
func (svc *Service) SubmitAnswer(ctx context.Context, exerciseID int, answer string) (ExerciseResult, error) {
	body := struct {
		EjercicioID      int    `json:"ejercicio_id"`
		RespuestaUsuario string `json:"respuesta_usuario"`
	}{exerciseID, answer}

	var res ExerciseResult
	err := svc.gw.Request(ctx, http.MethodPost, fmt.Sprintf("/ejercicios/%d/responder", exerciseID), core.RequestOptions{Body: body}, &res)
	return res, err
}

func (svc *Service) MathAreas(ctx context.Context) ([]MathArea, error) {
	var areas []MathArea
	err := svc.gw.Request(ctx, http.MethodGet, "/areas-matematicas", core.RequestOptions{}, &areas)
	return areas, err
}

// UserCourses lists the courses the logged-in user is enrolled in.
func (svc *Service) UserCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := svc.gw.Request(ctx, http.MethodGet, "/usuarios/me/cursos", core.RequestOptions{}, &courses)
	return courses, err
}

func (svc *Service) UserStats(ctx context.Context, userID int) (UserStats, error) {
	var stats UserStats
	err := svc.gw.Request(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d/estadisticas", userID), core.RequestOptions{}, &stats)
	return stats, err
}

func (svc *Service) UserAchievements(ctx context.Context, userID int) ([]Achievement, error) {
	var achievements []Achievement
	err := svc.gw.Request(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d/logros", userID), core.RequestOptions{}, &achievements)
	return achievements, err
}

// CourseProgress reports the logged-in user's progress in one course.
func (svc *Service) CourseProgress(ctx context.Context, courseID int) (UserProgress, error) {
	var progress UserProgress
	err := svc.gw.Request(ctx, http.MethodGet, fmt.Sprintf("/usuarios/me/progreso/%d", courseID), core.RequestOptions{}, &progress)
	return progress, err
}
