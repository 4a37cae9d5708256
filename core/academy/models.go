package academy

import (
	"github.com/volatiletech/null/v8"
)

// Difficulty levels as the backend spells them.
const (
	LevelBasic        = "basico"
	LevelIntermediate = "intermedio"
	LevelAdvanced     = "avanzado"
)

type MathArea struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Icono       string `json:"icono"`
	Color       string `json:"color"`
	Orden       int    `json:"orden"`
}

type MathAreaRef struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
}

type TeacherRef struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

type Course struct {
	ID               int          `json:"id"`
	Titulo           string       `json:"titulo"`
	Descripcion      string       `json:"descripcion"`
	Objetivos        string       `json:"objetivos,omitempty"`
	NivelDificultad  string       `json:"nivel_dificultad"`
	DuracionEstimada int          `json:"duracion_estimada"`
	ImagenPortada    null.String  `json:"imagen_portada"`
	Activo           bool         `json:"activo"`
	FechaCreacion    string       `json:"fecha_creacion"`
	AreaMatematicaID int          `json:"area_matematica_id"`
	ProfesorID       int          `json:"profesor_id"`
	AreaMatematica   *MathAreaRef `json:"area_matematica,omitempty"`
	Profesor         *TeacherRef  `json:"profesor,omitempty"`

	// only present on enrolled-courses listings
	ProgresoPorcentaje null.Float64 `json:"progreso_porcentaje,omitempty"`
	FechaInscripcion   null.String  `json:"fecha_inscripcion,omitempty"`
}

// CourseFilter narrows a course listing. Zero-valued fields are left off the
// query string except Skip/Limit, which the backend expects on every call.
type CourseFilter struct {
	AreaID int    `url:"area_matematica_id,omitempty"`
	Level  string `url:"nivel_dificultad,omitempty"`
	Skip   int    `url:"skip"`
	Limit  int    `url:"limit"`
}

// Lesson progress states.
const (
	ProgressNotStarted = "no_iniciado"
	ProgressInProgress = "en_progreso"
	ProgressCompleted  = "completado"
)

type Lesson struct {
	ID               int    `json:"id"`
	Titulo           string `json:"titulo"`
	Descripcion      string `json:"descripcion"`
	Contenido        string `json:"contenido"`
	Orden            int    `json:"orden"`
	DuracionEstimada int    `json:"duracion_estimada"`
	CursoID          int    `json:"curso_id"`
	EstadoProgreso   string `json:"estado_progreso,omitempty"`
}

// Exercise types.
const (
	ExerciseOpenEnded      = "desarrollo"
	ExerciseMultipleChoice = "opcion_multiple"
)

type Exercise struct {
	ID                int      `json:"id"`
	Enunciado         string   `json:"enunciado"`
	TipoEjercicio     string   `json:"tipo_ejercicio"`
	Opciones          []string `json:"opciones"`
	RespuestaCorrecta string   `json:"respuesta_correcta"`
	Explicacion       string   `json:"explicacion"`
	Puntos            int      `json:"puntos"`
	LeccionID         int      `json:"leccion_id"`
}

type UserStats struct {
	CursosCompletados   int `json:"cursos_completados"`
	CursosEnProgreso    int `json:"cursos_en_progreso"`
	EjerciciosResueltos int `json:"ejercicios_resueltos"`
	EjerciciosCorrectos int `json:"ejercicios_correctos"`
	PuntosTotales       int `json:"puntos_totales"`
	NivelActual         int `json:"nivel_actual"`
	LogrosObtenidos     int `json:"logros_obtenidos"`
}

type Achievement struct {
	ID             int    `json:"id"`
	Nombre         string `json:"nombre"`
	Descripcion    string `json:"descripcion"`
	Icono          string `json:"icono"`
	Puntos         int    `json:"puntos"`
	FechaObtencion string `json:"fecha_obtencion"`
}

type UserProgress struct {
	CursoID              int     `json:"curso_id"`
	UsuarioID            int     `json:"usuario_id"`
	ProgresoPorcentaje   float64 `json:"progreso_porcentaje"`
	LeccionesCompletadas int     `json:"lecciones_completadas"`
	LeccionesTotales     int     `json:"lecciones_totales"`
	EjerciciosResueltos  int     `json:"ejercicios_resueltos"`
	EjerciciosCorrectos  int     `json:"ejercicios_correctos"`
	PuntosGanados        int     `json:"puntos_ganados"`
	FechaInicio          string  `json:"fecha_inicio"`
	FechaUltimaActividad string  `json:"fecha_ultima_actividad"`
}

type Enrollment struct {
	ID                 int         `json:"id"`
	UsuarioID          int         `json:"usuario_id"`
	CursoID            int         `json:"curso_id"`
	FechaInscripcion   string      `json:"fecha_inscripcion"`
	FechaFinalizacion  null.String `json:"fecha_finalizacion"`
	ProgresoPorcentaje float64     `json:"progreso_porcentaje"`
}

type EnrollmentResult struct {
	Message     string     `json:"message"`
	Inscripcion Enrollment `json:"inscripcion"`
}

type LessonProgress struct {
	ID                int         `json:"id"`
	UsuarioID         int         `json:"usuario_id"`
	LeccionID         int         `json:"leccion_id"`
	FechaInicio       string      `json:"fecha_inicio"`
	FechaFinalizacion null.String `json:"fecha_finalizacion"`
	Completado        bool        `json:"completado"`
}

type LessonResult struct {
	Message       string          `json:"message"`
	PuntosGanados null.Int        `json:"puntos_ganados,omitempty"`
	NuevoNivel    null.Int        `json:"nuevo_nivel,omitempty"`
	Progreso      *LessonProgress `json:"progreso,omitempty"`
}

type ExerciseResult struct {
	Correcto      bool   `json:"correcto"`
	PuntosGanados int    `json:"puntos_ganados"`
	Explicacion   string `json:"explicacion"`
	PuntosTotales int    `json:"puntos_totales"`
}
