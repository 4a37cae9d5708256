package session

import (
	"github.com/volatiletech/null/v8"
)

// Roles as the backend spells them on the wire.
const (
	RoleStudent = "estudiante"
	RoleTeacher = "profesor"
	RoleAdmin   = "admin"
)

// User is the denormalized profile of whoever is logged in. Replaced
// wholesale on every successful login or restore, never partially mutated.
type User struct {
	ID            int         `json:"id"`
	Nombre        string      `json:"nombre"`
	Apellido      string      `json:"apellido"`
	Email         string      `json:"email"`
	Role          string      `json:"tipo_usuario"`
	FechaRegistro string      `json:"fecha_registro"`
	PuntosTotales int         `json:"puntos_totales"`
	NivelActual   int         `json:"nivel_actual"`
	Activo        bool        `json:"activo"`
	AvatarURL     null.String `json:"avatar_url"`
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }

func (u *User) FullName() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

// Credentials is the login input. Transient: never persisted beyond the call
// that uses it.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up input. Only students and teachers can
// self-register; admin accounts are provisioned server-side.
type Registration struct {
	Nombre          string      `json:"nombre" validate:"required"`
	Apellido        string      `json:"apellido" validate:"required"`
	Email           string      `json:"email" validate:"required,email"`
	Password        string      `json:"password" validate:"required"`
	Role            string      `json:"tipo_usuario" validate:"required,regrole"`
	FechaNacimiento null.String `json:"fecha_nacimiento,omitempty"`
}

// tokenGrant is the login endpoint's response.
type tokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
