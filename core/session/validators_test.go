package session

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/matedu/matedu-go/core"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *core.ValidationError", err)
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, fld := range vErr.Fields {
		flds[fld.Field] = fld.Error
	}
	return flds
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		wantFlds  []string
		wantEmail string
	}{
		{
			name:      "valid",
			creds:     Credentials{Email: "  A@B.com ", Password: "x"},
			wantEmail: "a@b.com", // cleaned and lowered
		},
		{
			name:     "missing everything",
			creds:    Credentials{},
			wantFlds: []string{"email", "password"},
		},
		{
			name:     "malformed email",
			creds:    Credentials{Email: "nope", Password: "x"},
			wantFlds: []string{"email"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if len(tt.wantFlds) == 0 {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				if tt.creds.Email != tt.wantEmail {
					t.Errorf("Email = %q, want %q", tt.creds.Email, tt.wantEmail)
				}
				return
			}
			flds := fieldErrors(t, err)
			for _, fld := range tt.wantFlds {
				if _, ok := flds[fld]; !ok {
					t.Errorf("missing error for field %q in %v", fld, flds)
				}
			}
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	valid := Registration{
		Nombre:   "Juan",
		Apellido: "Perez",
		Email:    "juan@estudiante.com",
		Password: "Unguessable-42!",
		Role:     RoleStudent,
	}

	tests := []struct {
		name     string
		mutate   func(*Registration)
		wantFlds []string
	}{
		{name: "valid student", mutate: func(r *Registration) {}},
		{name: "valid teacher", mutate: func(r *Registration) { r.Role = RoleTeacher }},
		{name: "missing nombre", mutate: func(r *Registration) { r.Nombre = "" }, wantFlds: []string{"nombre"}},
		{name: "missing apellido", mutate: func(r *Registration) { r.Apellido = "" }, wantFlds: []string{"apellido"}},
		{name: "malformed email", mutate: func(r *Registration) { r.Email = "not-an-email" }, wantFlds: []string{"email"}},
		{
			name:     "admins cannot self-register",
			mutate:   func(r *Registration) { r.Role = RoleAdmin },
			wantFlds: []string{"tipo_usuario"},
		},
		{name: "unknown role", mutate: func(r *Registration) { r.Role = "alumno" }, wantFlds: []string{"tipo_usuario"}},
		{name: "password too short", mutate: func(r *Registration) { r.Password = "ab1!" }, wantFlds: []string{"password"}},
		{name: "password has whitespace", mutate: func(r *Registration) { r.Password = "open sesame1" }, wantFlds: []string{"password"}},
		{name: "password all numeric", mutate: func(r *Registration) { r.Password = "123456789" }, wantFlds: []string{"password"}},
		{
			name:     "password lacking complexity",
			mutate:   func(r *Registration) { r.Password = "alllowercase" },
			wantFlds: []string{"password"},
		},
		{
			name:     "password too similar to email",
			mutate:   func(r *Registration) { r.Password = "Juan@estudiante.com1" },
			wantFlds: []string{"password"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := valid
			tt.mutate(&reg)
			err := reg.Validate()
			if len(tt.wantFlds) == 0 {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				return
			}
			flds := fieldErrors(t, err)
			for _, fld := range tt.wantFlds {
				if _, ok := flds[fld]; !ok {
					t.Errorf("missing error for field %q in %v", fld, flds)
				}
			}
		})
	}
}
