package auth

import "github.com/moringa/darasa-api/model"

// Role is the user_type tag carried in every token
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Principal is the authenticated caller: exactly one of Student or Admin is
// set, matching Role.
type Principal struct {
	Role    Role
	Student *model.Student
	Admin   *model.Admin
}

func StudentPrincipal(s *model.Student) *Principal {
	return &Principal{Role: RoleStudent, Student: s}
}

func AdminPrincipal(a *model.Admin) *Principal {
	return &Principal{Role: RoleAdmin, Admin: a}
}

func (p *Principal) IsStudent() bool { return p != nil && p.Role == RoleStudent && p.Student != nil }
func (p *Principal) IsAdmin() bool   { return p != nil && p.Role == RoleAdmin && p.Admin != nil }

func (p *Principal) ID() uint {
	switch {
	case p.IsStudent():
		return p.Student.ID
	case p.IsAdmin():
		return p.Admin.ID
	}
	return 0
}

func (p *Principal) Email() string {
	switch {
	case p.IsStudent():
		return p.Student.Email
	case p.IsAdmin():
		return p.Admin.Email
	}
	return ""
}

// DisplayName is the student's username or the admin's email
func (p *Principal) DisplayName() string {
	if p.IsStudent() {
		return p.Student.Username
	}
	return p.Email()
}
