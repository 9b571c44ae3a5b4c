package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// IsValid verifica se o role é um dos valores conhecidos
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}

// In verifica se o role está contido no conjunto informado
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}
