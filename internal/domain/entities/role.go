package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "Regular User"
)

// Permission representa uma permissão específica
type Permission string

const (
	// Conteúdo próprio
	PermissionPostWrite    Permission = "posts.write"
	PermissionCommentWrite Permission = "comments.write"
	PermissionReact        Permission = "posts.react"

	// Moderação
	PermissionPostModerate    Permission = "posts.moderate"
	PermissionCommentModerate Permission = "comments.moderate"
	PermissionCategoryManage  Permission = "categories.manage"
	PermissionUserManage      Permission = "users.manage"
)

// RolePermissions mapeia roles para suas permissões
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionPostWrite,
		PermissionCommentWrite,
		PermissionReact,
		PermissionPostModerate,
		PermissionCommentModerate,
		PermissionCategoryManage,
		PermissionUserManage,
	},
	RoleUser: {
		PermissionPostWrite,
		PermissionCommentWrite,
		PermissionReact,
	},
}

// IsValid verifica se o role é conhecido
func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	permissions := RolePermissions[r]
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
