package auth

import "sage-portal/entities"

const (
	PermReadDashboard       = "read_dashboard"
	PermWriteDashboard      = "write_dashboard"
	PermDeleteDashboard     = "delete_dashboard"
	PermManageClients       = "manage_clients"
	PermManageServices      = "manage_services"
	PermManageBlog          = "manage_blog"
	PermViewAnalytics       = "view_analytics"
	PermManageSettings      = "manage_settings"
	PermManageUsers         = "manage_users"
	PermEditProfile         = "edit_profile"
	PermReadDocuments       = "read_documents"
	PermDownloadDocuments   = "download_documents"
	PermReadServices        = "read_services"
	PermCreateSupportTicket = "create_support_ticket"
)

var rolePermissions = map[string][]string{
	entities.RoleAdmin: {
		PermReadDashboard,
		PermWriteDashboard,
		PermDeleteDashboard,
		PermManageClients,
		PermManageServices,
		PermManageBlog,
		PermViewAnalytics,
		PermManageSettings,
		PermManageUsers,
	},
	entities.RoleClient: {
		PermReadDashboard,
		PermEditProfile,
		PermReadDocuments,
		PermDownloadDocuments,
		PermReadServices,
		PermCreateSupportTicket,
	},
}

// Permissions returns a copy of the role's permission list; unknown roles get none.
func Permissions(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

func HasPermission(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
