package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"report:view-own",
		"catalog:view",
		"file:view",
	},
	"teacher": {
		"report:view-own",
		"report:view-any",
		"catalog:view",
		"file:view",
	},
	"admin": {
		"*", // everything
	},
}
