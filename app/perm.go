package app

import (
	"net/http"

	"asset_circulation_engine/models"

	"github.com/gin-gonic/gin"
)

// Static role -> module -> actions table. The circulation engines never
// inspect roles themselves; they sit behind this check.
var rolePermissions = map[string]map[string][]string{
	models.RoleAdmin: {
		"assets":      {"create", "read", "update", "delete"},
		"assignments": {"create", "read", "close", "delete"},
		"circulation": {"borrow", "return", "sign", "reverse"},
		"audit":       {"read"},
		"users":       {"read", "manage"},
	},
	models.RoleManager: {
		"assets":      {"create", "read", "update"},
		"assignments": {"create", "read", "close", "delete"},
		"circulation": {"borrow", "return", "sign", "reverse"},
		"audit":       {"read"},
	},
	models.RoleStaff: {
		"assets":      {"read"},
		"assignments": {"create", "read", "close"},
		"circulation": {"borrow", "return", "sign"},
	},
	models.RoleBorrower: {
		"assets":      {"read"},
		"assignments": {"read"},
	},
}

func HasPermission(role, module, action string) bool {
	actions, ok := rolePermissions[role][module]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// PermissionRequired guards privileged routes. Runs after AuthRequired.
func PermissionRequired(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("role")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		role, _ := v.(string)
		if !HasPermission(role, module, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
