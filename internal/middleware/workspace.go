package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const WorkspaceIDKey = "workspace_id"

// ExtractWorkspace pulls the workspace ID from the X-Workspace-ID header.
// Census and run data are scoped per workspace; there is no authentication
// beyond that.
func ExtractWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		workspaceID := c.GetHeader("X-Workspace-ID")
		if workspaceID != "" {
			c.Set(WorkspaceIDKey, workspaceID)
		}
		c.Next()
	}
}

// GetWorkspaceID retrieves the workspace ID from the context
func GetWorkspaceID(c *gin.Context) (string, bool) {
	workspaceID, exists := c.Get(WorkspaceIDKey)
	if !exists {
		return "", false
	}
	return workspaceID.(string), true
}

// RequireWorkspace rejects requests that carry no workspace ID
func RequireWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetWorkspaceID(c); !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Workspace-ID header required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
