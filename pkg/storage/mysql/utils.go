package mysql

import (
	"strings"
)

// buildWhereClause builds a WHERE clause from scope and status filters.
func buildWhereClause(workspaceID, agentID string, statuses []string) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if workspaceID != "" {
		conditions = append(conditions, "workspace_id = ?")
		args = append(args, workspaceID)
	}

	if agentID != "" {
		conditions = append(conditions, "agent_id = ?")
		args = append(args, agentID)
	}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
