package postgres

import (
	"fmt"
	"strings"
)

// argBuilder numbers PostgreSQL placeholders as arguments are added, so
// clauses can be assembled in any order without placeholder bookkeeping.
type argBuilder struct {
	args []interface{}
}

// add registers an argument and returns its placeholder ("$1", "$2", ...).
func (b *argBuilder) add(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// buildWhereClause builds a WHERE clause from scope and status filters.
func buildWhereClause(b *argBuilder, workspaceID, agentID string, statuses []string) string {
	conditions := []string{}

	if workspaceID != "" {
		conditions = append(conditions, "workspace_id = "+b.add(workspaceID))
	}

	if agentID != "" {
		conditions = append(conditions, "agent_id = "+b.add(agentID))
	}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = b.add(status)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(conditions) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(conditions, " AND ")
}
