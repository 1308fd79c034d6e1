package permission

import "fmt"

// DefaultPolicies grant the staff role its routes. Owner routes need only a
// valid identity and are checked per ticket by the use cases.
var DefaultPolicies = [][]string{
	{"admin", "/admin/*", "*"},
	{"admin", "/tickets/mark-read", "POST"},
}

// InitTicketPermissions adds the default policies. casbin ignores rules that already exist.
func InitTicketPermissions(e *Enforcer) error {
	for _, p := range DefaultPolicies {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}

	e.logger.Infow("ticket permissions initialized", "policies", len(DefaultPolicies))
	return nil
}
