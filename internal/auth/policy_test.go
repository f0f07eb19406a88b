package auth

import "testing"

func TestPolicyDecide(t *testing.T) {
	policy := NewPolicy(
		Rule{Method: "GET", Pattern: "/health/*", Access: Public()},
		Rule{Method: "POST", Pattern: "/auth/login", Access: Public()},
		Rule{Method: "DELETE", Pattern: "/assets/*", Access: RequireRole(RoleAdmin)},
		Rule{Method: "*", Pattern: "/assets/*", Access: AnyAuthenticated()},
	)

	user := &Identity{Subject: "alice", Roles: []Role{RoleUser}}
	admin := &Identity{Subject: "root", Roles: []Role{RoleAdmin}}

	tests := []struct {
		name     string
		method   string
		path     string
		identity *Identity
		want     Decision
	}{
		{name: "public route anonymous", method: "GET", path: "/health/live", identity: nil, want: DecisionAllow},
		{name: "public route authenticated", method: "GET", path: "/health/ready", identity: user, want: DecisionAllow},
		{name: "public rule method mismatch", method: "POST", path: "/health/live", identity: nil, want: DecisionUnauthenticated},
		{name: "exact pattern match", method: "POST", path: "/auth/login", identity: nil, want: DecisionAllow},
		{name: "exact pattern no subpath", method: "POST", path: "/auth/login/extra", identity: nil, want: DecisionUnauthenticated},
		{name: "read allowed for user", method: "GET", path: "/assets/all", identity: user, want: DecisionAllow},
		{name: "read rejected anonymous", method: "GET", path: "/assets/all", identity: nil, want: DecisionUnauthenticated},
		{name: "delete rejected for user", method: "DELETE", path: "/assets/serial/sn-1", identity: user, want: DecisionForbidden},
		{name: "delete allowed for admin", method: "DELETE", path: "/assets/serial/sn-1", identity: admin, want: DecisionAllow},
		{name: "delete rejected anonymous", method: "DELETE", path: "/assets/serial/sn-1", identity: nil, want: DecisionUnauthenticated},
		{name: "unmatched route needs identity", method: "GET", path: "/somewhere", identity: nil, want: DecisionUnauthenticated},
		{name: "unmatched route any identity", method: "GET", path: "/somewhere", identity: user, want: DecisionAllow},
		{name: "prefix matches bare prefix", method: "GET", path: "/assets", identity: nil, want: DecisionUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Decide(tt.method, tt.path, tt.identity)
			if got != tt.want {
				t.Errorf("Decide(%s %s) = %v, want %v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}

func TestPolicyDecideIsDeterministic(t *testing.T) {
	policy := NewPolicy(
		Rule{Method: "*", Pattern: "/things/*", Access: RequireRole(RoleAdmin)},
		Rule{Method: "*", Pattern: "/things/*", Access: Public()},
	)

	user := &Identity{Subject: "alice", Roles: []Role{RoleUser}}
	first := policy.Decide("GET", "/things/1", user)
	for i := 0; i < 100; i++ {
		if got := policy.Decide("GET", "/things/1", user); got != first {
			t.Fatalf("Decide() = %v on iteration %d, want stable %v", got, i, first)
		}
	}
	if first != DecisionForbidden {
		t.Errorf("first matching rule should win, got %v", first)
	}
}
