package policy

import (
	"testing"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
)

func anon() Requester { return Requester{} }

func as(role entity.Role) Requester {
	return Requester{Authenticated: true, Role: role}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name      string
		requester Requester
		want      bool
	}{
		{"anonymous", anon(), false},
		{"plain user", as(entity.RoleUser), false},
		{"moderator", as(entity.RoleModerator), false},
		{"admin role", as(entity.RoleAdmin), true},
		{"staff flag", Requester{Authenticated: true, Role: entity.RoleUser, IsStaff: true}, true},
		{"superuser flag", Requester{Authenticated: true, Role: entity.RoleUser, IsSuperuser: true}, true},
		{"unauthenticated staff", Requester{IsStaff: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdminOnly{}.Check(tt.requester, Action{})
			if got.Allowed != tt.want {
				t.Errorf("AdminOnly(%+v) = %v, want %v", tt.requester, got.Allowed, tt.want)
			}
			if !got.Allowed && got.Reason == "" {
				t.Error("denial carries no reason")
			}
		})
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name      string
		requester Requester
		safe      bool
		want      bool
	}{
		{"anonymous read", anon(), true, true},
		{"anonymous write", anon(), false, false},
		{"user read", as(entity.RoleUser), true, true},
		{"user write", as(entity.RoleUser), false, false},
		{"moderator write", as(entity.RoleModerator), false, false},
		{"admin write", as(entity.RoleAdmin), false, true},
		{"superuser write", Requester{Authenticated: true, Role: entity.RoleUser, IsSuperuser: true}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdminOrReadOnly{}.Check(tt.requester, Action{Safe: tt.safe})
			if got.Allowed != tt.want {
				t.Errorf("AdminOrReadOnly(%+v, safe=%v) = %v, want %v", tt.requester, tt.safe, got.Allowed, tt.want)
			}
		})
	}
}

func TestOwnerModeratorOrReadOnly(t *testing.T) {
	// Full (role, owner, safe) table.
	tests := []struct {
		name      string
		requester Requester
		safe      bool
		owner     bool
		want      bool
	}{
		{"anonymous read", anon(), true, false, true},
		{"anonymous write", anon(), false, false, false},
		{"user read foreign", as(entity.RoleUser), true, false, true},
		{"user write foreign", as(entity.RoleUser), false, false, false},
		{"user write own", as(entity.RoleUser), false, true, true},
		{"moderator write foreign", as(entity.RoleModerator), false, false, true},
		{"moderator write own", as(entity.RoleModerator), false, true, true},
		{"admin write foreign", as(entity.RoleAdmin), false, false, true},
		{"staff write foreign", Requester{Authenticated: true, Role: entity.RoleUser, IsStaff: true}, false, false, true},
		{"admin read", as(entity.RoleAdmin), true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OwnerModeratorOrReadOnly{}.Check(tt.requester, Action{Safe: tt.safe, Owner: tt.owner})
			if got.Allowed != tt.want {
				t.Errorf("OwnerModeratorOrReadOnly(%+v, safe=%v, owner=%v) = %v, want %v",
					tt.requester, tt.safe, tt.owner, got.Allowed, tt.want)
			}
		})
	}
}
