// Package policy holds the pure access-control decisions. Each policy is a
// function of the requester and the attempted action only; no I/O happens
// here, handlers load whatever state the checks need up front.
package policy

import "github.com/yamdb/yamdb-api/internal/domain/entity"

// Requester describes the caller as seen by a policy. A zero Requester is an
// anonymous caller.
type Requester struct {
	Authenticated bool
	Role          entity.Role
	IsStaff       bool
	IsSuperuser   bool
}

// Action describes what the caller is attempting. Safe corresponds to
// GET/HEAD/OPTIONS. Owner is true when the target resource belongs to the
// requester; it is ignored by policies that do not check ownership.
type Action struct {
	Safe  bool
	Owner bool
}

// Decision is an allow/deny verdict plus a human-readable denial reason.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Policy is one of the closed set of authorization rules.
type Policy interface {
	Check(r Requester, a Action) Decision
}

func (r Requester) isAdmin() bool {
	return r.Role == entity.RoleAdmin || r.IsStaff
}

// AdminOnly gates account management: authenticated admins or superusers.
type AdminOnly struct{}

func (AdminOnly) Check(r Requester, _ Action) Decision {
	if !r.Authenticated {
		return deny("authentication required")
	}
	if r.isAdmin() || r.IsSuperuser {
		return allow()
	}
	return deny("administrator access required")
}

// AdminOrReadOnly gates catalog resources: anyone may read, only admins or
// superusers may mutate.
type AdminOrReadOnly struct{}

func (AdminOrReadOnly) Check(r Requester, a Action) Decision {
	if a.Safe {
		return allow()
	}
	return AdminOnly{}.Check(r, a)
}

// OwnerModeratorOrReadOnly gates reviews and comments: anyone may read;
// mutations require the author, a moderator, or an admin.
type OwnerModeratorOrReadOnly struct{}

func (OwnerModeratorOrReadOnly) Check(r Requester, a Action) Decision {
	if a.Safe {
		return allow()
	}
	if !r.Authenticated {
		return deny("authentication required")
	}
	if r.isAdmin() || r.Role == entity.RoleModerator || a.Owner {
		return allow()
	}
	return deny("only the author, a moderator or an administrator may modify this")
}
