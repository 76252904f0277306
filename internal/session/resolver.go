package session

import (
	"context"
	"log"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// RoleSource is the single-row role lookup the resolver consumes.
// Implementations must return domain.ErrRoleNotFound when no row exists.
type RoleSource interface {
	FindByUserID(ctx context.Context, userID string) (domain.Role, error)
}

// ProfileSource is the single-row profile lookup the resolver consumes.
type ProfileSource interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// Resolver fetches the role and profile for an identity. Lookups never
// fail upward: a missing row, a duplicate, or a transient backend error
// all resolve to unknown/absent and are logged for diagnostics.
type Resolver struct {
	roles    RoleSource
	profiles ProfileSource
	logger   *log.Logger
}

// NewResolver creates a resolver over the two lookup sources.
func NewResolver(roles RoleSource, profiles ProfileSource, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{roles: roles, profiles: profiles, logger: logger}
}

// ResolveRole looks up the role assigned to the identity.
func (r *Resolver) ResolveRole(ctx context.Context, userID string) domain.Role {
	role, err := r.roles.FindByUserID(ctx, userID)
	if err != nil {
		r.logger.Printf("session: error fetching role for %s: %v", userID, err)
		return domain.RoleUnknown
	}
	return role
}

// ResolveProfile looks up the profile of the identity.
func (r *Resolver) ResolveProfile(ctx context.Context, userID string) *domain.Profile {
	profile, err := r.profiles.FindByUserID(ctx, userID)
	if err != nil {
		r.logger.Printf("session: error fetching profile for %s: %v", userID, err)
		return nil
	}
	return profile
}

// Resolve issues both lookups concurrently and merges the results once
// both settle. The two reads are independent and idempotent; no ordering
// between them is assumed.
func (r *Resolver) Resolve(ctx context.Context, userID string) (domain.Role, *domain.Profile) {
	roleCh := make(chan domain.Role, 1)
	profileCh := make(chan *domain.Profile, 1)

	go func() { roleCh <- r.ResolveRole(ctx, userID) }()
	go func() { profileCh <- r.ResolveProfile(ctx, userID) }()

	return <-roleCh, <-profileCh
}
