// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import "gitlab.com/tokenmesh/tokenmesh/pkg/errors"

// Role is a capability tag. Roles are additive capabilities, not a hierarchy.
type Role uint64

const (
	// RoleAdmin grants and revokes the other roles.
	RoleAdmin Role = 1

	// RoleEmergencyAdmin controls the pause state.
	RoleEmergencyAdmin Role = 2

	// RoleMinter may mint and burn, including the cross-chain variants.
	RoleMinter Role = 3

	// RoleComplianceAdmin freezes and unfreezes accounts.
	RoleComplianceAdmin Role = 4
)

// Roles lists every role.
var Roles = []Role{RoleAdmin, RoleEmergencyAdmin, RoleMinter, RoleComplianceAdmin}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEmergencyAdmin:
		return "emergencyAdmin"
	case RoleMinter:
		return "minter"
	case RoleComplianceAdmin:
		return "complianceAdmin"
	default:
		return "unknown"
	}
}

// RoleByName returns the role with the given name.
func RoleByName(name string) (Role, error) {
	for _, r := range Roles {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, errors.BadRequest.WithFormat("%q is not a role", name)
}
