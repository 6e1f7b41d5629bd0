package enums

import "fmt"

// ClubRole represents a club-level permissions role.
//
// Host authority is derived from Club.LeaderID, never from a membership row;
// ClubRoleHost exists for display paths that surface the leader alongside
// regular members.
type ClubRole string

const (
	ClubRoleParticipant ClubRole = "participant"
	ClubRoleManager     ClubRole = "manager"
	ClubRoleHost        ClubRole = "host"
)

var validClubRoles = []ClubRole{
	ClubRoleParticipant,
	ClubRoleManager,
	ClubRoleHost,
}

// String implements fmt.Stringer.
func (r ClubRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ClubRole.
func (r ClubRole) IsValid() bool {
	for _, candidate := range validClubRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseClubRole converts raw input into a ClubRole.
func ParseClubRole(value string) (ClubRole, error) {
	for _, candidate := range validClubRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid club role %q", value)
}
