package enums

import "fmt"

// MembershipState captures the lifecycle of a club membership row.
type MembershipState string

const (
	MembershipStateInvited   MembershipState = "invited"
	MembershipStateApplying  MembershipState = "applying"
	MembershipStateJoining   MembershipState = "joining"
	MembershipStateWithdrawn MembershipState = "withdrawn"
)

var validMembershipStates = []MembershipState{
	MembershipStateInvited,
	MembershipStateApplying,
	MembershipStateJoining,
	MembershipStateWithdrawn,
}

// String implements fmt.Stringer.
func (m MembershipState) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipState.
func (m MembershipState) IsValid() bool {
	for _, candidate := range validMembershipStates {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsActiveRelationship reports whether the state still ties the member to the
// club. Withdrawn rows are kept for history but count as "no relationship"
// when checking duplicates.
func (m MembershipState) IsActiveRelationship() bool {
	return m == MembershipStateInvited || m == MembershipStateApplying || m == MembershipStateJoining
}

// ParseMembershipState converts raw input into a MembershipState.
func ParseMembershipState(value string) (MembershipState, error) {
	for _, candidate := range validMembershipStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership state %q", value)
}
