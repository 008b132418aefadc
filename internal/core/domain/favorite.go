package domain

import "time"

// Favorite is a source/target pair a member saved for quick route lookup.
type Favorite struct {
	// ID is the unique identifier for the favorite.
	ID string

	// MemberID is the member who owns the favorite.
	MemberID string

	// SourceID is the departure station.
	SourceID StationID

	// TargetID is the arrival station.
	TargetID StationID

	// CreatedAt is when the favorite was saved.
	CreatedAt time.Time
}

// IsOwnedBy reports whether the favorite belongs to the member.
func (f *Favorite) IsOwnedBy(memberID string) bool {
	return memberID != "" && f.MemberID == memberID
}
