package core

// Owned is implemented by entities with a single owning user.
type Owned interface {
	OwnedBy() UserIDString
}

// Negotiated is implemented by entities with two participating users.
type Negotiated interface {
	Participants() (offeredBy UserIDString, requestedFrom UserIDString)
}

// IsOwner reports whether userID owns the entity. An empty user id owns nothing.
func IsOwner(entity Owned, userID UserIDString) bool {
	return userID != "" && entity.OwnedBy() == userID
}

// IsParticipant reports whether userID is one of the two parties of the swap.
func IsParticipant(swap Negotiated, userID UserIDString) bool {
	if userID == "" {
		return false
	}

	offeredBy, requestedFrom := swap.Participants()

	return offeredBy == userID || requestedFrom == userID
}
