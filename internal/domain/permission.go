package domain

// Permission predicates. Pure functions over data the caller has already loaded;
// every mutating service operation resolves the relevant predicate before writing.

// IsOrganizer reports whether the actor is the event's organizer.
func IsOrganizer(event *Event, actorID string) bool {
	return event != nil && event.OrganizerID == actorID
}

// CanModifyEvent reports whether the actor may update or delete the event.
func CanModifyEvent(event *Event, actorID string) bool {
	return IsOrganizer(event, actorID)
}

// CanRemoveParticipant reports whether the actor may remove the target's membership.
// The organizer may remove anyone but themselves; any user may remove themselves.
// The organizer's own membership only goes away when the event does.
func CanRemoveParticipant(event *Event, targetUserID, actorID string) bool {
	if event == nil {
		return false
	}
	if targetUserID == event.OrganizerID {
		return false
	}
	return actorID == targetUserID || IsOrganizer(event, actorID)
}

// CanManagePhotos reports whether the actor may upload or delete event photos.
func CanManagePhotos(event *Event, actorID string) bool {
	return IsOrganizer(event, actorID)
}
