package services

import (
	"freight/internal/core/domain/model/kernel"
)

// ReceiverResolver decides who gets told about a domain event.
//
// Resolution order: an explicit receiver list, when given, is used exactly as
// provided and everything else is ignored. Otherwise the set is the union of
// the organization members holding one of the requested roles and, unless
// participants are excluded, the order's participant list. The resolved set
// is de-duplicated by user id, preserving first-seen order.
type ReceiverResolver struct{}

// NewReceiverResolver creates the resolver service.
func NewReceiverResolver() ReceiverResolver {
	return ReceiverResolver{}
}

// Resolve builds the final receiver set for one notification.
func (r ReceiverResolver) Resolve(
	explicit []kernel.UUID,
	roleMembers []kernel.UUID,
	participants []kernel.UUID,
	includeParticipants bool,
) []kernel.UUID {
	if len(explicit) > 0 {
		return dedupe(explicit)
	}

	combined := make([]kernel.UUID, 0, len(roleMembers)+len(participants))
	combined = append(combined, roleMembers...)
	if includeParticipants {
		combined = append(combined, participants...)
	}
	return dedupe(combined)
}

func dedupe(ids []kernel.UUID) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(ids))
	result := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
