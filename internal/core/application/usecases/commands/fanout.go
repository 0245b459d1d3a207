package commands

// backOfficeRoles names the organization roles notified about order and trip
// lifecycle events, in addition to the entity's participants. Explicit
// receiver lists, when present, override role resolution entirely.
var backOfficeRoles = []string{"admin", "dispatcher"}
