package questservice

import "errors"

// Domain rejection reasons. These travel to users as Failure payloads, so
// the wording is what the gateway shows.
var (
	ErrQuestNotFound       = errors.New("quest not found")
	ErrNotAuthorized       = errors.New("only the organizer or a server admin can do that")
	ErrQuestClosed         = errors.New("this quest is no longer recruiting")
	ErrOrganizerCannotJoin = errors.New("organizers cannot join their own quest")
	ErrAlreadyMember       = errors.New("you are already on this quest")
	ErrNotMember           = errors.New("you are not on this quest")
	ErrNotOnRoster         = errors.New("that user is not on the roster")
	ErrApplicationPending  = errors.New("you already have a pending application for this quest")
	ErrInvalidStatus       = errors.New("invalid quest status")
	ErrInvalidMaxPlayers   = errors.New("max players must be zero or positive")
	ErrThreadRegistered    = errors.New("this thread is already registered as a quest")
	ErrEmbedChannelUnset   = errors.New("no embed channel configured; run /setup first")
	ErrGuildNotConfigured  = errors.New("this server is not set up yet; run /setup first")
	ErrDecisionResolved    = errors.New("this application has already been decided")
	ErrInvalidDecision     = errors.New("this decision link is not valid")
)
