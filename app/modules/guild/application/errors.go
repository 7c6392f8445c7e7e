package guildservice

import "errors"

var (
	ErrNotAuthorized      = errors.New("only server admins can do that")
	ErrMissingChannels    = errors.New("both the recruitment forum and the embed channel are required")
	ErrInvalidJoinMode    = errors.New("join mode must be DIRECT or MODERATED")
	ErrInvalidPingRole    = errors.New("unknown ping role key")
	ErrGuildNotConfigured = errors.New("this server has not been set up yet; run /setup first")
)
