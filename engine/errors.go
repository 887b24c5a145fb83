package engine

import "errors"

var (
	// ErrInvalidSyncMode rejects sync triggers outside {merge, overwrite}
	// before any I/O happens.
	ErrInvalidSyncMode = errors.New("invalid sync mode: must be merge or overwrite")

	// ErrTeamConflict signals a duplicate team id, name or short name.
	ErrTeamConflict = errors.New("team id, name or short name already exists")

	// ErrTeamNotFound signals a delete for an unknown team id.
	ErrTeamNotFound = errors.New("team not found")

	// ErrTeamHasMembers blocks deleting a team still referenced by member
	// records.
	ErrTeamHasMembers = errors.New("team still has members")

	// ErrActivityNotFound signals a delete for an unknown activity id.
	ErrActivityNotFound = errors.New("activity not found")
)
