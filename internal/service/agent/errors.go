package agent

import "errors"

var (
	errInvalidUTF8 = errors.New("payload is not valid UTF-8")
	errEmptyReply  = errors.New("empty reply")
)
