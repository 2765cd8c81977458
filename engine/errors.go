package engine

import "errors"

var (
	// ErrEngineUnavailable reports that the native engine library could not
	// be loaded (e.g. the binary was built without engine support).
	ErrEngineUnavailable = errors.New("engine library unavailable")

	// ErrEngineOpenFailed reports that the engine process could not start.
	ErrEngineOpenFailed = errors.New("engine open failed")

	// ErrInvalidSession reports use of a closed session.
	ErrInvalidSession = errors.New("invalid session")

	// ErrEval reports session-level failure of a statement evaluation, such
	// as a dead connection. Errors inside the statement itself are not
	// reported here; they only appear as captured output text.
	ErrEval = errors.New("eval failed")

	// ErrPutVariable reports that the engine rejected a variable write.
	ErrPutVariable = errors.New("put variable failed")

	// ErrGetVariable reports that a variable could not be read, typically
	// because the name is undefined in the remote workspace.
	ErrGetVariable = errors.New("get variable failed")
)
