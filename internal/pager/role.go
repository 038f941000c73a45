package pager

// EnvRole marks a re-executed process as the worker half of a paged run.
const EnvRole = "REPOVIEW_PAGER_ROLE"

// ProcessRole says which side of a paged run this process is.
type ProcessRole int

const (
	// RoleOriginal is a process that has not split (or never will).
	RoleOriginal ProcessRole = iota
	// RolePager is the half that turns into the pager program.
	RolePager
	// RoleWorker is the half that runs the command and writes into the pager.
	RoleWorker
)

func (r ProcessRole) String() string {
	switch r {
	case RolePager:
		return "pager"
	case RoleWorker:
		return "worker"
	default:
		return "original"
	}
}

func roleFromEnv(lookupEnv LookupEnvFunc) ProcessRole {
	if v, ok := lookupEnv(EnvRole); ok && v == RoleWorker.String() {
		return RoleWorker
	}
	return RoleOriginal
}
