//go:build !unix

package pager

const canDuplicate = false

func defaultExec(string, []string, []string) error {
	return ErrDuplicationUnsupported
}

func (s *Session) duplicate(choice string) error {
	return &LaunchError{Pager: choice, Err: ErrDuplicationUnsupported}
}
