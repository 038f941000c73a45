package pager

import "golang.org/x/sys/unix"

// dupTo makes newfd a copy of oldfd. Linux on arm64 and riscv64 has no dup2.
func dupTo(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
