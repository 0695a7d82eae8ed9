//go:build !unix

package umock

func uname() (Utsname, error) {
	return Utsname{}, ErrNotSupported
}
