package umock

import "syscall"

// Stringh provides error number descriptions.
type Stringh interface {
	Strerror(errnum syscall.Errno) string
}

// StringhReal describes error numbers with syscall.Errno.
type StringhReal struct{}

func (StringhReal) Strerror(errnum syscall.Errno) string { return errnum.Error() }

// StringhSeam is the active-implementation pointer of the Stringh facility.
var StringhSeam = NewSeam[Stringh]("stringh", StringhReal{})

// Strerror describes errnum with the current Stringh.
func Strerror(errnum syscall.Errno) string {
	return StringhSeam.Current().Strerror(errnum)
}
