package umock

import "os"

// Stdio is the file stream facility.
type Stdio interface {
	Fopen(name string, flag int, perm os.FileMode) (*os.File, error)
	Fclose(f *os.File) error
	Fflush(f *os.File) error
}

// StdioReal forwards to package os.
type StdioReal struct{}

func (StdioReal) Fopen(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

func (StdioReal) Fclose(f *os.File) error { return f.Close() }

func (StdioReal) Fflush(f *os.File) error { return f.Sync() }

// StdioSeam is the active-implementation pointer of the Stdio facility.
var StdioSeam = NewSeam[Stdio]("stdio", StdioReal{})

// Fopen opens a file with the current Stdio.
func Fopen(name string, flag int, perm os.FileMode) (*os.File, error) {
	return StdioSeam.Current().Fopen(name, flag, perm)
}

// Fclose closes a file with the current Stdio.
func Fclose(f *os.File) error {
	return StdioSeam.Current().Fclose(f)
}

// Fflush flushes a file to stable storage with the current Stdio.
func Fflush(f *os.File) error {
	return StdioSeam.Current().Fflush(f)
}
