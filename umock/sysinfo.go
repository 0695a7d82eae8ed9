package umock

import "time"

// Utsname holds the fields of uname(2).
type Utsname struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// Sysinfo provides wall clock time and host identification.
type Sysinfo interface {
	Time() time.Time
	Uname() (Utsname, error)
}

// SysinfoReal reads the system clock and uname.
type SysinfoReal struct{}

func (SysinfoReal) Time() time.Time { return time.Now() }

func (SysinfoReal) Uname() (Utsname, error) { return uname() }

// SysinfoSeam is the active-implementation pointer of the Sysinfo facility.
var SysinfoSeam = NewSeam[Sysinfo]("sysinfo", SysinfoReal{})

// Time returns the current time of the current Sysinfo.
func Time() time.Time {
	return SysinfoSeam.Current().Time()
}

// Uname returns host identification from the current Sysinfo.
func Uname() (Utsname, error) {
	return SysinfoSeam.Current().Uname()
}
