//go:build unix && !linux && !darwin

package sock

const sendFlags = 0

func noSigpipe(int) func() { return func() {} }
