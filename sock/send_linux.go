package sock

import "golang.org/x/sys/unix"

// sendFlags keeps send(2) from raising SIGPIPE on a broken connection.
const sendFlags = unix.MSG_NOSIGNAL

func noSigpipe(int) func() { return func() {} }
