package sock

import "sync"

// maxDatagram is the largest datagram Receive accepts.
const maxDatagram = 9000

var bufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, maxDatagram)
		return &b
	},
}

// GetBuffer returns a receive buffer of maxDatagram bytes from the pool.
func GetBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

// PutBuffer returns a buffer obtained from GetBuffer. Buffers of another
// size are dropped.
func PutBuffer(b *[]byte) {
	if b == nil || cap(*b) != maxDatagram {
		return
	}
	*b = (*b)[:maxDatagram]
	bufferPool.Put(b)
}
