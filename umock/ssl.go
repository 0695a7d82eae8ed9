package umock

import "crypto/tls"

// Ssl is the secure transport facility.
type Ssl interface {
	Read(conn *tls.Conn, b []byte) (int, error)
	Write(conn *tls.Conn, b []byte) (int, error)
}

// SslReal reads and writes through crypto/tls.
type SslReal struct{}

func (SslReal) Read(conn *tls.Conn, b []byte) (int, error) { return conn.Read(b) }

func (SslReal) Write(conn *tls.Conn, b []byte) (int, error) { return conn.Write(b) }

// SslSeam is the active-implementation pointer of the Ssl facility.
var SslSeam = NewSeam[Ssl]("ssl", SslReal{})

// SslRead reads from a TLS connection with the current Ssl.
func SslRead(conn *tls.Conn, b []byte) (int, error) {
	return SslSeam.Current().Read(conn, b)
}

// SslWrite writes to a TLS connection with the current Ssl.
func SslWrite(conn *tls.Conn, b []byte) (int, error) {
	return SslSeam.Current().Write(conn, b)
}
