package gurt

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
)

// Dial connects to a GURT server, negotiates TLS with the GURT ALPN
// identifier, and performs the protocol handshake. conf may be nil; either
// way NextProtos is forced to the GURT identifier. The returned client owns
// the connection.
func Dial(addr string, conf *tls.Config) (*Client, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
		addr = net.JoinHostPort(addr, strconv.Itoa(DefaultPort))
	}

	if conf == nil {
		conf = &tls.Config{}
	} else {
		conf = conf.Clone()
	}
	conf.NextProtos = []string{ALPN}

	dialer := &net.Dialer{Timeout: HandshakeTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, conf)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	if proto := conn.ConnectionState().NegotiatedProtocol; proto != ALPN {
		conn.Close()
		return nil, fmt.Errorf("%w: server negotiated ALPN %q", ErrProtocolMismatch, proto)
	}

	client := NewClient(conn)
	if _, err := client.Handshake(host); err != nil {
		conn.Close()
		return nil, err
	}
	return client, nil
}

// DialInsecure is Dial without certificate verification, for servers running
// on self-signed development certificates.
func DialInsecure(addr string) (*Client, error) {
	return Dial(addr, &tls.Config{InsecureSkipVerify: true})
}

// Close closes the underlying transport when the client owns one that is
// closable (e.g. a connection from Dial).
func (c *Client) Close() error {
	if closer, ok := c.conn.(net.Conn); ok {
		return closer.Close()
	}
	return nil
}
