package main

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gurtle/cli"
	"gurtle/gurt"
)

type ResponseServed struct {
	Status      gurt.StatusCode
	Body        []byte
	ContentType string
	Headers     map[string]string
	// OmitBody advertises the body's length without sending it (HEAD).
	OmitBody bool
}

// ServeResponse writes one GURT response frame. Header names are lowercase
// on the wire per the protocol.
func ServeResponse(conn net.Conn, resp ResponseServed) {
	if resp.ContentType == "" {
		resp.ContentType = "text/html; charset=utf-8"
	}

	body := resp.Body
	encoding := GetConfigValue("serve.encoding", "none").(string)
	if encoding != "none" && len(body) > 0 {
		compressed, err := CompressData(bytes.NewReader(body), encoding)
		if err != nil {
			ErrorLog(err)
		} else if compressed != nil {
			data, err := io.ReadAll(compressed)
			if err == nil {
				body = data
				if resp.Headers == nil {
					resp.Headers = make(map[string]string)
				}
				resp.Headers["content-encoding"] = encoding
			}
		}
	}

	conn.Write([]byte(fmt.Sprintf("%s %d %s%s", gurt.Version, resp.Status, resp.Status.Text(), gurt.CRLF)))
	conn.Write([]byte(fmt.Sprintf("server: gurtle/%s%s", VERSION, gurt.CRLF)))
	conn.Write([]byte(fmt.Sprintf("content-length: %d%s", len(body), gurt.CRLF)))
	conn.Write([]byte(fmt.Sprintf("content-type: %s%s", resp.ContentType, gurt.CRLF)))
	if resp.Headers != nil {
		for k, v := range resp.Headers {
			if k == "content-length" || k == "content-type" || k == "server" {
				continue
			}
			conn.Write([]byte(fmt.Sprintf("%s: %s%s", k, v, gurt.CRLF)))
		}
	}
	conn.Write([]byte(gurt.CRLF))
	if !resp.OmitBody {
		conn.Write(body)
	}
}

func ServeError(conn net.Conn, status gurt.StatusCode) {
	body := fmt.Sprintf(
		"<!DOCTYPE html><html><head><title>%s</title></head><body><center><h1>%d %s</h1><hr><p>Gurtle v%s</p></center></body></html>",
		status.Text(), status, status.Text(), VERSION,
	)
	ServeResponse(conn, ResponseServed{
		Status: status,
		Body:   []byte(body),
	})
}

func handleServeConnection(conn net.Conn, root string) {
	defer conn.Close()

	if tlsConn, ok := conn.(*tls.Conn); ok {
		if err := tlsConn.Handshake(); err != nil {
			ErrorLog(err)
			return
		}
	}

	buf := gurt.NewStreamBuffer(conn)

	// The first frame of every session must be the handshake.
	request, err := gurt.ReadRequest(buf)
	if err != nil {
		ErrorLog(err)
		return
	}
	if request.Method != gurt.MethodHandshake {
		ServeError(conn, gurt.StatusBadRequest)
		return
	}
	ServeResponse(conn, ResponseServed{
		Status:      gurt.StatusSwitchingProtocols,
		ContentType: "text/plain",
		Headers:     map[string]string{"gurt-version": "1.0.0"},
	})

	for {
		request, err = gurt.ReadRequest(buf)
		if err != nil {
			if !errors.Is(err, gurt.ErrTruncated) {
				ErrorLog(err)
			}
			return
		}
		remoteIp := conn.RemoteAddr().String()
		RequestLog(request.Method.String(), request.Path, gurt.Version, remoteIp)
		serveFile(conn, request, root)
	}
}

func serveFile(conn net.Conn, request *gurt.Request, root string) {
	if request.Method != gurt.MethodGet && request.Method != gurt.MethodHead {
		ServeError(conn, gurt.StatusMethodNotAllowed)
		return
	}

	unesc, err := url.QueryUnescape(request.Path)
	if err != nil {
		ServeError(conn, gurt.StatusBadRequest)
		return
	}
	filePath := filepath.Join(root, filepath.Clean("/"+unesc))
	stat, err := os.Stat(filePath)
	if err == nil && stat.IsDir() {
		filePath = filepath.Join(filePath, "index.html")
		stat, err = os.Stat(filePath)
	}
	if err != nil {
		ServeError(conn, gurt.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ErrorLog(err)
			ServeError(conn, gurt.StatusNotFound)
		} else if errors.Is(err, os.ErrPermission) {
			ErrorLog(err)
			ServeError(conn, gurt.StatusForbidden)
		} else {
			ErrorLog(err)
			ServeError(conn, gurt.StatusInternalError)
		}
		return
	}

	mimeType := mime.TypeByExtension(filepath.Ext(filePath))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	extraHeaders := config.Serve.Headers
	headers := PopulateHeaders(extraHeaders)
	ServeResponse(conn, ResponseServed{
		Status:      gurt.StatusOK,
		Body:        data,
		ContentType: mimeType,
		Headers:     headers,
		OmitBody:    request.Method == gurt.MethodHead,
	})
}

// StartServeListener opens the TLS listener for the development server,
// generating a self-signed certificate when none is configured.
func StartServeListener(port int) (net.Listener, error) {
	tlsCertFile := GetConfigValue("serve.cert_file", "").(string)
	tlsKeyFile := GetConfigValue("serve.key_file", "").(string)

	if tlsCertFile == "" || tlsKeyFile == "" {
		certPEM, keyPEM, err := cli.GenerateSelfSignedCert("localhost")
		if err != nil {
			return nil, err
		}
		cert, err := tls.X509KeyPair(certPEM, keyPEM)
		if err != nil {
			return nil, err
		}
		return listenTLS(port, cert)
	}

	cert, err := tls.LoadX509KeyPair(tlsCertFile, tlsKeyFile)
	if err != nil {
		return nil, err
	}
	return listenTLS(port, cert)
}

func listenTLS(port int, cert tls.Certificate) (net.Listener, error) {
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{gurt.ALPN},
	}
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, err
	}
	return tls.NewListener(listener, tlsConfig), nil
}

// RunServe starts the local development server. Usage: gurtle serve [dir]
func RunServe(args []string) {
	conf, err := GetConfig()
	if err != nil {
		ErrorLog(err)
		return
	}
	config = &conf

	root := conf.Serve.Root
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = "."
	}
	port := conf.Serve.Port
	if port == 0 {
		port = gurt.DefaultPort
	}

	listener, err := StartServeListener(port)
	if err != nil {
		ErrorLog(err)
		return
	}
	defer listener.Close()
	fmt.Printf("Gurtle is serving %s on port %d\n", root, port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				println("Listener has been closed")
				break
			}
			println("Error accepting connection:", err.Error())
			continue
		}
		go handleServeConnection(conn, root)
	}
}
