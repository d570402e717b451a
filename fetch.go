package main

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"sort"
	"strconv"

	"gurtle/gurt"
)

// ParseGurtURL splits a gurt:// URL into the dial address and request path.
func ParseGurtURL(raw string) (addr string, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "gurt" {
		return "", "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", "", fmt.Errorf("missing host in URL")
	}
	port := u.Port()
	if port == "" {
		port = strconv.Itoa(gurt.DefaultPort)
	}
	path = u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return net.JoinHostPort(u.Hostname(), port), path, nil
}

// RunFetch performs one request against a GURT server and prints the
// response. Usage: gurtle fetch <gurt-url> [method [body]]
func RunFetch(args []string) {
	if len(args) < 1 {
		println("Please specify a URL. Example: gurtle fetch gurt://example.web/index.html")
		return
	}
	addr, path, err := ParseGurtURL(args[0])
	if err != nil {
		ErrorLog(err)
		return
	}
	method := gurt.MethodGet
	if len(args) > 1 {
		method, err = gurt.ParseMethod(args[1])
		if err != nil {
			ErrorLog(err)
			return
		}
	}

	if conf, err := GetConfig(); err != nil {
		ErrorLog(err)
		return
	} else {
		config = &conf
	}
	insecure := GetConfigValue("client.insecure", false).(bool)
	userAgent, _ := GetConfigValue("client.user_agent", "").(string)

	var client *gurt.Client
	if insecure {
		client, err = gurt.DialInsecure(addr)
	} else {
		client, err = gurt.Dial(addr, nil)
	}
	if err != nil {
		ErrorLog(err)
		return
	}
	defer client.Close()
	client.UserAgent = userAgent

	host, _, _ := net.SplitHostPort(addr)
	request := &gurt.Request{Method: method, Path: path, Host: host}
	if len(args) > 2 {
		request.Body = []byte(args[2])
		request.ContentType = "text/plain"
	}
	RequestLog(method.String(), path, gurt.Version, host)

	response, err := client.Do(request)
	if err != nil {
		ErrorLog(err)
		return
	}
	PrintResponse(response)
}

// PrintResponse writes status, headers and body to stdout, transparently
// decompressing the body when the server declared a content-encoding.
func PrintResponse(response *gurt.Response) {
	fmt.Printf("%s %d %s\n", gurt.Version, response.Code, response.Code.Text())
	names := make([]string, 0, len(response.Headers))
	for name := range response.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, response.Headers[name])
	}
	fmt.Println()

	body := response.Body
	if encoding := response.Headers["content-encoding"]; encoding != "" {
		decoded, err := DecompressBody(bytes.NewReader(body), encoding)
		if err != nil {
			ErrorLog(err)
			return
		}
		data, err := io.ReadAll(decoded)
		if err != nil {
			ErrorLog(err)
			return
		}
		body = data
	}
	os.Stdout.Write(body)
}
