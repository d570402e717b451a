package main

import "strings"

// PopulateHeaders merges the configured extra response headers into one map,
// normalizing names to lowercase since GURT requires lowercase header names
// on the wire. Later maps win on duplicate names.
func PopulateHeaders(headers ...*map[string]string) map[string]string {
	result := make(map[string]string)
	for _, headerMap := range headers {
		if headerMap != nil {
			for k, v := range *headerMap {
				k = strings.TrimSpace(strings.ToLower(k))
				result[k] = v
			}
		}
	}
	return result
}
