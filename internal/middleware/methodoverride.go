package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride lets HTML forms express PUT and DELETE through a hidden
// _method field on a POST, the way the original forms submit them.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch strings.ToUpper(r.PostFormValue("_method")) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
