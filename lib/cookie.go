package lib

import (
	"net/http"
)

const AccessCookieName = "access_token"

// GetCookieValue returns the value of the named cookie on the request.
func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
