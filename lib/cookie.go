package lib

import (
	"net/http"
)

// AccessCookieName is the cookie the external identity provider sets; this
// service only reads it.
const AccessCookieName = "access_token"

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
