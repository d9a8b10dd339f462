package relay42

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// VisitorCookie is the cookie the middleware uses to recognize returning
// visitors.
const VisitorCookie = "r42_uid"

// visitorCookieMaxAge keeps the visitor cookie for roughly a year.
const visitorCookieMaxAge = 365 * 24 * 60 * 60

// Middleware returns HTTP middleware that gives every request a visitor
// identity and reports a PageView engagement for it.
//
// An r42_uid cookie is minted when the request carries none (or an invalid
// one), and the visitor ID is stored on the request context for handlers to
// read via VisitorFromContext. The PageView runs detached from the request
// context, so a fast handler return does not abort it.
func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitorID := ""
		if cookie, err := r.Cookie(VisitorCookie); err == nil && isValidVisitorID(cookie.Value) {
			visitorID = cookie.Value
		}
		if visitorID == "" {
			visitorID = NewVisitorID()
			http.SetCookie(w, &http.Cookie{
				Name:   VisitorCookie,
				Value:  visitorID,
				Path:   "/",
				MaxAge: visitorCookieMaxAge,
			})
		}

		ctx := WithVisitor(r.Context(), visitorID)

		c.TrackEngagement(context.Background(), Engagement{
			UUID: visitorID,
			Type: "PageView",
			Properties: map[string]string{
				"path": r.URL.Path,
			},
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isValidVisitorID checks that a cookie value is a well-formed UUID.
func isValidVisitorID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
