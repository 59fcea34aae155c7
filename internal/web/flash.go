package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "flash"

type flashMessage struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// addFlash queues a one-shot message for the next rendered page. Messages
// are carried in a short-lived cookie so no server-side session store is
// needed.
func addFlash(w http.ResponseWriter, r *http.Request, message, category string) {
	messages := peekFlashes(r)
	messages = append(messages, flashMessage{Message: message, Category: category})

	payload, err := json.Marshal(messages)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
}

// consumeFlashes returns queued messages and clears the cookie.
func consumeFlashes(w http.ResponseWriter, r *http.Request) []flashMessage {
	messages := peekFlashes(r)
	if len(messages) == 0 {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return messages
}

func peekFlashes(r *http.Request) []flashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []flashMessage
	if err := json.Unmarshal(payload, &messages); err != nil {
		return nil
	}
	return messages
}
