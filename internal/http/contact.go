package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"mime"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"et21/internal/logging"
	"et21/internal/notify"
	"et21/internal/store"
)

const (
	maxNameLen    = 120
	maxEmailLen   = 254
	maxMessageLen = 4000
)

type ContactHandler struct {
	Store    store.Store
	Notifier notify.Notifier
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.From(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)

	req, err := decodeContact(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	id, err := h.Store.SaveMessage(r.Context(), store.Message{
		Name:      req.Name,
		Email:     req.Email,
		Body:      req.Message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error("contact.save", "err", err)
		jsonError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	log.Info("contact.saved", "id", id)

	msg := staffMessage(req)
	nctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 10*time.Second)
	go func() {
		defer cancel()
		h.Notifier.NotifyStaff(nctx, msg)
	}()

	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Mensaje enviado. ¡Gracias por contactarnos!"})
}

func decodeContact(r *http.Request) (contactReq, error) {
	var req contactReq
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Name = r.PostFormValue("name")
	req.Email = r.PostFormValue("email")
	req.Message = r.PostFormValue("message")
	return req, nil
}

// validate returns the user-facing problem with the request, or "".
func (c contactReq) validate() string {
	switch {
	case c.Name == "" || c.Email == "" || c.Message == "":
		return "Todos los campos son obligatorios"
	case utf8.RuneCountInString(c.Name) > maxNameLen:
		return "El nombre es demasiado largo"
	case len(c.Email) > maxEmailLen:
		return "El email es demasiado largo"
	case utf8.RuneCountInString(c.Message) > maxMessageLen:
		return "El mensaje es demasiado largo"
	}
	if a, err := mail.ParseAddress(c.Email); err != nil || a.Address != c.Email {
		return "El email no es válido"
	}
	return ""
}

func staffMessage(c contactReq) string {
	return fmt.Sprintf("<b>Nuevo mensaje de contacto</b>\n<b>Nombre:</b> %s\n<b>Email:</b> %s\n\n%s",
		html.EscapeString(c.Name), html.EscapeString(c.Email), html.EscapeString(c.Message))
}
