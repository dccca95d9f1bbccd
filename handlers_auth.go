package pandalhopper

import (
	"net/http"
)

type authStatusResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	UserID   string `json:"userId,omitempty"`
}

func (a *App) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	creds, err := a.api.SignUp(r.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.sess.Save(creds.Token, creds.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authStatusResponse{LoggedIn: true, UserID: creds.UserID})
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	creds, err := a.api.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.sess.Save(creds.Token, creds.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authStatusResponse{LoggedIn: true, UserID: creds.UserID})
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.sess.Clear(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authStatusResponse{LoggedIn: false})
}

func (a *App) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	resp := authStatusResponse{LoggedIn: a.sess.LoggedIn()}
	if id, ok := a.sess.UserID(); ok {
		resp.UserID = id
	}
	writeJSON(w, http.StatusOK, resp)
}
