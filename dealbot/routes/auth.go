package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealbot/dealbot/config"
	"dealbot/dealbot/controllers"
	"dealbot/dealbot/middlewares"
	"dealbot/dealbot/types"
)

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// RegisterAuthRoutes serves /, /signup, /login and /logout. The GET
// variants are JSON descriptions of the form a browser client renders;
// templating is not this service's job.
func RegisterAuthRoutes(r chi.Router, ctrl *controllers.AuthController, cfg config.Config) {
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		_, ok := middlewares.UserIDFromToken(middlewares.TokenFromRequest(r), cfg)
		return map[string]any{"service": "dealbot", "authenticated": ok}, http.StatusOK, nil
	}))

	r.Get("/signup", handleJSON(func(r *http.Request) (any, int, error) {
		return map[string]any{"fields": []string{"email", "name", "password"}}, http.StatusOK, nil
	}))

	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		var req types.SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if req.Email == "" || req.Name == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, errors.New("email, name and password are required"))
			return
		}
		token, user, err := ctrl.Signup(r.Context(), req.Email, req.Name, req.Password)
		if err != nil {
			if errors.Is(err, controllers.ErrEmailTaken) {
				writeError(w, http.StatusConflict, err)
			} else {
				writeError(w, http.StatusInternalServerError, err)
			}
			return
		}
		setSessionCookie(w, token)
		writeJSON(w, http.StatusCreated, map[string]string{"token": token, "name": user.Name})
	})

	r.Get("/login", handleJSON(func(r *http.Request) (any, int, error) {
		return map[string]any{"fields": []string{"email", "password"}}, http.StatusOK, nil
	}))

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		token, user, err := ctrl.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, controllers.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, err)
			} else {
				writeError(w, http.StatusInternalServerError, err)
			}
			return
		}
		setSessionCookie(w, token)
		writeJSON(w, http.StatusOK, map[string]string{"token": token, "name": user.Name})
	})

	r.Get("/logout", func(w http.ResponseWriter, r *http.Request) {
		clearSessionCookie(w)
		writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
