package backend

import (
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/access"
	"github.com/VithorDosSantos/reflora/core/csql"
	"github.com/VithorDosSantos/reflora/core/logger"
	"github.com/VithorDosSantos/reflora/core/schema"
)

// postgres error code for a violated unique constraint
const pqUniqueViolation = "23505"

// register creates a new user account
func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if err := b.readBody(r, schema.RegisterID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := access.HashPassword(request.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var user User
	query := fmt.Sprintf(`INSERT INTO %s."user" (name, email, password)
VALUES ($1, $2, $3) RETURNING user_id, name, email, creation_date;`, b.db.Schema)
	err = b.db.QueryRowContext(r.Context(), query, request.Name, request.Email, hash).
		Scan(&user.UserID, &user.Name, &user.Email, &user.CreationDate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			writeError(w, r, core.ConflictError("email is already registered"))
			return
		}
		writeError(w, r, core.ServerError(err))
		return
	}

	logger.FromContext(r.Context()).Infof("registered user %d", user.UserID)
	writeJSON(w, http.StatusCreated, user)
}

// login verifies credentials and returns a fresh bearer token
func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := b.readBody(r, schema.LoginID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	var userID int64
	var hash string
	query := fmt.Sprintf(`SELECT user_id, password FROM %s."user" WHERE email = $1;`, b.db.Schema)
	err := b.db.QueryRowContext(r.Context(), query, request.Email).Scan(&userID, &hash)
	if err == csql.ErrNoRows {
		writeError(w, r, core.NotFoundError("user not found"))
		return
	}
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	if err := access.ComparePassword(hash, request.Password); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := b.tokens.Issue(userID)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	logger.FromContext(r.Context()).Infof("user %d logged in", userID)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// me returns the authenticated user's profile
func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var user User
	query := fmt.Sprintf(`SELECT user_id, name, email, creation_date FROM %s."user" WHERE user_id = $1;`, b.db.Schema)
	err = b.db.QueryRowContext(r.Context(), query, id.UserID).
		Scan(&user.UserID, &user.Name, &user.Email, &user.CreationDate)
	if err == csql.ErrNoRows {
		writeError(w, r, core.NotFoundError("user not found"))
		return
	}
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusOK, user)
}
