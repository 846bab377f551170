package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps login timing uniform when the username does not exist.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := queryOne[user](h, c.Request.Context(),
		`SELECT * FROM users WHERE username = @username`,
		pgx.NamedArgs{"username": req.Username})
	if err == pgx.ErrNoRows {
		// Burn a comparison so missing users cost the same as bad passwords.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		log.Printf("[auth] looking up user: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": u.AuthToken, "user": u})
}

// authMiddleware resolves the bearer token to a user and stores the user on
// the request context.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		apiError(c, http.StatusUnauthorized, "missing bearer token")
		c.Abort()
		return
	}

	u, err := queryOne[user](h, c.Request.Context(),
		`SELECT * FROM users WHERE auth_token = @token`,
		pgx.NamedArgs{"token": token})
	if err == pgx.ErrNoRows {
		apiError(c, http.StatusUnauthorized, "invalid token")
		c.Abort()
		return
	}
	if err != nil {
		log.Printf("[auth] resolving token: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		c.Abort()
		return
	}

	c.Set("user", u)
	c.Next()
}

// currentUser fetches the authenticated user placed by authMiddleware.
func currentUser(c *gin.Context) user {
	return c.MustGet("user").(user)
}
