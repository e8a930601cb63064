package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/Parley/internal/app"
	"github.com/dkeye/Parley/internal/auth"
	"github.com/dkeye/Parley/internal/domain"
	"github.com/dkeye/Parley/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Auth  *auth.Service
	Store storage.Store
	Rooms *app.RoomTable
}

type signUpRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Password  string `json:"password"`
}

func (h *Handlers) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	user, err := h.Auth.SignUp(c.Request.Context(), req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields),
			errors.Is(err, domain.ErrUsernameEmpty),
			errors.Is(err, domain.ErrUsernameTooLong),
			errors.Is(err, domain.ErrNameTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Str("module", "adapters.http").Msg("signup")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

type logInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) LogIn(c *gin.Context) {
	var req logInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	user, token, err := h.Auth.LogIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Str("module", "adapters.http").Msg("login")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"username":  user.Username,
		"firstname": user.FirstName,
		"token":     token,
	})
}

func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handlers) RoomHistory(c *gin.Context) {
	room := c.Query("room")
	if room == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room query param required"})
		return
	}
	msgs, err := h.Store.RoomHistory(c.Request.Context(), domain.RoomName(room))
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", room).Msg("room history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if msgs == nil {
		msgs = []domain.RoomMessage{}
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *Handlers) DirectHistory(c *gin.Context) {
	other := c.Query("with")
	me := c.Query("me")
	if other == "" || me == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "with and me query params required"})
		return
	}
	msgs, err := h.Store.DirectHistory(c.Request.Context(), me, other)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("direct history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if msgs == nil {
		msgs = []domain.DirectMessage{}
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *Handlers) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Rooms.List()})
}
