package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drivelane/carmarket/internal/adapters/transport/http/dto"
	"github.com/drivelane/carmarket/internal/app/auth/service"
	"github.com/drivelane/carmarket/internal/domain/auth/model"
	"github.com/drivelane/carmarket/internal/infra/config"
)

// refreshCookie carries the refresh token between the browser and
// /auth/refresh. The access token travels in the response body only.
const refreshCookie = "refreshToken"

type Auth struct {
	svc service.Service
	cfg *config.Config
	log *zap.Logger
}

func NewAuth(svc service.Service, cfg *config.Config, log *zap.Logger) *Auth {
	return &Auth{svc: svc, cfg: cfg, log: log}
}

// issueSession sets the rotated refresh cookie and answers with the access
// token plus the identity it was minted for.
func (h *Auth) issueSession(c *gin.Context, status int, pair model.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		refreshCookie,
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		true, // secure
		true, // httpOnly
	)

	c.JSON(status, gin.H{
		"accessToken": pair.AccessToken,
		"expiresIn":   int(pair.AccessTTL.Seconds()),
		"user":        pair.Identity,
	})
}

func (h *Auth) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, "", -1, "/", h.cfg.CookieDomain, true, true)
}

func (h *Auth) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	h.log.Info("user registered", zap.Int64("user_id", pair.Identity.ID))
	h.issueSession(c, http.StatusCreated, pair)
}

func (h *Auth) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	h.issueSession(c, http.StatusOK, pair)
}

// Refresh exchanges the refresh cookie for a fresh session. A missing cookie
// is a 401 so clients know to log in; a dead cookie is a 403.
func (h *Auth) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token required"})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		handleError(c, err)
		return
	}
	h.issueSession(c, http.StatusOK, pair)
}

// Logout answers 200 no matter what; there is no failure mode worth
// reporting for "stop trusting this cookie".
func (h *Auth) Logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookie)
	_ = h.svc.Logout(c.Request.Context(), token)
	h.clearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
