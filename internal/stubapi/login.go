package stubapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type AuthHandler struct {
	store  *Store
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthHandler(store *Store, tokens *TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, logger: logger}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req loginReq
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleError(ctx, domain.ErrBadRequest)
		return
	}

	user, ok := h.store.Authenticate(req.Email, req.Password)
	if !ok {
		handleError(ctx, domain.ErrInvalidCredentials)
		return
	}

	access, err := h.tokens.CreateToken(req.Email, accessTTL)
	if err != nil {
		handleError(ctx, domain.ErrInternal)
		return
	}
	refresh, err := h.tokens.CreateToken(req.Email, refreshTTL)
	if err != nil {
		handleError(ctx, domain.ErrInternal)
		return
	}

	h.logger.Debug("login", zap.String("email", req.Email))
	handleSuccess(ctx, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          user,
	})
}

type refreshReq struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var req refreshReq
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleError(ctx, domain.ErrBadRequest)
		return
	}

	subject, err := h.tokens.VerifyToken(req.Refresh)
	if err != nil {
		handleError(ctx, domain.ErrInvalidToken)
		return
	}

	access, err := h.tokens.CreateToken(subject, accessTTL)
	if err != nil {
		handleError(ctx, domain.ErrInternal)
		return
	}
	handleSuccess(ctx, gin.H{"access": access})
}
