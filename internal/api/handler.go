package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/game"
	"github.com/wfunc/rgs-engine/internal/logger"
	"github.com/wfunc/rgs-engine/internal/middleware"
)

// Handler 游戏接口处理器
type Handler struct {
	svc *game.Service
}

// NewHandler 创建处理器
func NewHandler(svc *game.Service) *Handler {
	return &Handler{svc: svc}
}

// Spin 转轮接口
// POST /api/v1/spin
func (h *Handler) Spin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}
	var req game.SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}
	resp, err := h.svc.Spin(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GambleRequest 比倍请求
type GambleRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

// Gamble 比倍接口
// POST /api/v1/gamble
func (h *Handler) Gamble(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}
	var req GambleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}
	resp, err := h.svc.Gamble(c.Request.Context(), userID, req.GameID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// State 会话状态接口
// GET /api/v1/state?game_id=xxx
func (h *Handler) State(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}
	gameID := c.Query("game_id")
	if gameID == "" {
		h.respondError(c, apperrors.New(apperrors.ErrInvalidParam, "缺少game_id"))
		return
	}
	resp, err := h.svc.State(c.Request.Context(), userID, gameID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History 审计记录接口
// GET /api/v1/history?limit=20
func (h *Handler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrAuthentication))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.svc.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}

// respondError 校验类错误原样返回，其余一律返回通用内部错误，
// 细节只进内部日志
func (h *Handler) respondError(c *gin.Context, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrUnknown)
	}
	code := apperrors.GetCode(appErr)
	switch {
	case apperrors.IsValidation(appErr),
		code == apperrors.ErrInvalidParam,
		code == apperrors.ErrNotFound,
		code == apperrors.ErrAuthentication,
		code == apperrors.ErrTokenExpired,
		code == apperrors.ErrTokenInvalid,
		code == apperrors.ErrBonusState,
		code == apperrors.ErrGambleRefused:
		c.JSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, c.GetHeader("X-Request-ID")))
	default:
		if apperrors.IsLedgerFatal(appErr) {
			logger.GetModuleLogger("api").Error("账本不变量被破坏",
				zap.Error(appErr), zap.String("path", c.FullPath()))
		}
		generic := apperrors.New(apperrors.ErrUnknown)
		c.JSON(http.StatusInternalServerError, apperrors.NewErrorResponse(generic, c.GetHeader("X-Request-ID")))
	}
}
