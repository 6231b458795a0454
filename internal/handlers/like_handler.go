package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/services"
)

// LikeHandler handles likes on posts and comments. Both target kinds share
// the same handlers and differ only in the route param and kind.
type LikeHandler struct {
	reactionService *services.ReactionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(reactionService *services.ReactionService) *LikeHandler {
	return &LikeHandler{reactionService: reactionService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	h.register(g, "/posts/:post_id/likes", "post_id", models.TargetPost)
	h.register(g, "/comments/:id/likes", "id", models.TargetComment)
}

func (h *LikeHandler) register(g *echo.Group, prefix, param string, kind models.TargetKind) {
	t := likeTarget{param: param, kind: kind}
	g.POST(prefix+"/toggle", h.toggle(t))
	g.GET(prefix, h.list(t))
	g.GET(prefix+"/count", h.count(t))
	g.GET(prefix+"/status", h.status(t))
}

type likeTarget struct {
	param string
	kind  models.TargetKind
}

func (h *LikeHandler) toggle(t likeTarget) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentUserID, err := requireUser(c)
		if err != nil {
			return err
		}

		reaction, err := h.reactionService.ToggleReaction(c.Request().Context(), c.Param(t.param), t.kind, currentUserID)
		if err != nil {
			return toHTTPError(err)
		}

		return success(c, http.StatusOK, models.ToggleReactionResponse{
			Reacted:  reaction != nil,
			Reaction: reaction,
		})
	}
}

func (h *LikeHandler) list(t likeTarget) echo.HandlerFunc {
	return func(c echo.Context) error {
		reactions, err := h.reactionService.ReactionsFor(c.Request().Context(), c.Param(t.param), t.kind)
		if err != nil {
			return toHTTPError(err)
		}
		return success(c, http.StatusOK, reactions)
	}
}

func (h *LikeHandler) count(t likeTarget) echo.HandlerFunc {
	return func(c echo.Context) error {
		targetID := c.Param(t.param)
		count, err := h.reactionService.ReactionCount(c.Request().Context(), targetID, t.kind)
		if err != nil {
			return toHTTPError(err)
		}
		return success(c, http.StatusOK, echo.Map{"target_id": targetID, "target_kind": t.kind, "likes_count": count})
	}
}

func (h *LikeHandler) status(t likeTarget) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentUserID, err := requireUser(c)
		if err != nil {
			return err
		}
		targetID := c.Param(t.param)

		liked, err := h.reactionService.HasReacted(c.Request().Context(), targetID, t.kind, currentUserID)
		if err != nil {
			return toHTTPError(err)
		}
		return success(c, http.StatusOK, echo.Map{"target_id": targetID, "user_id": currentUserID, "has_liked": liked})
	}
}
