package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"idletycoon/internal/app/game"
	"idletycoon/internal/app/ports"
	"idletycoon/internal/domain/economy"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type gameSession interface {
	Click(ctx context.Context) (game.ClickResult, error)
	Purchase(ctx context.Context, itemID string) (game.PurchaseResult, error)
	SetShopName(ctx context.Context, name string) (string, error)
	Save(ctx context.Context) error
	Snapshot() game.Snapshot
}

type Handler struct {
	Game gameSession
	KPI  kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	g := s.Group("/api/game")
	g.GET("/state", h.state)
	g.POST("/click", h.click)
	g.POST("/purchase", h.purchase)
	g.POST("/shop-name", h.shopName)
	g.POST("/save", h.save)

	s.GET("/ops/kpi", h.kpi)
}

type purchaseRequest struct {
	ItemID string `json:"item_id"`
}

type shopNameRequest struct {
	Name string `json:"name"`
}

func (h Handler) state(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Game.Snapshot())
}

func (h Handler) click(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Game.Click(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) purchase(c context.Context, ctx *app.RequestContext) {
	var body purchaseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	itemID := strings.TrimSpace(body.ItemID)
	if itemID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "item_id is required")
		return
	}

	resp, err := h.Game.Purchase(c, itemID)
	if err != nil {
		if errors.Is(err, economy.ErrInsufficientFunds) {
			writePurchaseRejected(ctx, itemID, h.Game.Snapshot(), err)
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) shopName(c context.Context, ctx *app.RequestContext) {
	var body shopNameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	name, err := h.Game.SetShopName(c, body.Name)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"shop_name": name})
}

func (h Handler) save(c context.Context, ctx *app.RequestContext) {
	if err := h.Game.Save(c); err != nil {
		hlog.CtxWarnf(c, "manual save failed: %v", err)
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"saved": true})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, economy.ErrUnknownItem):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_item", err.Error())
	case errors.Is(err, game.ErrShopNameAlreadySet):
		writeErrorBody(ctx, consts.StatusConflict, "shop_name_already_set", err.Error())
	case errors.Is(err, game.ErrShopNameUnsupported):
		writeErrorBody(ctx, consts.StatusConflict, "shop_name_unsupported", err.Error())
	case errors.Is(err, game.ErrSaveDeferred):
		writeErrorBody(ctx, consts.StatusConflict, "save_deferred", err.Error())
	case errors.Is(err, game.ErrNotStarted):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "not_started", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writePurchaseRejected(ctx *app.RequestContext, itemID string, snap game.Snapshot, err error) {
	var price int64
	for _, it := range snap.Items {
		if it.ID == itemID {
			price = it.Price
			break
		}
	}
	ctx.JSON(consts.StatusConflict, map[string]any{
		"result_code": "REJECTED",
		"money":       snap.Money,
		"error": map[string]any{
			"code":    "insufficient_funds",
			"message": err.Error(),
			"details": map[string]any{
				"item_id": itemID,
				"price":   price,
				"money":   snap.Money,
			},
		},
	})
}
