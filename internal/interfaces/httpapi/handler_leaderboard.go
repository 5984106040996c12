package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
)

const maxResultBodyBytes = 1 << 20

const (
	msgReadLeaderboardsFailed = "Failed to read leaderboards"
	msgPostResultFailed       = "Failed to post result"
)

type postResultRequest struct {
	Division   string `json:"division" validate:"required"`
	HomeTeamID string `json:"homeTeamId" validate:"required"`
	AwayTeamID string `json:"awayTeamId" validate:"required"`
	HomeGoals  *int   `json:"homeGoals" validate:"required"`
	AwayGoals  *int   `json:"awayGoals" validate:"required"`
}

type postResultResponse struct {
	Success  bool              `json:"success"`
	Division string            `json:"division"`
	Board    leaderboard.Table `json:"board"`
}

func (h *Handler) GetLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboards")
	defer span.End()

	dataset, err := h.leaderboardService.Leaderboards(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "read leaderboards failed", "error", err)
		writeError(ctx, w, err, msgReadLeaderboardsFailed)
		return
	}

	writeJSON(ctx, w, http.StatusOK, dataset)
}

func (h *Handler) PostResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostResult")
	defer span.End()

	var req postResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxResultBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", errInvalidBody, err), msgPostResultFailed)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err, msgPostResultFailed)
		return
	}

	result := leaderboard.MatchResult{
		Division:   req.Division,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		HomeGoals:  req.HomeGoals,
		AwayGoals:  req.AwayGoals,
	}
	board, err := h.leaderboardService.RecordResult(ctx, result)
	if err != nil {
		if mapped := mapError(ctx, err); mapped.HTTPStatus >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "post result failed", "division", req.Division, "error", err)
		} else {
			h.logger.WarnContext(ctx, "result rejected", "division", req.Division, "error", err)
		}
		writeError(ctx, w, err, msgPostResultFailed)
		return
	}

	if user := adminUserFromContext(ctx); user != "" {
		h.logger.InfoContext(ctx, "result submitted", "division", req.Division, "admin_user", user)
	}

	writeJSON(ctx, w, http.StatusOK, postResultResponse{
		Success:  true,
		Division: req.Division,
		Board:    board,
	})
}
