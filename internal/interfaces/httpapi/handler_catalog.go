package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
)

func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSports")
	defer span.End()

	categories := h.catalogService.ListCategories(ctx)
	lookup := h.catalogService.LookupLeague
	items := make([]sportCategoryDTO, 0, len(categories))
	for _, c := range categories {
		items = append(items, categoryToDTO(c, lookup))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues := h.catalogService.ListLeagues(ctx)
	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	leagueIDs := leagueIDsFromQuery(r)
	if len(leagueIDs) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: at least one league query parameter is required", usecase.ErrInvalidInput))
		return
	}

	batch := h.aggregationService.FetchLeagues(ctx, leagueIDs)
	if len(batch.Errors) > 0 {
		h.logger.WarnContext(ctx, "team batch completed with errors", "leagues", len(batch.Order), "errors", len(batch.Errors))
	}

	writeSuccess(ctx, w, http.StatusOK, batchToDTO(batch))
}

func (h *Handler) BatchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BatchTeams")
	defer span.End()

	var req teamBatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	batch := h.aggregationService.FetchLeagues(ctx, req.Leagues)
	if len(batch.Errors) > 0 {
		h.logger.WarnContext(ctx, "team batch completed with errors", "leagues", len(batch.Order), "errors", len(batch.Errors))
	}

	writeSuccess(ctx, w, http.StatusOK, batchToDTO(batch))
}

func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeams")
	defer span.End()

	result := h.searchService.Search(ctx, r.URL.Query().Get("q"), leagueIDsFromQuery(r))

	writeSuccess(ctx, w, http.StatusOK, teamSearchDTO{
		Query:   result.Query,
		Results: teamsToDTO(result.Teams),
		Errors:  result.Errors,
	})
}

func (h *Handler) ListCategoryTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategoryTeams")
	defer span.End()

	categoryID := r.PathValue("categoryID")
	result, err := h.catalogService.TeamsByCategory(ctx, categoryID)
	if err != nil {
		h.logger.WarnContext(ctx, "list category teams failed", "category_id", categoryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, categoryTeamsDTO{
		Category: categoryToDTO(result.Category, h.catalogService.LookupLeague),
		Teams:    teamMapToDTO(result.GroupByLeague()),
		Errors:   result.Batch.Errors,
	})
}

// leagueIDsFromQuery accepts repeated and comma separated league parameters.
func leagueIDsFromQuery(r *http.Request) []string {
	out := make([]string, 0)
	for _, raw := range r.URL.Query()["league"] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
