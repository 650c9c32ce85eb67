package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
)

func (h *Handler) GetMyPreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPreference")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	view, err := h.preferenceService.Get(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get preference failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := preferenceViewDTO{HasPreference: view.HasPreference}
	if view.Preference != nil {
		dto := preferenceToDTO(*view.Preference)
		out.Preference = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SaveMyPreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyPreference")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	finish := false
	if raw := r.URL.Query().Get("finish"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid finish flag %q", usecase.ErrInvalidInput, raw))
			return
		}
		finish = parsed
	}

	var req savePreferenceRequest
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

	input := usecase.ReplacePreferenceInput{
		UserID: principal.UserID,
		Sports: req.Sports,
		Teams:  teamMapFromDTO(req.Teams),
	}
	save := h.preferenceService.Replace
	if finish {
		save = h.preferenceService.Finish
	}

	stored, err := save(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "save preference failed", "user_id", principal.UserID, "finish", finish, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, preferenceToDTO(stored))
}

func (h *Handler) UpdateMyPreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyPreference")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updatePreferenceRequest
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

	input := usecase.MergePreferenceInput{
		UserID: principal.UserID,
		Sports: req.Sports,
	}
	if req.Teams != nil {
		teams := teamMapFromDTO(*req.Teams)
		input.Teams = &teams
	}

	stored, err := h.preferenceService.MergeFields(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update preference failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, preferenceToDTO(stored))
}

func (h *Handler) ClearMyPreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearMyPreference")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.preferenceService.Clear(ctx, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "clear preference failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, preferenceViewDTO{HasPreference: false})
}

