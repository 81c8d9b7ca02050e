package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"pitchside/internal/domain/fixture"
	"pitchside/internal/platform/logging"
	"pitchside/internal/usecase"
)

type Handler struct {
	enrichmentService *usecase.EnrichmentService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(enrichmentService *usecase.EnrichmentService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		enrichmentService: enrichmentService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListFixturesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByDate")
	defer span.End()

	req := listFixturesRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	enriched, err := h.enrichmentService.EnrichDate(ctx, req.Date)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, enrichedFixturesToDTO(enriched))
}

func (h *Handler) ListLiveFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveFixtures")
	defer span.End()

	req := listLiveFixturesRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.enrichmentService.LiveFixtures(ctx, req.Date)
	if err != nil {
		h.logger.WarnContext(ctx, "list live fixtures failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, enrichedFixturesToDTO(live))
}

func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	var req refreshJobRequest
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

	result, err := h.enrichmentService.RefreshDates(ctx, usecase.RefreshInput{
		Dates:   req.Dates,
		Workers: req.Workers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "refresh job failed", "dates", req.Dates, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type listFixturesRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type listLiveFixturesRequest struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

type refreshJobRequest struct {
	Dates   []string `json:"dates" validate:"required,min=1,max=31,dive,datetime=2006-01-02"`
	Workers int      `json:"workers" validate:"min=0,max=32"`
}

type enrichedFixtureDTO struct {
	HomeName       string   `json:"homeName"`
	AwayName       string   `json:"awayName"`
	Competition    string   `json:"competition"`
	Country        string   `json:"country"`
	KickoffUnix    int64    `json:"kickoffUnixSeconds"`
	Status         string   `json:"status"`
	HomeScore      *int     `json:"homeScore"`
	AwayScore      *int     `json:"awayScore"`
	HomePossession *float64 `json:"homePossessionPct,omitempty"`
	AwayPossession *float64 `json:"awayPossessionPct,omitempty"`
	Lifecycle      string   `json:"lifecycle"`
	HomeLogoURL    string   `json:"homeLogoUrl"`
	AwayLogoURL    string   `json:"awayLogoUrl"`
	BadgeSource    string   `json:"badgeSource"`
}

func enrichedFixturesToDTO(items []fixture.EnrichedFixture) []enrichedFixtureDTO {
	out := make([]enrichedFixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, enrichedFixtureDTO{
			HomeName:       item.HomeName,
			AwayName:       item.AwayName,
			Competition:    item.Competition,
			Country:        item.Country,
			KickoffUnix:    item.KickoffUnix,
			Status:         item.Status,
			HomeScore:      item.HomeScore,
			AwayScore:      item.AwayScore,
			HomePossession: item.HomePossession,
			AwayPossession: item.AwayPossession,
			Lifecycle:      string(item.Lifecycle),
			HomeLogoURL:    item.HomeLogoURL,
			AwayLogoURL:    item.AwayLogoURL,
			BadgeSource:    item.BadgeSource,
		})
	}
	return out
}
