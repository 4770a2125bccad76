package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/elaa0505/AzuraCast/internal/adapter/http/ratelimit"
	"github.com/elaa0505/AzuraCast/internal/adapter/http/validation"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/service"
)

const maxFormMemory = 32 << 20

type BatchService interface {
	Execute(ctx context.Context, tenant *domain.Tenant, selection []string, op domain.Operation) (*domain.BatchResult, error)
}

type ReconcileService interface {
	Verify(ctx context.Context, tenant *domain.Tenant) (*service.Report, error)
	Repair(ctx context.Context, tenant *domain.Tenant) (*service.Report, error)
}

type StationDirectory interface {
	GetTenant(ctx context.Context, id int64) (*domain.Tenant, error)
	GetTenantByShortName(ctx context.Context, shortName string) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)
}

type Handlers struct {
	stations   StationDirectory
	batch      BatchService
	reconciler ReconcileService
	limiter    *ratelimit.TenantLimiter
	locks      *ratelimit.TenantLock
	logger     *log.Logger
}

func NewHandlers(stations StationDirectory, batch BatchService, reconciler ReconcileService, limiter *ratelimit.TenantLimiter, locks *ratelimit.TenantLock, l *log.Logger) *Handlers {
	if l == nil {
		l = logger.Default()
	}
	return &Handlers{
		stations:   stations,
		batch:      batch,
		reconciler: reconciler,
		limiter:    limiter,
		locks:      locks,
		logger:     l.With("component", "api"),
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// statusFor maps a fatal batch error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidOperation), errors.Is(err, domain.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// station resolves the {station} path value, a numeric id or a short name.
// It writes the error response itself and returns nil when lookup failed.
func (h *Handlers) station(w http.ResponseWriter, r *http.Request) *domain.Tenant {
	ref := r.PathValue("station")

	var (
		tenant *domain.Tenant
		err    error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		tenant, err = h.stations.GetTenant(r.Context(), id)
	} else {
		tenant, err = h.stations.GetTenantByShortName(r.Context(), ref)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Station not found")
		return nil
	case err != nil:
		h.logger.Error("station lookup failed", "station", logger.SanitizeForLog(ref), "error", err)
		writeError(w, http.StatusInternalServerError, "Station lookup failed")
		return nil
	}
	return tenant
}

func (h *Handlers) Batch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormMemory)
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			writeError(w, http.StatusBadRequest, "Invalid form data")
			return
		}

		tenant := h.station(w, r)
		if tenant == nil {
			return
		}
		if !h.limiter.Allow(tenant.ID) {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "Too many batch requests for this station")
			return
		}

		selection, err := validation.Selection(r.FormValue("files"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		params := domain.OperationParams{
			Playlists: slices.Concat(r.Form["playlists[]"], r.Form["playlists"]),
			Directory: r.FormValue("directory"),
		}
		if name := r.FormValue("new_playlist_name"); name != "" {
			if params.NewPlaylistName, err = validation.PlaylistName(name); err != nil {
				writeError(w, http.StatusBadRequest, "new_playlist_name: "+err.Error())
				return
			}
		}
		op, err := domain.ParseOperation(r.FormValue("do"), params)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := func() (*domain.BatchResult, error) {
			defer h.locks.Lock(tenant.ID)()
			return h.batch.Execute(r.Context(), tenant, selection, op)
		}()
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				h.logger.Error("batch failed", "station", tenant.ShortName, "op", op.Kind(), "error", err)
			}
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// Verify reports catalog drift. With ?fix=true the drift is repaired.
func (h *Handlers) Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := h.station(w, r)
		if tenant == nil {
			return
		}

		fix, _ := strconv.ParseBool(r.URL.Query().Get("fix"))
		var (
			report *service.Report
			err    error
		)
		if fix {
			report, err = func() (*service.Report, error) {
				defer h.locks.Lock(tenant.ID)()
				return h.reconciler.Repair(r.Context(), tenant)
			}()
		} else {
			report, err = h.reconciler.Verify(r.Context(), tenant)
		}
		if err != nil && report == nil {
			h.logger.Error("verify failed", "station", tenant.ShortName, "error", err)
			writeError(w, statusFor(err), err.Error())
			return
		}
		if err != nil {
			h.logger.Warn("repair incomplete", "station", tenant.ShortName, "error", err)
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func (h *Handlers) Stations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenants, err := h.stations.ListTenants(r.Context())
		if err != nil {
			h.logger.Error("list stations failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Could not list stations")
			return
		}
		if tenants == nil {
			tenants = []*domain.Tenant{}
		}
		writeJSON(w, http.StatusOK, tenants)
	}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
