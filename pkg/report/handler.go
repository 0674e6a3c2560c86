package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chitieu/chitieu/internal/rest"
	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/amount"
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/user"
	log "github.com/sirupsen/logrus"
)

type CategoryTotalDTO struct {
	Category  string `json:"category"`
	Amount    int64  `json:"amount"`
	Formatted string `json:"formatted"`
}

type WeekDTO struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Limit       int64     `json:"limit"`
	Spent       int64     `json:"spent"`
	Remaining   int64     `json:"remaining"`
	UsedPercent float64   `json:"usedPercent"`
	Level       string    `json:"level"`
}

type RecentDTO struct {
	Id          string    `json:"id"`
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
}

type SummaryDTO struct {
	GeneratedAt   time.Time          `json:"generatedAt"`
	Today         int64              `json:"today"`
	Month         int64              `json:"month"`
	Week          WeekDTO            `json:"week"`
	TopCategories []CategoryTotalDTO `json:"topCategories"`
	Recent        []RecentDTO        `json:"recent"`
	Text          string             `json:"text"`
}

type Handler struct {
	service  Service
	renderer Renderer
	clock    utils.Clock
}

func NewHandler(service Service, renderer Renderer, clock utils.Clock) *Handler {
	return &Handler{service, renderer, clock}
}

// GetSummary godoc
// @Summary Spending report
// @Description Today, month and week totals with the top categories of the month
// @Tags Report
// @Produce json
// @Success 200 {object} SummaryDTO
// @Failure 403 {string} string "User not found"
// @Router /api/report [get]
// @Security XUserId
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	log.Debug("Building spending report")
	summary, err := handler.service.GetSummary(r.Context())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ExportMonth godoc
// @Summary Export a month as CSV
// @Tags Report
// @Produce text/csv
// @Param month query string false "Month in YYYY-MM format, current month when empty"
// @Success 200 {string} string "CSV"
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/report/export [get]
// @Security XUserId
func (handler *Handler) ExportMonth(w http.ResponseWriter, r *http.Request) {
	monthString := r.URL.Query().Get("month")
	month := handler.clock.Now()
	if monthString != "" {
		parsed, err := time.Parse("2006-01", monthString)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "month must be in YYYY-MM format")
			return
		}
		month = parsed
	}

	rows, err := handler.service.MonthRows(r.Context(), month.Year(), month.Month())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	csv, err := handler.renderer.RenderRows(rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"chitieu-%04d-%02d.csv\"", month.Year(), int(month.Month())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv export: %v", err)
	}
}

func WeekToDTO(status budget.Status) WeekDTO {
	return WeekDTO{
		Start:       status.WeekStart,
		End:         status.WeekEnd,
		Limit:       status.Limit,
		Spent:       status.Spent,
		Remaining:   status.Remaining,
		UsedPercent: status.UsedPercent,
		Level:       string(status.Level),
	}
}

func SummaryToDTO(summary Summary) SummaryDTO {
	top := make([]CategoryTotalDTO, 0, len(summary.TopCategories))
	for _, total := range summary.TopCategories {
		top = append(top, CategoryTotalDTO{
			Category:  total.Category,
			Amount:    total.Amount,
			Formatted: amount.Format(total.Amount),
		})
	}
	recent := make([]RecentDTO, 0, len(summary.Recent))
	for _, row := range summary.Recent {
		recent = append(recent, RecentDTO{
			Id:          row.ID,
			Time:        row.FullTime,
			Description: row.Description,
			Category:    row.Category,
			Amount:      row.Amount,
		})
	}
	return SummaryDTO{
		GeneratedAt:   summary.GeneratedAt,
		Today:         summary.Today,
		Month:         summary.Month,
		Week:          WeekToDTO(summary.Week),
		TopCategories: top,
		Recent:        recent,
		Text:          Text(summary),
	}
}
