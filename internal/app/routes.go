package app

import (
	"net/http"

	"github.com/chitieu/chitieu/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Messages
	r.HandleFunc("/api/message", deps.MessageHandler.PostMessage).Methods("POST")
	r.HandleFunc("/api/message/undo", deps.MessageHandler.Undo).Methods("POST")

	// Budget
	r.HandleFunc("/api/budget/weekly", deps.MessageHandler.WeeklyBudget).Methods("GET")

	// Report
	r.HandleFunc("/api/report", deps.ReportHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/report/export", deps.ReportHandler.ExportMonth).Methods("GET")

	// Bill split
	r.HandleFunc("/api/split", deps.BillSplitHandler.Split).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
}
