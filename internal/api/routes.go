package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Report routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/report", handler.GetReport).Methods("GET")
	api.HandleFunc("/report.xlsx", handler.GetSpreadsheet).Methods("GET")
	api.HandleFunc("/report.pdf", handler.GetPDF).Methods("GET")
	api.HandleFunc("/report/email", handler.EmailReport).Methods("POST")

	return r
}
