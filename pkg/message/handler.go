package message

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chitieu/chitieu/internal/rest"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/chitieu/chitieu/pkg/ledger"
	"github.com/chitieu/chitieu/pkg/report"
	"github.com/chitieu/chitieu/pkg/user"
	log "github.com/sirupsen/logrus"
)

type MessageDTO struct {
	Text string `json:"text"`
}

type TransactionDTO struct {
	Id          string    `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	IsWasteful  bool      `json:"isWasteful"`
	Time        time.Time `json:"time"`
}

type ReplyDTO struct {
	Kind         string           `json:"kind"`
	Transactions []TransactionDTO `json:"transactions"`
	Budget       report.WeekDTO   `json:"budget"`
	WasteAlerts  []string         `json:"wasteAlerts,omitempty"`
	WasteWarning string           `json:"wasteWarning,omitempty"`
	Persisted    bool             `json:"persisted"`
	Text         string           `json:"text"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// PostMessage godoc
// @Summary Send a message
// @Description Record the expenses written in a free-form message, e.g. "cơm 35k, trà đá 5k"
// @Tags Message
// @Accept json
// @Produce json
// @Param message body MessageDTO true "Message"
// @Success 200 {object} ReplyDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 403 {string} string "User not found"
// @Router /api/message [post]
// @Security XUserId
func (handler *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var messageDTO MessageDTO
	if err := json.NewDecoder(r.Body).Decode(&messageDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := handler.service.Handle(r.Context(), messageDTO.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeReply(w, reply)
}

// Undo godoc
// @Summary Undo the last expense
// @Tags Message
// @Produce json
// @Success 200 {object} ReplyDTO
// @Failure 403 {string} string "User not found"
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/message/undo [post]
// @Security XUserId
func (handler *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	reply, err := handler.service.Undo(r.Context())
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyLedger) {
			rest.WriteError(w, http.StatusNotFound, "nothing to undo", "")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeReply(w, reply)
}

// WeeklyBudget godoc
// @Summary Current weekly budget
// @Tags Budget
// @Produce json
// @Success 200 {object} report.WeekDTO
// @Failure 403 {string} string "User not found"
// @Router /api/budget/weekly [get]
// @Security XUserId
func (handler *Handler) WeeklyBudget(w http.ResponseWriter, r *http.Request) {
	status, err := handler.service.WeeklyBudget(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report.WeekToDTO(status)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	log.Errorf("failed to handle message: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeReply(w http.ResponseWriter, reply Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ReplyToDTO(reply)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func TransactionToDTO(tx expense.Transaction) TransactionDTO {
	return TransactionDTO{
		Id:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Category:    string(tx.Category),
		IsWasteful:  tx.IsWasteful,
		Time:        tx.Timestamp,
	}
}

func ReplyToDTO(reply Reply) ReplyDTO {
	transactions := make([]TransactionDTO, 0, len(reply.Transactions))
	for _, tx := range reply.Transactions {
		transactions = append(transactions, TransactionToDTO(tx))
	}
	return ReplyDTO{
		Kind:         string(reply.Kind),
		Transactions: transactions,
		Budget:       report.WeekToDTO(reply.Budget),
		WasteAlerts:  reply.WasteAlerts,
		WasteWarning: reply.WasteWarning,
		Persisted:    reply.Persisted,
		Text:         reply.Text,
	}
}
