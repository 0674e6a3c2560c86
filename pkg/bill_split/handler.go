package bill_split

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chitieu/chitieu/internal/rest"
	"github.com/chitieu/chitieu/pkg/amount"
	log "github.com/sirupsen/logrus"
)

type SplitRequestDTO struct {
	// Amount accepts the same notations as expense messages, e.g. "500k" or "1.2tr".
	Amount string `json:"amount"`
	People int    `json:"people,omitempty"`
	// Names is a comma separated list. When set, People is ignored.
	Names string `json:"names,omitempty"`
}

type ShareDTO struct {
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	Remainder int64  `json:"remainder,omitempty"`
}

type BillDTO struct {
	Total     int64      `json:"total"`
	People    int        `json:"people"`
	PerPerson int64      `json:"perPerson"`
	Remainder int64      `json:"remainder"`
	Shares    []ShareDTO `json:"shares,omitempty"`
	Text      string     `json:"text"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Split godoc
// @Summary Split a bill
// @Description Split an amount evenly between a number of people or a list of names
// @Tags BillSplit
// @Accept json
// @Produce json
// @Param split body SplitRequestDTO true "Bill to split"
// @Success 200 {object} BillDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/split [post]
func (handler *Handler) Split(w http.ResponseWriter, r *http.Request) {
	var request SplitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	total, err := amount.Parse(request.Amount)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid amount", err.Error())
		return
	}

	var bill Bill
	if request.Names != "" {
		bill, err = SplitByNames(total, ParseNames(request.Names))
	} else {
		bill, err = SplitEvenly(total, request.People)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidBill) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid bill", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debugf("split %d between %d people", bill.Total, bill.People)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BillToDTO(bill)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func BillToDTO(bill Bill) BillDTO {
	var shares []ShareDTO
	for _, share := range bill.Shares {
		shares = append(shares, ShareDTO{Name: share.Name, Amount: share.Amount, Remainder: share.Remainder})
	}
	return BillDTO{
		Total:     bill.Total,
		People:    bill.People,
		PerPerson: bill.PerPerson,
		Remainder: bill.Remainder,
		Shares:    shares,
		Text:      bill.Text(),
	}
}
