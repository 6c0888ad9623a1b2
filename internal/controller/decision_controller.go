package controller

import (
	"math/rand/v2"
	"net/http"
	"strconv"
)

// DecisionController serves GET /totallyLegitDecisionApi, the stand-in for a
// real payment authorization provider. It returns a bare random integer; the
// caller settles on its parity.
type DecisionController struct{}

func NewDecisionController() *DecisionController {
	return &DecisionController{}
}

func (h *DecisionController) Decide(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(strconv.Itoa(rand.IntN(1000))))
}
