package server

import (
	"net/http"
	"time"

	"livin/internal/auth"
	"livin/internal/model"
	billSvc "livin/internal/service/bill"
	"livin/internal/utils/log"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type (
	billRequest struct {
		Title        string           `json:"title" validate:"required"`
		Description  string           `json:"description"`
		Amount       int64            `json:"amount" validate:"required,gt=0"`
		Category     string           `json:"category" validate:"required"`
		Date         *time.Time       `json:"date"`
		Status       string           `json:"status" validate:"omitempty,oneof=pending settled"`
		SplitType    string           `json:"splitType" validate:"omitempty,oneof=equal custom"`
		SplitBetween []string         `json:"splitBetween" validate:"required,min=1"`
		CustomSplits map[string]int64 `json:"customSplits"`
	}
)

func (s *HttpServer) HandleCreateBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		var req billRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Missing required fields.")
			return
		}

		b := &model.Bill{
			Title:        req.Title,
			Description:  req.Description,
			Amount:       req.Amount,
			PaidBy:       claims.UserID,
			Category:     req.Category,
			Date:         time.Now(),
			Status:       model.BillStatusPending,
			SplitType:    model.SplitTypeEqual,
			SplitBetween: req.SplitBetween,
			CustomSplits: req.CustomSplits,
		}
		if req.Date != nil {
			b.Date = *req.Date
		}
		if req.SplitType != "" {
			b.SplitType = req.SplitType
		}

		// A bill whose shares cannot be computed is never accepted.
		if _, err := billSvc.Shares(b); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := s.bills.Create(r.Context(), b); err != nil {
			log.Error("create bill failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while creating bill.")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"message": "Bill created successfully!",
			"bill":    b,
		})
	}
}

func (s *HttpServer) HandleMyBills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		bills, err := s.bills.ListForUser(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching bills.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"bills": bills, "total": len(bills)})
	}
}

func (s *HttpServer) HandleBillsCreatedByMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		bills, err := s.bills.ListPaidBy(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching created bills.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"bills": bills, "total": len(bills)})
	}
}

func (s *HttpServer) HandleGetBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.bills.GetByID(r.Context(), mux.Vars(r)["billId"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching bill.")
			return
		}
		if b == nil {
			respondError(w, http.StatusNotFound, "Bill not found.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"bill": b})
	}
}

func (s *HttpServer) HandleUpdateBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		b, err := s.bills.GetByID(r.Context(), mux.Vars(r)["billId"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while updating bill.")
			return
		}
		if b == nil {
			respondError(w, http.StatusNotFound, "Bill not found.")
			return
		}
		if b.PaidBy != claims.UserID {
			respondError(w, http.StatusForbidden, "You can only edit bills you created.")
			return
		}

		var req billRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Title != "" {
			b.Title = req.Title
		}
		if req.Description != "" {
			b.Description = req.Description
		}
		if req.Amount > 0 {
			b.Amount = req.Amount
		}
		if req.Category != "" {
			b.Category = req.Category
		}
		if req.Status != "" {
			b.Status = req.Status
		}
		if req.SplitType != "" {
			b.SplitType = req.SplitType
		}
		if len(req.SplitBetween) > 0 {
			b.SplitBetween = req.SplitBetween
		}
		if req.CustomSplits != nil {
			b.CustomSplits = req.CustomSplits
		}

		if _, err := billSvc.Shares(b); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := s.bills.Update(r.Context(), b.ID.Hex(), b); err != nil {
			log.Error("update bill failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while updating bill.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Bill updated successfully!",
			"bill":    b,
		})
	}
}

func (s *HttpServer) HandleDeleteBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		b, err := s.bills.GetByID(r.Context(), mux.Vars(r)["billId"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while deleting bill.")
			return
		}
		if b == nil {
			respondError(w, http.StatusNotFound, "Bill not found.")
			return
		}
		if b.PaidBy != claims.UserID {
			respondError(w, http.StatusForbidden, "You can only delete bills you created.")
			return
		}

		if err := s.bills.Delete(r.Context(), b.ID.Hex()); err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while deleting bill.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Bill deleted successfully."})
	}
}

func (s *HttpServer) HandleSettleBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.bills.GetByID(r.Context(), mux.Vars(r)["billId"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while settling bill.")
			return
		}
		if b == nil {
			respondError(w, http.StatusNotFound, "Bill not found.")
			return
		}

		if err := s.bills.SetStatus(r.Context(), b.ID.Hex(), model.BillStatusSettled); err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while settling bill.")
			return
		}

		b.Status = model.BillStatusSettled
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Bill marked as settled!",
			"bill":    b,
		})
	}
}

func (s *HttpServer) HandleBillShares() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.bills.GetByID(r.Context(), mux.Vars(r)["billId"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while computing shares.")
			return
		}
		if b == nil {
			respondError(w, http.StatusNotFound, "Bill not found.")
			return
		}

		shares, err := billSvc.Shares(b)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"shares": shares})
	}
}
