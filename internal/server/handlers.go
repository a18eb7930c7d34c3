package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ItemRequest is the payload accepted by POST /items/.
type ItemRequest struct {
	// Name identifies the item.
	Name string `json:"name" validate:"required"`
	// Description is free-form and optional.
	Description *string `json:"description,omitempty"`
	// Price must be strictly positive.
	Price float64 `json:"price" validate:"required,gt=0"`
	// Tax is an optional surcharge.
	Tax *float64 `json:"tax,omitempty"`
}

// ItemResponse echoes the accepted name and price back unchanged.
type ItemResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, ItemResponse{Name: req.Name, Price: req.Price})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validationMessage flattens validator errors into one field-level message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts[i] = fmt.Sprintf("%s is required", field)
		case "gt":
			parts[i] = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		default:
			parts[i] = fmt.Sprintf("%s failed %s validation", field, fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
