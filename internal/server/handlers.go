package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/orchestrator"
	"github.com/goliatone/go-doublefield/pkg/render"
)

const maxBodyBytes = 1 << 20

type formatterInfo struct {
	formatter.Definition
	DefaultSettings field.Settings `json:"default_settings"`
	SettingsForm    map[string]any `json:"settings_form"`
	Summary         []string       `json:"summary"`
}

type summaryResponse struct {
	ID      string         `json:"id"`
	Display string         `json:"display,omitempty"`
	Summary []string       `json:"summary"`
	Values  field.Settings `json:"settings"`
}

type displayInfo struct {
	Key       string         `json:"key"`
	Formatter string         `json:"formatter"`
	Settings  field.Settings `json:"settings"`
}

// RenderRequest is the POST /render body.
type RenderRequest struct {
	Formatter string         `json:"formatter,omitempty"`
	Display   string         `json:"display,omitempty"`
	FieldType string         `json:"field_type,omitempty"`
	Settings  field.Settings `json:"settings,omitempty"`
	Items     []field.Item   `json:"items"`
	Renderer  string         `json:"renderer,omitempty"`
	Locale    string         `json:"locale,omitempty"`
	Theme     string         `json:"theme,omitempty"`
	Variant   string         `json:"variant,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listFormatters(w http.ResponseWriter, r *http.Request) {
	defs := s.formatters.List()
	if fieldType := r.URL.Query().Get("field_type"); fieldType != "" {
		defs = s.formatters.ForFieldType(fieldType)
	}
	writeJSON(w, http.StatusOK, defs)
}

func (s *Server) getFormatter(w http.ResponseWriter, r *http.Request) {
	f, err := s.formatters.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formatterInfo{
		Definition:      f.Definition(),
		DefaultSettings: f.DefaultSettings(),
		SettingsForm:    f.SettingsForm(&formatter.FormState{}).Descriptor(),
		Summary:         f.SettingsSummary(),
	})
}

// formatterSummary binds the formatter to a stored display when ?display= is
// given, otherwise summarises the defaults.
func (s *Server) formatterSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f, err := s.formatters.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := summaryResponse{ID: id}
	if raw := r.URL.Query().Get("display"); raw != "" {
		if s.displays == nil {
			s.writeError(w, fmt.Errorf("%w: %q", display.ErrDisplayNotFound, raw))
			return
		}
		key, err := display.ParseKey(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		d, ok := s.displays.Get(key)
		if !ok {
			s.writeError(w, fmt.Errorf("%w: %q", display.ErrDisplayNotFound, key))
			return
		}
		if d.Formatter != id {
			writeJSON(w, http.StatusConflict, errorResponse{Error: fmt.Sprintf("display %q uses formatter %q", key, d.Formatter)})
			return
		}
		f = f.WithSettings(d.Settings)
		resp.Display = key.String()
	}

	resp.Summary = f.SettingsSummary()
	resp.Values = f.Settings()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listDisplays(w http.ResponseWriter, _ *http.Request) {
	out := []displayInfo{}
	if s.displays != nil {
		for _, key := range s.displays.Keys() {
			d, _ := s.displays.Get(key)
			out = append(out, displayInfo{Key: key.String(), Formatter: d.Formatter, Settings: d.Settings})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}

	req := orchestrator.Request{
		Formatter:     body.Formatter,
		FieldType:     body.FieldType,
		Settings:      body.Settings,
		Items:         field.NewItemList(body.Items...),
		Renderer:      body.Renderer,
		ThemeName:     body.Theme,
		ThemeVariant:  body.Variant,
		RenderOptions: render.RenderOptions{Locale: body.Locale, Translator: s.translator},
	}
	if body.Display != "" {
		key, err := display.ParseKey(body.Display)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.Display = &key
	} else if len(body.Settings) > 0 {
		if err := s.validateSettings(body); err != nil {
			s.writeError(w, err)
			return
		}
	}

	res, err := s.orch.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("X-Formatter", res.Formatter.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

type validationError struct {
	err error
}

func (e validationError) Error() string { return "invalid settings: " + e.err.Error() }
func (e validationError) Unwrap() error { return e.err }

func (s *Server) validateSettings(body RenderRequest) error {
	var (
		f   formatter.Formatter
		err error
	)
	if body.Formatter != "" {
		f, err = s.formatters.Get(body.Formatter)
		if err != nil {
			return err
		}
	} else {
		fieldType := body.FieldType
		if fieldType == "" {
			fieldType = field.TypeDoubleField
		}
		var ok bool
		if f, ok = s.formatters.Resolve(fieldType); !ok {
			// Generate reports the missing formatter.
			return nil
		}
	}
	schema := formatter.SettingsSchema(f.DefaultSettings())
	if err := formatter.ValidateSettings(schema, body.Settings); err != nil {
		return validationError{err: err}
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var invalid validationError
	switch {
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, formatter.ErrFormatterNotFound),
		errors.Is(err, render.ErrRendererNotFound),
		errors.Is(err, display.ErrDisplayNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Errorw("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
