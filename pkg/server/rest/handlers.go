package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type Handler struct {
	status  PrepStatus
	locator NodeLocator
}

// StatusResponse model info
//
//	@Description	model untuk status preparation run yang sedang/sudah jalan
type StatusResponse struct {
	Nodes                 int32 `json:"nodes"`
	OriginalEdges         int32 `json:"original_edges"`
	ComponentCount        int   `json:"component_count"`
	LargestComponentSize  int32 `json:"largest_component_size"`
	FullyConnected        bool  `json:"fully_connected"`
}

// Status
//
//	@Summary		status preparation run: node/edge count dan strongly connected component
//	@Description	status preparation run: node/edge count dan strongly connected component
//	@Tags			prep
//	@Produce		application/json
//	@Router			/prep/status [get]
//	@Success		200	{object}	StatusResponse
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	largest := h.status.LargestComponentSize()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &StatusResponse{
		Nodes:                h.status.Nodes(),
		OriginalEdges:        h.status.OriginalEdges(),
		ComponentCount:       h.status.ComponentCount(),
		LargestComponentSize: largest,
		FullyConnected:       h.status.Nodes() == 0 || largest == h.status.Nodes(),
	})
}

// LocateRequest model info
//
//	@Description	request body untuk mencari node terdekat dari sebuah titik
type LocateRequest struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

func (s *LocateRequest) Bind(r *http.Request) error {
	if s.Lat == 0 && s.Lon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// LocateResponse model info
//
//	@Description	response body untuk mencari node terdekat dari sebuah titik
type LocateResponse struct {
	NodeID     int32   `json:"node_id"`
	DistanceKM float64 `json:"distance_km"`
}

// Locate
//
//	@Summary		cari node terdekat dari sebuah lat/lon
//	@Description	cari node terdekat dari sebuah lat/lon, dipakai buat resolve query point sebelum consult preparation graph
//	@Tags			prep
//	@Param			body	body	LocateRequest	true	"request body locate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/prep/locate [post]
//	@Success		200	{object}	LocateResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *Handler) Locate(w http.ResponseWriter, r *http.Request) {
	data := &LocateRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	nodeID, distKM, ok := h.locator.Nearest(data.Lat, data.Lon)
	if !ok {
		render.Render(w, r, ErrNodeNotFound(errors.New("no node ingested yet")))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &LocateResponse{NodeID: nodeID, DistanceKM: distKM})
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf(e.Translate(trans)))
	}
	return errs
}

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: 400, StatusText: "Invalid request.", ErrorText: err.Error()}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{Err: err, HTTPStatusCode: 400, StatusText: "Invalid request.", ErrorText: err.Error(), ErrValidation: vv}
}

func ErrNodeNotFound(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: 404, StatusText: "Not found.", ErrorText: err.Error()}
}
