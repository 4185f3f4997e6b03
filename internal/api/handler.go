package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/rviscarra/snapcompose/internal/encoding"
	"github.com/rviscarra/snapcompose/internal/events"
	"github.com/rviscarra/snapcompose/internal/imaging"
	"github.com/rviscarra/snapcompose/internal/rdisplay"
	"github.com/rviscarra/snapcompose/internal/store"
	"go.uber.org/zap"
)

// Services are the collaborators the HTTP handler drives
type Services struct {
	Display rdisplay.Service
	Store   *store.Store
	Events  *events.Hub
	Encoder encoding.Encoder

	ThumbnailMaxWidth  uint
	ThumbnailMaxHeight uint

	Logger *zap.Logger
}

// selfTestRegion is the fixed region captured by POST /selftest/region
var selfTestRegion = rdisplay.Region{X: 100, Y: 100, Width: 200, Height: 200}

type handler struct {
	Services
}

// MakeHandler returns an HTTP handler for the capture and composition service
func MakeHandler(svc Services) http.Handler {
	if svc.Logger == nil {
		svc.Logger = zap.NewNop()
	}
	h := &handler{Services: svc}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /monitors", h.monitors)
	mux.HandleFunc("POST /capture", h.capture)
	mux.HandleFunc("GET /screenshots", h.listScreenshots)
	mux.HandleFunc("GET /screenshots/{id}", h.getScreenshot)
	mux.HandleFunc("DELETE /screenshots/{id}", h.deleteScreenshot)
	mux.HandleFunc("POST /compose", h.compose)
	mux.HandleFunc("POST /selftest/fullscreen", h.selfTestFullScreen)
	mux.HandleFunc("POST /selftest/region", h.selfTestRegion)
	if svc.Events != nil {
		mux.Handle("GET /events", svc.Events)
	}
	return mux
}

func (h *handler) monitors(w http.ResponseWriter, r *http.Request) {
	monitors, err := h.Display.Monitors()
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, monitorsResponse{Monitors: monitors})
}

func (h *handler) capture(w http.ResponseWriter, r *http.Request) {
	req := captureRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, r, badRequest(err))
		return
	}
	payload, err := h.captureAndStore(req.region())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, payload)
}

// captureAndStore captures region, stores it and notifies event subscribers
func (h *handler) captureAndStore(region rdisplay.Region) (screenshotPayload, error) {
	img, err := h.Display.CaptureRegion(region)
	if err != nil {
		return screenshotPayload{}, fmt.Errorf("failed to capture region: %w", err)
	}
	data, err := encoding.EncodeDataURL(h.Encoder, img)
	if err != nil {
		return screenshotPayload{}, err
	}
	shot := h.Store.Add(img, region)
	h.Logger.Info("Captured screenshot",
		zap.String("id", shot.ID),
		zap.Int("width", shot.Width),
		zap.Int("height", shot.Height))

	h.publish(events.TypeScreenshotCaptured, newScreenshotPayload(shot))
	payload := newScreenshotPayload(shot)
	payload.Data = data
	return payload, nil
}

func (h *handler) listScreenshots(w http.ResponseWriter, r *http.Request) {
	shots := h.Store.List()
	payloads := make([]screenshotPayload, len(shots))
	for i, shot := range shots {
		payloads[i] = newScreenshotPayload(shot)
		thumb, err := h.thumbnail(shot.Image)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		payloads[i].Thumbnail = thumb
	}
	h.writeJSON(w, http.StatusOK, screenshotsResponse{Screenshots: payloads})
}

func (h *handler) thumbnail(img *image.RGBA) (string, error) {
	small, err := imaging.Resize(img, h.ThumbnailMaxWidth, h.ThumbnailMaxHeight)
	if err != nil {
		return "", err
	}
	return encoding.EncodeDataURL(h.Encoder, small)
}

func (h *handler) getScreenshot(w http.ResponseWriter, r *http.Request) {
	shot, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	payload := newScreenshotPayload(shot)
	if payload.Data, err = encoding.EncodeDataURL(h.Encoder, shot.Image); err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *handler) deleteScreenshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.Store.Delete(id) {
		h.publish(events.TypeScreenshotDeleted, map[string]string{"id": id})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) compose(w http.ResponseWriter, r *http.Request) {
	req := composeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, r, badRequest(err))
		return
	}

	// The store lock is released before composing.
	images, missing := h.Store.Snapshot(req.IDs)
	if len(missing) > 0 {
		h.Logger.Warn("Screenshots not found for composition",
			zap.Strings("missing", missing),
			zap.Int("found", len(images)))
	}

	composite, err := imaging.ComposeNamed(images, req.Layout)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("image composition failed: %w", err))
		return
	}
	if composite, err = imaging.Bound(composite, req.MaxWidth, req.MaxHeight); err != nil {
		h.handleError(w, r, err)
		return
	}

	data, err := encoding.EncodeDataURL(h.Encoder, composite)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.Logger.Info("Composed screenshots",
		zap.String("layout", req.Layout),
		zap.Int("images", len(images)),
		zap.Int("width", composite.Bounds().Dx()),
		zap.Int("height", composite.Bounds().Dy()))
	h.writeJSON(w, http.StatusOK, composeResponse{
		Data:    data,
		Width:   composite.Bounds().Dx(),
		Height:  composite.Bounds().Dy(),
		Missing: missing,
	})
}

func (h *handler) selfTestFullScreen(w http.ResponseWriter, r *http.Request) {
	img, err := h.Display.CaptureFullScreen()
	if err != nil {
		h.handleError(w, r, fmt.Errorf("screen capture test failed: %w", err))
		return
	}
	h.writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Screen capture test successful (%dx%d)", img.Bounds().Dx(), img.Bounds().Dy()),
	})
}

func (h *handler) selfTestRegion(w http.ResponseWriter, r *http.Request) {
	payload, err := h.captureAndStore(selfTestRegion)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("region capture test failed: %w", err))
		return
	}
	h.writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Region capture test successful! Screenshot ID: %s", payload.ID),
	})
}

func (h *handler) publish(eventType string, payload interface{}) {
	if h.Events == nil {
		return
	}
	h.Events.Publish(events.Event{Type: eventType, Payload: payload})
}

// errBadRequest marks malformed request bodies
var errBadRequest = errors.New("malformed request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", errBadRequest, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, rdisplay.ErrInvalidRegion),
		errors.Is(err, imaging.ErrEmptyInput),
		errors.Is(err, imaging.ErrUnsupportedLayout),
		errors.Is(err, imaging.ErrEmptyCanvas),
		errors.Is(err, imaging.ErrInvalidBounds):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	h.Logger.Error("Request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		h.Logger.Error("Can't marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
