package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/kdduha/plantdoc/internal/client"
	"github.com/kdduha/plantdoc/internal/intake"
	"github.com/kdduha/plantdoc/internal/render"
	"github.com/kdduha/plantdoc/internal/ui"
)

const (
	// maxUploadBody bounds the whole form; larger single files are still
	// read far enough to be rejected by size.
	maxUploadBody   = 4 * intake.MaxFileSize
	multipartMemory = 32 << 20
)

// StateResponse is the JSON form of a session's page state.
type StateResponse struct {
	ui.State
	BadgeClass     string `json:"badge_class,omitempty"`
	IndicatorClass string `json:"indicator_class"`
}

func newStateResponse(s ui.State) StateResponse {
	resp := StateResponse{
		State:          s,
		IndicatorClass: s.Status.IndicatorClass(),
	}
	if s.Result != nil {
		resp.BadgeClass = s.Result.BadgeClass()
	}
	return resp
}

// ConsoleHandler serves the page and the form posts that drive it.
type ConsoleHandler struct {
	logger         *log.Logger
	advisorEnabled bool
}

func NewConsoleHandler(logger *log.Logger, advisorEnabled bool) *ConsoleHandler {
	return &ConsoleHandler{
		logger:         logger,
		advisorEnabled: advisorEnabled,
	}
}

// Index godoc
// @Summary Diagnosis page
// @Description Server-rendered page for the caller's session.
// @Tags console
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *ConsoleHandler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.Page(&buf, controllerFrom(r).Snapshot(), render.Options{AdvisorEnabled: h.advisorEnabled}); err != nil {
		h.logger.Printf("render error: %v\n", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Upload godoc
// @Summary Upload a leaf photo
// @Description Validates the first file of the form and sends it to the classifier. Browsers are redirected back to the page; JSON clients get the new state.
// @Tags console
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Leaf photo (JPG, PNG, GIF up to 16MB)"
// @Param source formData string false "drop when the file came from the drop zone"
// @Success 200 {object} StateResponse
// @Failure 400 {string} string
// @Failure 409 {object} StateResponse
// @Failure 413 {object} StateResponse
// @Failure 422 {object} StateResponse
// @Failure 502 {object} StateResponse
// @Router /upload [post]
func (h *ConsoleHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctl.ShowError(intake.MsgTooLarge)
			h.respond(w, r, ctl, http.StatusRequestEntityTooLarge, "/#upload")
			return
		}
		http.Error(w, fmt.Sprintf("invalid form: %s", err), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var files []intake.File
	if headers := r.MultipartForm.File["file"]; len(headers) > 0 {
		f, err := readFile(headers[0])
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to read file: %s", err), http.StatusBadRequest)
			return
		}
		files = append(files, f)
	}

	var err error
	if r.FormValue("source") == "drop" {
		err = ctl.HandleDrop(r.Context(), files)
	} else {
		err = ctl.HandleFileSelect(r.Context(), files)
	}

	target := "/#upload"
	if ctl.Snapshot().ResultsVisible {
		target = "/#results"
	}
	h.respond(w, r, ctl, uploadStatus(err), target)
}

func uploadStatus(err error) int {
	var (
		validationErr *intake.ValidationError
		appErr        *client.AppError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ui.ErrUploadInFlight):
		return http.StatusConflict
	case errors.As(err, &validationErr), errors.As(err, &appErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// readFile loads a form file. Files over the size limit are described
// but not read; validation rejects them.
func readFile(fh *multipart.FileHeader) (intake.File, error) {
	f := intake.File{
		Name: fh.Filename,
		Type: fh.Header.Get("Content-Type"),
		Size: fh.Size,
	}
	if fh.Size > intake.MaxFileSize {
		return f, nil
	}

	src, err := fh.Open()
	if err != nil {
		return f, err
	}
	defer src.Close()

	if f.Data, err = io.ReadAll(src); err != nil {
		return f, err
	}
	return f, nil
}

// Reset godoc
// @Summary Analyze another image
// @Tags console
// @Produce json
// @Success 200 {object} StateResponse
// @Router /reset [post]
func (h *ConsoleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)
	ctl.Reset()
	h.respond(w, r, ctl, http.StatusOK, "/#upload")
}

// Train godoc
// @Summary Train the model
// @Description Blocks until the classifier finishes training.
// @Tags console
// @Produce json
// @Success 200 {object} StateResponse
// @Failure 409 {object} StateResponse
// @Failure 502 {object} StateResponse
// @Router /train [post]
func (h *ConsoleHandler) Train(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)

	status := http.StatusOK
	if err := ctl.TrainModel(r.Context(), ctl.TrainButton()); err != nil {
		status = http.StatusBadGateway
		if errors.Is(err, ui.ErrTrainingInFlight) {
			status = http.StatusConflict
		}
	}
	h.respond(w, r, ctl, status, "/#home")
}

// Dismiss godoc
// @Summary Close a notification
// @Tags console
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} StateResponse
// @Failure 404 {object} StateResponse
// @Router /notifications/{id}/dismiss [post]
func (h *ConsoleHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)

	status := http.StatusOK
	if !ctl.Dismiss(chi.URLParam(r, "id")) {
		status = http.StatusNotFound
	}
	h.respond(w, r, ctl, status, "/")
}

// ToggleMenu godoc
// @Summary Toggle the mobile menu
// @Tags console
// @Produce json
// @Success 200 {object} StateResponse
// @Router /nav/toggle [post]
func (h *ConsoleHandler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)
	ctl.ToggleMenu()
	h.respond(w, r, ctl, http.StatusOK, "/")
}

// ScrollToUpload godoc
// @Summary Jump to the upload section
// @Tags console
// @Produce json
// @Success 200 {object} StateResponse
// @Router /nav/upload [post]
func (h *ConsoleHandler) ScrollToUpload(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)
	ctl.ScrollToUpload()
	h.respond(w, r, ctl, http.StatusOK, "/#upload")
}

// Report godoc
// @Summary Download the diagnosis report
// @Tags console
// @Produce plain
// @Success 200 {string} string "Report attachment"
// @Failure 404 {object} StateResponse
// @Router /report [get]
func (h *ConsoleHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctl := controllerFrom(r)

	doc, err := ctl.DownloadReport()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ui.ErrNoResult) {
			status = http.StatusNotFound
		}
		h.respond(w, r, ctl, status, "/#upload")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

// respond sends the state to JSON clients and redirects browsers back to
// the page.
func (h *ConsoleHandler) respond(w http.ResponseWriter, r *http.Request, ctl *ui.Controller, status int, target string) {
	if wantsJSON(r) {
		writeJSON(w, status, newStateResponse(ctl.Snapshot()))
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
