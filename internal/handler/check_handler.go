package handler

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"plagrelay/internal/domain"
	"plagrelay/internal/reportexport"
	"plagrelay/internal/service"
)

// multipartOverhead is the allowance for form fields and boundaries on top
// of the file size limit.
const multipartOverhead = 1 << 20

// CheckHandler handles plagiarism and AI-detection endpoints.
type CheckHandler struct {
	checkService service.CheckService
	maxFileBytes int64
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(checkService service.CheckService, maxFileBytes int64) *CheckHandler {
	if maxFileBytes <= 0 || maxFileBytes > domain.MaxFileSizeBytes {
		maxFileBytes = domain.MaxFileSizeBytes
	}
	return &CheckHandler{checkService: checkService, maxFileBytes: maxFileBytes}
}

// SubmitPlagiarism handles POST /api/plagiarism/submit
// @Summary Submit text or a file for a plagiarism check
// @Description Accepts multipart form, url-encoded form or JSON. Files require the organization API.
// @Tags plagiarism
// @Accept multipart/form-data,application/x-www-form-urlencoded,json
// @Produce json
// @Param text formData string false "Text to check (at least 80 characters)"
// @Param language formData string false "Text language" default(en)
// @Param useOrgApi formData boolean false "Use the organization API"
// @Param file formData file false "Document to check (max 10MB)"
// @Success 200 {object} Response{data=domain.SubmitResult} "Submission accepted"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Server not configured"
// @Failure 502 {object} ErrorResponseBody "Provider unreachable"
// @Router /plagiarism/submit [post]
func (h *CheckHandler) SubmitPlagiarism(c *gin.Context) {
	h.submit(c, domain.CheckKindPlagiarism)
}

// SubmitAI handles POST /api/ai/submit
// @Summary Submit text or a file for AI-generated content detection
// @Description Accepts multipart form, url-encoded form or JSON. Files require the organization API.
// @Tags ai-detection
// @Accept multipart/form-data,application/x-www-form-urlencoded,json
// @Produce json
// @Param text formData string false "Text to check (at least 80 characters)"
// @Param group_id formData string false "Provider group for single-user submissions"
// @Param useOrgApi formData boolean false "Use the organization API"
// @Param file formData file false "Document to check (max 10MB)"
// @Success 200 {object} Response{data=domain.SubmitResult} "Submission accepted"
// @Failure 400 {object} ErrorResponseBody "Invalid input"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Server not configured"
// @Failure 502 {object} ErrorResponseBody "Provider unreachable"
// @Router /ai/submit [post]
func (h *CheckHandler) SubmitAI(c *gin.Context) {
	h.submit(c, domain.CheckKindAIDetection)
}

// PlagiarismStatus handles GET /api/plagiarism/status/:id
// @Summary Get plagiarism check status
// @Description Polls the provider and normalizes the status. Use the text id from the submission, never the report id.
// @Tags plagiarism
// @Produce json
// @Param id path string true "Text ID from the submission response"
// @Param useOrgApi query boolean false "Use the organization API"
// @Param maxRetries query int false "Maximum attempts" default(5)
// @Param delay query int false "Delay between attempts in milliseconds" default(2000)
// @Param wait query boolean false "Keep polling while the check is processing"
// @Success 200 {object} Response{data=domain.StatusResult} "Normalized status"
// @Failure 400 {object} ErrorResponseBody "Invalid ID format"
// @Failure 403 {object} ErrorResponseBody "Wrong identifier"
// @Failure 409 {object} ErrorResponseBody "Still processing after all attempts"
// @Failure 422 {object} ErrorResponseBody "Check failed upstream"
// @Failure 502 {object} ErrorResponseBody "Provider error"
// @Router /plagiarism/status/{id} [get]
func (h *CheckHandler) PlagiarismStatus(c *gin.Context) {
	h.status(c, domain.CheckKindPlagiarism)
}

// AIStatus handles GET /api/ai/status/:id
// @Summary Get AI-detection status
// @Tags ai-detection
// @Produce json
// @Param id path string true "Identifier from the submission response"
// @Param useOrgApi query boolean false "Use the organization API"
// @Param maxRetries query int false "Maximum attempts" default(5)
// @Param delay query int false "Delay between attempts in milliseconds" default(2000)
// @Param wait query boolean false "Keep polling while the check is processing"
// @Success 200 {object} Response{data=domain.StatusResult} "Normalized status"
// @Failure 400 {object} ErrorResponseBody "Invalid ID format"
// @Failure 409 {object} ErrorResponseBody "Still processing after all attempts"
// @Failure 502 {object} ErrorResponseBody "Provider error"
// @Router /ai/status/{id} [get]
func (h *CheckHandler) AIStatus(c *gin.Context) {
	h.status(c, domain.CheckKindAIDetection)
}

// PlagiarismReport handles GET /api/plagiarism/report/:id
// @Summary Get the plagiarism report
// @Description Fetches the report by text id. Call after the status reports completed.
// @Tags plagiarism
// @Produce json
// @Param id path string true "Text ID from the submission response"
// @Param useOrgApi query boolean false "Use the organization API"
// @Param maxRetries query int false "Maximum attempts" default(5)
// @Param delay query int false "Delay between attempts in milliseconds" default(2000)
// @Success 200 {object} Response{data=domain.ReconciledReport} "Report"
// @Failure 400 {object} ErrorResponseBody "Invalid ID format"
// @Failure 403 {object} ErrorResponseBody "Wrong identifier"
// @Failure 502 {object} ErrorResponseBody "Provider error"
// @Router /plagiarism/report/{id} [get]
func (h *CheckHandler) PlagiarismReport(c *gin.Context) {
	h.report(c, domain.CheckKindPlagiarism)
}

// AIReport handles GET /api/ai/report/:id
// @Summary Get the AI-detection report
// @Tags ai-detection
// @Produce json
// @Param id path string true "Identifier from the submission response"
// @Param useOrgApi query boolean false "Use the organization API"
// @Param maxRetries query int false "Maximum attempts" default(5)
// @Param delay query int false "Delay between attempts in milliseconds" default(2000)
// @Success 200 {object} Response{data=domain.ReconciledReport} "Report"
// @Failure 400 {object} ErrorResponseBody "Invalid ID format"
// @Failure 502 {object} ErrorResponseBody "Provider error"
// @Router /ai/report/{id} [get]
func (h *CheckHandler) AIReport(c *gin.Context) {
	h.report(c, domain.CheckKindAIDetection)
}

// ExportPlagiarismReport handles GET /api/plagiarism/report/:id/export
// @Summary Export the plagiarism report as CSV or XLSX
// @Tags plagiarism
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Text ID from the submission response"
// @Param format query string false "csv or xlsx" default(csv)
// @Param useOrgApi query boolean false "Use the organization API"
// @Success 200 {file} file "Report export"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or format"
// @Failure 502 {object} ErrorResponseBody "Provider error"
// @Router /plagiarism/report/{id}/export [get]
func (h *CheckHandler) ExportPlagiarismReport(c *gin.Context) {
	h.export(c, domain.CheckKindPlagiarism)
}

// ExportAIReport handles GET /api/ai/report/:id/export
// @Summary Export the AI-detection report as CSV or XLSX
// @Tags ai-detection
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Identifier from the submission response"
// @Param format query string false "csv or xlsx" default(csv)
// @Param useOrgApi query boolean false "Use the organization API"
// @Success 200 {file} file "Report export"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or format"
// @Failure 502 {object} ErrorResponseBody "Provider error"
// @Router /ai/report/{id}/export [get]
func (h *CheckHandler) ExportAIReport(c *gin.Context) {
	h.export(c, domain.CheckKindAIDetection)
}

func (h *CheckHandler) submit(c *gin.Context, kind domain.CheckKind) {
	input, err := h.bindSubmission(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	input.CheckKind = kind

	result, err := h.checkService.Submit(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CheckHandler) status(c *gin.Context, kind domain.CheckKind) {
	opts, err := parseQueryOptions(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.checkService.GetStatus(c.Request.Context(), &service.StatusInput{
		CheckKind:       kind,
		ID:              c.Param("id"),
		UseOrganization: opts.useOrganization,
		MaxAttempts:     opts.maxAttempts,
		Delay:           opts.delay,
		Wait:            opts.wait,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CheckHandler) report(c *gin.Context, kind domain.CheckKind) {
	report, err := h.fetchReport(c, kind)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

func (h *CheckHandler) export(c *gin.Context, kind domain.CheckKind) {
	format, err := reportexport.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}
	report, err := h.fetchReport(c, kind)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reportexport.Write(&buf, format, report); err != nil {
		log.Error().Err(err).
			Str("identifier", report.Identifier).
			Str("format", string(format)).
			Msg("checkHandler.export: rendering failed")
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to render report export")
		return
	}

	filename := reportexport.BuildFilename(report, format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *CheckHandler) fetchReport(c *gin.Context, kind domain.CheckKind) (*domain.ReconciledReport, error) {
	opts, err := parseQueryOptions(c)
	if err != nil {
		return nil, err
	}
	return h.checkService.GetReport(c.Request.Context(), &service.ReportInput{
		CheckKind:       kind,
		ID:              c.Param("id"),
		UseOrganization: opts.useOrganization,
		MaxAttempts:     opts.maxAttempts,
		Delay:           opts.delay,
	})
}

func (h *CheckHandler) bindSubmission(c *gin.Context) (*service.SubmitInput, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileBytes+multipartOverhead)

	input := &service.SubmitInput{}
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if isBodyTooLarge(err) {
				return nil, domain.ErrFileTooLarge
			}
			return nil, domain.NewValidationError("invalid JSON body: %s", err.Error())
		}
		input.Text = req.Text
		input.Language = req.Language
		input.GroupID = req.GroupID
		input.UseOrganization = req.UseOrgAPI
	} else {
		if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
			if err := c.Request.ParseMultipartForm(h.maxFileBytes); err != nil {
				if isBodyTooLarge(err) {
					return nil, domain.ErrFileTooLarge
				}
				return nil, domain.NewValidationError("invalid multipart body: %s", err.Error())
			}
		}
		input.Text = c.PostForm("text")
		input.Language = c.PostForm("language")
		input.GroupID = c.PostForm("group_id")
		input.UseOrganization = parseBool(c.PostForm("useOrgApi"))

		file, err := h.readUpload(c)
		if err != nil {
			return nil, err
		}
		input.File = file
	}

	if q, ok := c.GetQuery("useOrgApi"); ok {
		input.UseOrganization = parseBool(q)
	}
	return input, nil
}

func (h *CheckHandler) readUpload(c *gin.Context) (*domain.FilePayload, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		if isBodyTooLarge(err) {
			return nil, domain.ErrFileTooLarge
		}
		return nil, domain.NewValidationError("invalid file upload: %s", err.Error())
	}
	if header.Size > h.maxFileBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := readFileHeader(header, h.maxFileBytes)
	if err != nil {
		return nil, err
	}
	return &domain.FilePayload{
		Name:        header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), data),
		Data:        data,
	}, nil
}

func readFileHeader(header *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, domain.NewValidationError("cannot open uploaded file: %s", err.Error())
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, domain.NewValidationError("cannot read uploaded file: %s", err.Error())
	}
	if int64(len(data)) > limit {
		return nil, domain.ErrFileTooLarge
	}
	return data, nil
}

// detectContentType keeps a specific client-declared type and sniffs the
// content otherwise.
func detectContentType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge)
}

type queryOptions struct {
	useOrganization bool
	maxAttempts     int
	delay           *time.Duration
	wait            bool
}

func parseQueryOptions(c *gin.Context) (*queryOptions, error) {
	opts := &queryOptions{
		useOrganization: parseBool(c.Query("useOrgApi")),
		wait:            parseBool(c.Query("wait")),
	}
	if raw := c.Query("maxRetries"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, domain.NewValidationError("maxRetries must be a positive integer")
		}
		opts.maxAttempts = n
	}
	if raw := c.Query("delay"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, domain.NewValidationError("delay must be a non-negative number of milliseconds")
		}
		d := time.Duration(ms) * time.Millisecond
		opts.delay = &d
	}
	return opts, nil
}

func parseBool(raw string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && b
}
