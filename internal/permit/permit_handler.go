package permit

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"go-silpa/internal/attachment"
	"go-silpa/internal/shared/apperror"
	"go-silpa/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const maxAttachmentSize = 10 << 20 // 10 MiB per berkas

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("permit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permit.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var invalid *DraftInvalidError
	if errors.As(err, &invalid) {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, invalid.Error(), invalid.Failures)
		return
	}

	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("permit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// collectUploads membuka seluruh file part "attachments" dan mengembalikan
// closer yang wajib dipanggil setelah service selesai membaca.
func collectUploads(form *multipart.Form) ([]attachment.Upload, func(), error) {
	headers := form.File["attachments"]
	uploads := make([]attachment.Upload, 0, len(headers))
	var opened []multipart.File

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, fh := range headers {
		if fh.Size > maxAttachmentSize {
			closeAll()
			return nil, nil, errors.New("ukuran lampiran melebihi batas 10 MB")
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		uploads = append(uploads, attachment.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return uploads, closeAll, nil
}

func (h *Handler) finalizeIdempotency(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	if ck, ok := c.Get("idempotency_cache_key"); ok {
		if key, ok := ck.(string); ok && key != "" {
			if payload, err := json.Marshal(resp); err == nil {
				_ = h.rdb.Set(c.Request.Context(), key, payload, 24*time.Hour).Err()
			}
		}
	}
}

func (h *Handler) releaseLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk, ok := c.Get("idempotency_lock_key"); ok {
		if key, ok := lk.(string); ok && key != "" {
			h.rdb.Del(c.Request.Context(), key)
		}
	}
}

func (h *Handler) Create(c *gin.Context) {
	defer h.releaseLock(c)

	studentID := c.GetString("student_id")
	unit := c.GetString("unit")
	h.logger.Debug("http create permit", zap.String("student_id", studentID))

	var req CreatePermitRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http create permit validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, apperror.MapValidationError(err).Error(), nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Form multipart tidak valid", err.Error())
		return
	}
	uploads, closeAll, err := collectUploads(form)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Lampiran tidak valid", err.Error())
		return
	}
	defer closeAll()

	resp, err := h.service.Create(c.Request.Context(), studentID, unit, req, uploads)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.finalizeIdempotency(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Revise(c *gin.Context) {
	defer h.releaseLock(c)

	studentID := c.GetString("student_id")
	id := c.Param("id")

	var req RevisePermitRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http revise permit validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, apperror.MapValidationError(err).Error(), nil)
		return
	}
	if raw := c.PostForm("sessions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Sessions); err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Field sessions bukan JSON valid", err.Error())
			return
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Form multipart tidak valid", err.Error())
		return
	}
	uploads, closeAll, err := collectUploads(form)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Lampiran tidak valid", err.Error())
		return
	}
	defer closeAll()

	resp, err := h.service.Revise(c.Request.Context(), studentID, id, req, uploads)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.finalizeIdempotency(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

// GetAll melayani dua peran: mahasiswa melihat pengajuannya sendiri, admin
// melihat seluruh pengajuan di unitnya (dengan filter status opsional).
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		resp []PermitResponse
		err  error
	)
	if studentID := c.GetString("student_id"); studentID != "" {
		resp, err = h.service.GetAllByStudent(ctx, studentID)
	} else {
		resp, err = h.service.GetAllByUnit(ctx, c.GetString("unit"), c.Query("status"))
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	// student_id kosong berarti admin; layanan melewatkan cek kepemilikan.
	resp, err := h.service.GetByID(ctx, c.GetString("student_id"), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RevisionDraft(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	studentID := c.GetString("student_id")

	resp, err := h.service.RevisionDraft(ctx, studentID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	reviewerID := c.GetString("user_id")

	resp, err := h.service.Approve(ctx, reviewerID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	reviewerID := c.GetString("user_id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject permit validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, apperror.MapValidationError(err).Error(), nil)
		return
	}

	resp, err := h.service.Reject(ctx, reviewerID, id, req.Note)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestRevision(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	reviewerID := c.GetString("user_id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http request revision validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, apperror.MapValidationError(err).Error(), nil)
		return
	}

	resp, err := h.service.RequestRevision(ctx, reviewerID, id, req.Note)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	studentID := c.GetString("student_id")

	if err := h.service.Delete(ctx, studentID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
