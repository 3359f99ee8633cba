package permiterrors

import (
	"net/http"

	"go-silpa/internal/shared/apperror"
)

var (
	ErrInvalidStudentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid student id",
		http.StatusBadRequest,
	)
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"jenis izin tidak dikenal",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveDetail = apperror.New(
		apperror.CodeInvalidInput,
		"detail izin tidak sesuai dengan jenis izin",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPermitOverlap = apperror.New(
		apperror.CodeConflict,
		"sudah ada pengajuan izin pada rentang tanggal tersebut",
		http.StatusConflict,
	)
	ErrPermitNotFound = apperror.New(
		apperror.CodeNotFound,
		"pengajuan izin tidak ditemukan",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"pengajuan izin milik mahasiswa lain",
		http.StatusForbidden,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"transisi status pengajuan tidak diizinkan",
		http.StatusBadRequest,
	)
	ErrNotRevisable = apperror.New(
		apperror.CodeInvalidState,
		"pengajuan tidak berstatus butuh revisi",
		http.StatusBadRequest,
	)
	ErrNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"hanya pengajuan berstatus PENDING yang bisa dihapus",
		http.StatusBadRequest,
	)
	ErrReviewNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"alasan atau catatan wajib diisi",
		http.StatusBadRequest,
	)
	ErrAttachmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"lampiran bukti wajib diunggah",
		http.StatusBadRequest,
	)
)
