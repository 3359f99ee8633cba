package permit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"go-silpa/internal/attachment"
	"go-silpa/internal/draft"
	"go-silpa/internal/events"
	"go-silpa/internal/messaging/kafka"
	permiterrors "go-silpa/internal/permit/errors"
	"go-silpa/internal/shared/apperror"
	"go-silpa/internal/shared/contextutil"
	"go-silpa/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending       = "PENDING"
	StatusApproved      = "APPROVED"
	StatusRejected      = "REJECTED"
	StatusNeedsRevision = "NEEDS_REVISION"
)

const presignExpiry = 15 * time.Minute

// leaveDetailOptions memetakan jenis izin ke detail yang boleh dipilih.
// Daftar ini data konfigurasi institusi, bukan aturan formulir.
var leaveDetailOptions = map[string][]string{
	"SICK":                       {"Rawat Inap", "Rawat Jalan", "Isolasi Mandiri"},
	"INSTITUTIONAL_DISPENSATION": {"Delegasi Lomba", "Kegiatan Organisasi", "Tugas Institusi"},
	"IMPORTANT_REASON":           {"Keperluan Keluarga", "Ibadah", "Lainnya"},
}

// DraftInvalidError membawa seluruh kegagalan validasi formulir sekaligus,
// per field, agar klien bisa menandai semua input yang bermasalah.
type DraftInvalidError struct {
	Failures map[string]string
}

func (e *DraftInvalidError) Error() string { return "pengajuan izin belum lengkap" }

// CacheInvalidator membersihkan cache statistik setelah data izin berubah.
type CacheInvalidator interface {
	InvalidateUnit(ctx context.Context, unit string)
}

//go:generate mockgen -source=permit_service.go -destination=mock/permit_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, studentID, unit string, req CreatePermitRequest, files []attachment.Upload) (PermitResponse, error)
	Revise(ctx context.Context, studentID, id string, req RevisePermitRequest, files []attachment.Upload) (PermitResponse, error)
	GetAllByUnit(ctx context.Context, unit, status string) ([]PermitResponse, error)
	GetAllByStudent(ctx context.Context, studentID string) ([]PermitResponse, error)
	GetByID(ctx context.Context, actorStudentID, id string) (PermitResponse, error)
	RevisionDraft(ctx context.Context, studentID, id string) (RevisionDraftResponse, error)
	Approve(ctx context.Context, reviewerID, id string) (PermitResponse, error)
	Reject(ctx context.Context, reviewerID, id, reason string) (PermitResponse, error)
	RequestRevision(ctx context.Context, reviewerID, id, note string) (PermitResponse, error)
	Delete(ctx context.Context, studentID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	counter counter.Repository
	store   attachment.Store
	cache   CacheInvalidator
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	counterRepo counter.Repository,
	store attachment.Store,
	cache CacheInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("permit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permit.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		outbox:  outbox,
		counter: counterRepo,
		store:   store,
		cache:   cache,
		logger:  l,
	}
}

// log memilih logger request dari context bila ada, supaya field request_id
// dan user_id terbawa otomatis.
func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, studentID, unit string, req CreatePermitRequest, files []attachment.Upload) (PermitResponse, error) {
	s.log(ctx).Debug("create permit requested",
		zap.String("student_id", studentID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.Int("duration_days", req.DurationDays),
	)

	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return PermitResponse{}, permiterrors.ErrInvalidStudentID
	}
	if err := validateLeaveDetail(req.LeaveType, req.LeaveDetail); err != nil {
		return PermitResponse{}, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return PermitResponse{}, err
	}
	if len(files) == 0 {
		return PermitResponse{}, permiterrors.ErrAttachmentRequired
	}

	permitID := uuid.New()

	// Jalur pengajuan baru: seluruh sesi per hari ditandai dengan satu
	// pasangan mata kuliah/dosen; formulir divalidasi lewat aturan draft.
	d := draft.New()
	d.LeaveType = req.LeaveType
	d.LeaveDetail = req.LeaveDetail
	d.Description = req.Description
	d.SetWindow(startDate, req.DurationDays)
	for i := range d.Grid {
		date := d.Grid[i].Date
		for n := 1; n <= draft.SlotsPerDay; n++ {
			d.Grid.SetSlotSelection(date, n, true)
			d.Grid.SetSlotFields(date, n, &req.CourseName, &req.InstructorName)
		}
	}
	if req.AttendanceWeight != nil {
		d.Weight.SetManual(*req.AttendanceWeight)
	} else {
		d.SyncSuggestedWeight()
	}

	keys := make([]string, 0, len(files))
	for _, f := range files {
		keys = append(keys, attachmentKey(permitID.String(), f.Filename))
	}
	d.Attachments = keys

	if v := draft.Validate(d); !v.Valid() {
		s.log(ctx).Warn("create permit validation failed",
			zap.String("student_id", studentID),
			zap.Any("failures", v.Failures),
		)
		return PermitResponse{}, &DraftInvalidError{Failures: v.Failures}
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, studentID, d.StartDate, d.EndDate(), nil)
	if err != nil {
		s.log(ctx).Error("create permit overlap check failed", zap.Error(err))
		return PermitResponse{}, err
	}
	if overlap {
		return PermitResponse{}, permiterrors.ErrPermitOverlap
	}

	uploaded, err := s.uploadAll(ctx, permitID, keys, files)
	if err != nil {
		return PermitResponse{}, err
	}

	year := time.Now().UTC().Year()
	seq, err := s.counter.GetNextValue(ctx, fmt.Sprintf("permit:%d", year))
	if err != nil {
		s.cleanupObjects(ctx, keys)
		s.log(ctx).Error("create permit counter failed", zap.Error(err))
		return PermitResponse{}, err
	}
	reference := fmt.Sprintf("SILPA/%d/%04d", year, seq)

	p := &Permit{
		ID:               permitID,
		StudentID:        studentUUID,
		Unit:             unit,
		Reference:        reference,
		LeaveType:        d.LeaveType,
		LeaveDetail:      d.LeaveDetail,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate(),
		TotalDays:        d.DurationDays,
		Description:      d.Description,
		AttendanceWeight: d.Weight.Value(),
		Status:           StatusPending,
		Sessions:         toSessionEntities(permitID, draft.NewSubmissionSessions(d.Grid, req.CourseName, req.InstructorName)),
		Attachments:      uploaded,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.cleanupObjects(ctx, keys)
		s.log(ctx).Error("create permit begin tx failed", zap.Error(err))
		return PermitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, p); err != nil {
		s.cleanupObjects(ctx, keys)
		s.log(ctx).Error("create permit persist failed", zap.Error(err))
		return PermitResponse{}, err
	}

	if err := s.enqueueSubmitted(ctx, tx, p); err != nil {
		s.cleanupObjects(ctx, keys)
		return PermitResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.cleanupObjects(ctx, keys)
		s.log(ctx).Error("create permit commit failed", zap.Error(err))
		return PermitResponse{}, err
	}

	s.invalidateStats(ctx, unit)
	s.log(ctx).Info("create permit success",
		zap.String("permit_id", p.ID.String()),
		zap.String("reference", reference),
		zap.String("student_id", studentID),
	)

	return s.mapToResponse(ctx, *p), nil
}

func (s *service) Revise(ctx context.Context, studentID, id string, req RevisePermitRequest, files []attachment.Upload) (PermitResponse, error) {
	s.log(ctx).Debug("revise permit requested",
		zap.String("permit_id", id),
		zap.String("student_id", studentID),
	)

	if _, err := uuid.Parse(studentID); err != nil {
		return PermitResponse{}, permiterrors.ErrInvalidStudentID
	}
	if err := validateLeaveDetail(req.LeaveType, req.LeaveDetail); err != nil {
		return PermitResponse{}, err
	}
	if len(files) == 0 {
		// Revisi tidak mewarisi lampiran lama; semua wajib diunggah ulang.
		return PermitResponse{}, permiterrors.ErrAttachmentRequired
	}

	p, err := s.findOwned(ctx, studentID, id)
	if err != nil {
		return PermitResponse{}, err
	}
	if p.Status != StatusNeedsRevision {
		return PermitResponse{}, permiterrors.ErrNotRevisable
	}

	// Payload revisi didecode lewat jalur yang sama dengan formulir klien
	// sehingga aturan grid dan validasinya identik.
	d := draft.FromServerRecord(draft.ServerRecord{
		ID:               id,
		LeaveType:        req.LeaveType,
		LeaveDetail:      req.LeaveDetail,
		StartDate:        req.StartDate,
		Description:      req.Description,
		AttendanceWeight: req.AttendanceWeight,
		Sessions:         toSessionRecords(req.Sessions),
	})

	keys := make([]string, 0, len(files))
	for _, f := range files {
		keys = append(keys, attachmentKey(id, f.Filename))
	}
	d.Attachments = keys

	if v := draft.Validate(d); !v.Valid() {
		s.log(ctx).Warn("revise permit validation failed",
			zap.String("permit_id", id),
			zap.Any("failures", v.Failures),
		)
		return PermitResponse{}, &DraftInvalidError{Failures: v.Failures}
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, studentID, d.StartDate, d.EndDate(), &id)
	if err != nil {
		s.log(ctx).Error("revise permit overlap check failed", zap.Error(err))
		return PermitResponse{}, err
	}
	if overlap {
		return PermitResponse{}, permiterrors.ErrPermitOverlap
	}

	uploaded, err := s.uploadAll(ctx, p.ID, keys, files)
	if err != nil {
		return PermitResponse{}, err
	}

	oldKeys := make([]string, 0, len(p.Attachments))
	for _, a := range p.Attachments {
		oldKeys = append(oldKeys, a.ObjectKey)
	}

	sessions := toSessionEntities(p.ID, draft.RevisionSessions(d.Grid))

	p.LeaveType = d.LeaveType
	p.LeaveDetail = d.LeaveDetail
	p.StartDate = d.StartDate
	p.EndDate = d.EndDate()
	p.TotalDays = d.DurationDays
	p.Description = d.Description
	p.AttendanceWeight = d.Weight.Value()
	p.Status = StatusPending
	p.ReviewedBy = nil
	p.ReviewedAt = nil
	p.ReviewNote = nil

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.cleanupObjects(ctx, keys)
		s.log(ctx).Error("revise permit begin tx failed", zap.Error(err))
		return PermitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, p); err != nil {
		s.cleanupObjects(ctx, keys)
		s.log(ctx).Error("revise permit persist failed", zap.Error(err))
		return PermitResponse{}, err
	}
	if err := qtx.ReplaceSessions(ctx, id, sessions); err != nil {
		s.cleanupObjects(ctx, keys)
		return PermitResponse{}, err
	}
	if err := qtx.ReplaceAttachments(ctx, id, uploaded); err != nil {
		s.cleanupObjects(ctx, keys)
		return PermitResponse{}, err
	}

	if err := s.enqueueSubmitted(ctx, tx, p); err != nil {
		s.cleanupObjects(ctx, keys)
		return PermitResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.cleanupObjects(ctx, keys)
		s.log(ctx).Error("revise permit commit failed", zap.Error(err))
		return PermitResponse{}, err
	}

	// Lampiran lama baru dibuang setelah commit; gagal hapus hanya
	// meninggalkan objek yatim di storage.
	s.cleanupObjects(ctx, oldKeys)

	p.Sessions = sessions
	p.Attachments = uploaded
	s.invalidateStats(ctx, p.Unit)
	s.log(ctx).Info("revise permit success",
		zap.String("permit_id", id),
		zap.String("reference", p.Reference),
	)

	return s.mapToResponse(ctx, *p), nil
}

func (s *service) GetAllByUnit(ctx context.Context, unit, status string) ([]PermitResponse, error) {
	permits, err := s.repo.FindAllByUnit(ctx, unit, status)
	if err != nil {
		return nil, err
	}
	return s.mapToListResponse(ctx, permits), nil
}

func (s *service) GetAllByStudent(ctx context.Context, studentID string) ([]PermitResponse, error) {
	permits, err := s.repo.FindAllByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.mapToListResponse(ctx, permits), nil
}

func (s *service) GetByID(ctx context.Context, actorStudentID, id string) (PermitResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PermitResponse{}, permiterrors.ErrPermitNotFound
		}
		return PermitResponse{}, err
	}
	if actorStudentID != "" && p.StudentID.String() != actorStudentID {
		return PermitResponse{}, permiterrors.ErrNotOwner
	}
	return s.mapToResponse(ctx, *p), nil
}

// RevisionDraft mendecode pengajuan tersimpan kembali menjadi isi formulir
// revisi, lengkap dengan grid sesi per hari.
func (s *service) RevisionDraft(ctx context.Context, studentID, id string) (RevisionDraftResponse, error) {
	p, err := s.findOwned(ctx, studentID, id)
	if err != nil {
		return RevisionDraftResponse{}, err
	}
	if p.Status != StatusNeedsRevision {
		return RevisionDraftResponse{}, permiterrors.ErrNotRevisable
	}

	sessions := make([]draft.SessionRecord, 0, len(p.Sessions))
	for _, sess := range p.Sessions {
		sessions = append(sessions, draft.SessionRecord{
			Date:           sess.Date.Format(draft.DateLayout),
			CourseName:     sess.CourseName,
			InstructorName: sess.InstructorName,
			Slot1:          sess.Slot1,
			Slot2:          sess.Slot2,
			Slot3:          sess.Slot3,
		})
	}

	d := draft.FromServerRecord(draft.ServerRecord{
		ID:               p.ID.String(),
		LeaveType:        p.LeaveType,
		LeaveDetail:      p.LeaveDetail,
		StartDate:        p.StartDate.Format(draft.DateLayout),
		Description:      p.Description,
		AttendanceWeight: p.AttendanceWeight,
		Sessions:         sessions,
	})

	days := make([]RevisionDayResponse, 0, len(d.Grid))
	for _, day := range d.Grid {
		slots := make([]RevisionSlotResponse, 0, draft.SlotsPerDay)
		for _, slot := range day.Slots {
			slots = append(slots, RevisionSlotResponse{
				SlotNumber:     slot.Number,
				Label:          slot.Label,
				Selected:       slot.Selected,
				CourseName:     slot.CourseName,
				InstructorName: slot.InstructorName,
			})
		}
		days = append(days, RevisionDayResponse{
			Date:  day.Date.Format(draft.DateLayout),
			Slots: slots,
		})
	}

	return RevisionDraftResponse{
		ID:               p.ID.String(),
		LeaveType:        d.LeaveType,
		LeaveDetail:      d.LeaveDetail,
		StartDate:        d.StartDate.Format(draft.DateLayout),
		EndDate:          d.EndDate().Format(draft.DateLayout),
		DurationDays:     d.DurationDays,
		Description:      d.Description,
		AttendanceWeight: d.Weight.Value(),
		WeightManual:     d.Weight.Manual(),
		Days:             days,
	}, nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id string) (PermitResponse, error) {
	return s.decide(ctx, reviewerID, id, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, reviewerID, id, reason string) (PermitResponse, error) {
	if reason == "" {
		return PermitResponse{}, permiterrors.ErrReviewNoteRequired
	}
	return s.decide(ctx, reviewerID, id, StatusRejected, reason)
}

func (s *service) RequestRevision(ctx context.Context, reviewerID, id, note string) (PermitResponse, error) {
	if note == "" {
		return PermitResponse{}, permiterrors.ErrReviewNoteRequired
	}
	return s.decide(ctx, reviewerID, id, StatusNeedsRevision, note)
}

func (s *service) decide(ctx context.Context, reviewerID, id, targetStatus, note string) (PermitResponse, error) {
	s.log(ctx).Debug("decide permit requested",
		zap.String("permit_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", targetStatus),
	)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return PermitResponse{}, permiterrors.ErrInvalidReviewerID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PermitResponse{}, permiterrors.ErrPermitNotFound
		}
		return PermitResponse{}, err
	}
	if !isAllowedStatusTransition(p.Status, targetStatus) {
		s.log(ctx).Warn("decide permit transition invalid",
			zap.String("permit_id", id),
			zap.String("from_status", p.Status),
			zap.String("to_status", targetStatus),
		)
		return PermitResponse{}, permiterrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	p.Status = targetStatus
	p.ReviewedBy = &reviewerUUID
	p.ReviewedAt = &now
	if note != "" {
		p.ReviewNote = &note
	} else {
		p.ReviewNote = nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("decide permit begin tx failed", zap.Error(err))
		return PermitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, p); err != nil {
		s.log(ctx).Error("decide permit persist failed",
			zap.String("permit_id", id),
			zap.Error(err),
		)
		return PermitResponse{}, err
	}

	payload, err := json.Marshal(events.PermitDecidedEvent{
		EventType:  events.EventTypePermitDecided,
		PermitID:   p.ID.String(),
		StudentID:  p.StudentID.String(),
		Reference:  p.Reference,
		Status:     targetStatus,
		Note:       note,
		OccurredAt: now,
	})
	if err != nil {
		return PermitResponse{}, err
	}
	if err := s.enqueueEvent(ctx, tx, p, events.EventTypePermitDecided, payload); err != nil {
		return PermitResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("decide permit commit failed", zap.Error(err))
		return PermitResponse{}, err
	}

	s.invalidateStats(ctx, p.Unit)
	s.log(ctx).Info("decide permit success",
		zap.String("permit_id", id),
		zap.String("status", targetStatus),
	)

	return s.mapToResponse(ctx, *p), nil
}

func (s *service) Delete(ctx context.Context, studentID, id string) error {
	p, err := s.findOwned(ctx, studentID, id)
	if err != nil {
		return err
	}
	if p.Status != StatusPending {
		return permiterrors.ErrNotDeletable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, studentID, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	keys := make([]string, 0, len(p.Attachments))
	for _, a := range p.Attachments {
		keys = append(keys, a.ObjectKey)
	}
	s.cleanupObjects(ctx, keys)
	s.invalidateStats(ctx, p.Unit)
	s.log(ctx).Info("delete permit success", zap.String("permit_id", id))
	return nil
}

func (s *service) findOwned(ctx context.Context, studentID, id string) (*Permit, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, permiterrors.ErrPermitNotFound
		}
		return nil, err
	}
	if p.StudentID.String() != studentID {
		return nil, permiterrors.ErrNotOwner
	}
	return p, nil
}

// PENDING adalah satu-satunya status awal; NEEDS_REVISION kembali ke
// PENDING lewat Revise, bukan lewat keputusan reviewer.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusNeedsRevision
	case StatusNeedsRevision:
		return targetStatus == StatusPending
	default:
		return false
	}
}

func (s *service) enqueueSubmitted(ctx context.Context, tx *sql.Tx, p *Permit) error {
	payload, err := json.Marshal(events.PermitSubmittedEvent{
		EventType:  events.EventTypePermitSubmitted,
		PermitID:   p.ID.String(),
		StudentID:  p.StudentID.String(),
		Reference:  p.Reference,
		LeaveType:  p.LeaveType,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.enqueueEvent(ctx, tx, p, events.EventTypePermitSubmitted, payload)
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, p *Permit, eventType string, payload []byte) error {
	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "permit",
		AggregateID:   p.ID.String(),
		EventType:     eventType,
		Topic:         events.PermitWorkflowTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}

	err := s.outbox.WithTx(tx).Create(ctx, event)
	if err != nil {
		s.log(ctx).Error("permit outbox persist failed",
			zap.String("permit_id", p.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
	return err
}

func (s *service) uploadAll(ctx context.Context, permitID uuid.UUID, keys []string, files []attachment.Upload) ([]PermitAttachment, error) {
	uploaded := make([]PermitAttachment, 0, len(files))
	for i, f := range files {
		if err := s.store.Put(ctx, keys[i], f); err != nil {
			s.cleanupObjects(ctx, keys[:i])
			s.log(ctx).Error("permit attachment upload failed",
				zap.String("permit_id", permitID.String()),
				zap.String("filename", f.Filename),
				zap.Error(err),
			)
			return nil, apperror.Wrap(err,
				apperror.CodeServiceUnavailable,
				"Penyimpanan lampiran sedang bermasalah, coba lagi",
				http.StatusServiceUnavailable,
			)
		}
		uploaded = append(uploaded, PermitAttachment{
			ID:          uuid.New(),
			PermitID:    permitID,
			ObjectKey:   keys[i],
			Filename:    f.Filename,
			ContentType: f.ContentType,
			Size:        f.Size,
		})
	}
	return uploaded, nil
}

func (s *service) cleanupObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log(ctx).Warn("permit attachment cleanup failed",
				zap.String("object_key", key),
				zap.Error(err),
			)
		}
	}
}

func (s *service) invalidateStats(ctx context.Context, unit string) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateUnit(ctx, unit)
}

func validateLeaveDetail(leaveType, leaveDetail string) error {
	options, ok := leaveDetailOptions[leaveType]
	if !ok {
		return permiterrors.ErrInvalidLeaveType
	}
	for _, opt := range options {
		if opt == leaveDetail {
			return nil
		}
	}
	return permiterrors.ErrInvalidLeaveDetail
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(draft.DateLayout, v)
	if err != nil {
		return time.Time{}, permiterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func attachmentKey(permitID, filename string) string {
	return path.Join("permits", permitID, uuid.NewString()+path.Ext(filename))
}

func toSessionRecords(in []SessionInput) []draft.SessionRecord {
	out := make([]draft.SessionRecord, 0, len(in))
	for _, s := range in {
		out = append(out, draft.SessionRecord{
			Date:           s.Date,
			CourseName:     s.CourseName,
			InstructorName: s.InstructorName,
			Slot1:          s.Slot1,
			Slot2:          s.Slot2,
			Slot3:          s.Slot3,
		})
	}
	return out
}

func toSessionEntities(permitID uuid.UUID, records []draft.SessionRecord) []PermitSession {
	out := make([]PermitSession, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse(draft.DateLayout, rec.Date)
		if err != nil {
			continue
		}
		out = append(out, PermitSession{
			ID:             uuid.New(),
			PermitID:       permitID,
			Date:           date,
			CourseName:     rec.CourseName,
			InstructorName: rec.InstructorName,
			Slot1:          rec.Slot1,
			Slot2:          rec.Slot2,
			Slot3:          rec.Slot3,
		})
	}
	return out
}

func (s *service) mapToResponse(ctx context.Context, p Permit) PermitResponse {
	resp := PermitResponse{
		ID:               p.ID.String(),
		Reference:        p.Reference,
		StudentID:        p.StudentID.String(),
		Unit:             p.Unit,
		LeaveType:        p.LeaveType,
		LeaveDetail:      p.LeaveDetail,
		StartDate:        p.StartDate.Format(draft.DateLayout),
		EndDate:          p.EndDate.Format(draft.DateLayout),
		TotalDays:        p.TotalDays,
		Description:      p.Description,
		AttendanceWeight: p.AttendanceWeight,
		Status:           p.Status,
		Sessions:         make([]SessionResponse, 0, len(p.Sessions)),
		Attachments:      make([]AttachmentResponse, 0, len(p.Attachments)),
	}
	if p.ReviewedBy != nil {
		v := p.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if p.ReviewedAt != nil {
		v := p.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewNote = p.ReviewNote

	for _, sess := range p.Sessions {
		resp.Sessions = append(resp.Sessions, SessionResponse{
			Date:           sess.Date.Format(draft.DateLayout),
			CourseName:     sess.CourseName,
			InstructorName: sess.InstructorName,
			Slot1:          sess.Slot1,
			Slot2:          sess.Slot2,
			Slot3:          sess.Slot3,
		})
	}
	for _, a := range p.Attachments {
		item := AttachmentResponse{
			ID:          a.ID.String(),
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        a.Size,
		}
		url, err := s.store.PresignGet(ctx, a.ObjectKey, presignExpiry)
		if err != nil {
			s.log(ctx).Warn("permit attachment presign failed",
				zap.String("object_key", a.ObjectKey),
				zap.Error(err),
			)
		} else {
			item.URL = url
		}
		resp.Attachments = append(resp.Attachments, item)
	}
	return resp
}

func (s *service) mapToListResponse(ctx context.Context, permits []Permit) []PermitResponse {
	resp := make([]PermitResponse, len(permits))
	for i, p := range permits {
		resp[i] = s.mapToResponse(ctx, p)
	}
	return resp
}
