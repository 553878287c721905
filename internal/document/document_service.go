package document

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"go-hrdocs/internal/audit"
	documenterrors "go-hrdocs/internal/document/errors"
	"go-hrdocs/internal/employee"
	"go-hrdocs/internal/events"
	"go-hrdocs/internal/messaging/kafka"
	"go-hrdocs/internal/notification"
	"go-hrdocs/internal/rbac"
	"go-hrdocs/internal/shared/connection"
	"go-hrdocs/internal/shared/contextutil"
	"go-hrdocs/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxUploadBytes = 5 << 20

var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// GrantVerifier checks the short-lived token obtained through OTP
// verification and returns the employee it was issued to.
type GrantVerifier interface {
	VerifyGrant(token string) (string, error)
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, actor audit.Actor, input UploadInput) (*DocumentResponse, error)
	Review(ctx context.Context, actor audit.Actor, documentID string, req ReviewRequest) (*DocumentResponse, error)
	FinalReview(ctx context.Context, actor audit.Actor, documentID string, req FinalReviewRequest) (*DocumentResponse, error)
	ListByEmployee(ctx context.Context, requesterID, requesterRole, employeeID string) ([]DocumentResponse, error)
	ListAll(ctx context.Context, filter Filter, page, pageSize int) ([]DocumentResponse, int64, error)
	Download(ctx context.Context, requesterID, requesterRole, documentID string) (*DocumentResponse, io.ReadCloser, error)
	HROverview(ctx context.Context) ([]HRSummary, error)
	FinalOverview(ctx context.Context) ([]FinalSummary, error)
}

type txFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	store        storage.Store
	grants       GrantVerifier
	outbox       kafka.OutboxRepository
	recorder     audit.Recorder
	notifier     notification.Notifier
	runTx        txFunc
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employeeRepo employee.Repository,
	store storage.Store,
	grants GrantVerifier,
	outbox kafka.OutboxRepository,
	recorder audit.Recorder,
	notifier notification.Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{
		repo:         repo,
		employeeRepo: employeeRepo,
		store:        store,
		grants:       grants,
		outbox:       outbox,
		recorder:     recorder,
		notifier:     notifier,
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
		logger: l,
	}
}

// Upload stores the file and creates the document row in PENDING
// state. The upload grant must have been issued to the uploader; a
// repeat upload of the same document name always appends a new row so
// the review history of earlier versions survives.
func (s *service) Upload(ctx context.Context, actor audit.Actor, input UploadInput) (*DocumentResponse, error) {
	grantedTo, err := s.grants.VerifyGrant(input.Grant)
	if err != nil {
		return nil, err
	}
	if grantedTo != actor.ID.String() {
		return nil, documenterrors.ErrGrantMismatch
	}

	if _, ok := allowedMimeTypes[strings.ToLower(input.MimeType)]; !ok {
		return nil, documenterrors.ErrUnsupportedFileType
	}
	if input.SizeBytes <= 0 || input.SizeBytes > maxUploadBytes {
		return nil, documenterrors.ErrFileTooLarge
	}

	stored, err := s.store.Save(input.OriginalName, input.MimeType, io.LimitReader(input.Reader, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if stored.SizeBytes > maxUploadBytes {
		if removeErr := s.store.Remove(stored.FileName); removeErr != nil {
			s.logger.Warn("oversized upload cleanup failed", zap.String("file", stored.FileName), zap.Error(removeErr))
		}
		return nil, documenterrors.ErrFileTooLarge
	}

	doc := &Document{
		ID:           uuid.New(),
		EmployeeID:   actor.ID,
		Name:         input.Name,
		FileName:     stored.FileName,
		OriginalName: input.OriginalName,
		MimeType:     stored.MimeType,
		SizeBytes:    stored.SizeBytes,
		Status:       StatusPending,
	}

	event := events.DocumentLifecycleEvent{
		EventType:     events.EventDocumentUploaded,
		RequestID:     contextutil.GetRequestID(ctx),
		DocumentID:    doc.ID.String(),
		EmployeeID:    actor.ID.String(),
		EmployeeEmail: actor.Email,
		DocumentName:  doc.Name,
		Status:        string(doc.Status),
		OccurredAt:    time.Now().UTC(),
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, doc); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, event)
	})
	if err != nil {
		if removeErr := s.store.Remove(stored.FileName); removeErr != nil {
			s.logger.Warn("orphaned upload cleanup failed", zap.String("file", stored.FileName), zap.Error(removeErr))
		}
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionDocumentUploaded,
		TargetType: audit.TargetDocument,
		TargetID:   doc.ID.String(),
		Details:    map[string]any{"name": doc.Name, "mime_type": doc.MimeType, "size_bytes": doc.SizeBytes},
	})
	s.notifier.Notify(ctx, notification.Message{
		EmployeeID: actor.ID,
		Type:       notification.TypeDocumentUploaded,
		Title:      "Document received",
		Body:       doc.Name + " was uploaded and is awaiting HR review",
		Meta:       map[string]any{"document_id": doc.ID.String()},
	})

	resp := mapToResponse(*doc)
	return &resp, nil
}

// Review applies the HR decision on a pending document.
func (s *service) Review(ctx context.Context, actor audit.Actor, documentID string, req ReviewRequest) (*DocumentResponse, error) {
	target := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if target != StatusApproved && target != StatusRejected {
		return nil, documenterrors.ErrInvalidReviewStatus
	}
	remarks := strings.TrimSpace(req.Remarks)
	if target == StatusRejected && remarks == "" {
		return nil, documenterrors.ErrRemarksRequired
	}

	doc, owner, err := s.loadWithOwner(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !isAllowedTransition(doc.Status, target) {
		return nil, documenterrors.ErrInvalidTransition
	}

	now := time.Now()
	doc.Status = target
	doc.Remarks = remarks
	doc.ReviewedBy = &actor.ID
	doc.ReviewedAt = &now

	event := events.DocumentLifecycleEvent{
		EventType:     events.EventDocumentReviewed,
		RequestID:     contextutil.GetRequestID(ctx),
		DocumentID:    doc.ID.String(),
		EmployeeID:    doc.EmployeeID.String(),
		EmployeeEmail: owner.Email,
		DocumentName:  doc.Name,
		Status:        string(target),
		Remarks:       remarks,
		OccurredAt:    now.UTC(),
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, doc); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionDocumentApproved
	title := "Document approved"
	body := doc.Name + " was approved by HR and moves to final verification"
	if target == StatusRejected {
		action = audit.ActionDocumentRejected
		title = "Document rejected"
		body = doc.Name + " was rejected: " + remarks
	}

	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     action,
		TargetType: audit.TargetDocument,
		TargetID:   doc.ID.String(),
		Details:    map[string]any{"status": string(target), "remarks": remarks},
	})
	s.notifier.Notify(ctx, notification.Message{
		EmployeeID: doc.EmployeeID,
		Type:       notification.TypeDocumentReviewed,
		Title:      title,
		Body:       body,
		Meta:       map[string]any{"document_id": doc.ID.String(), "status": string(target)},
	})

	resp := mapToResponse(*doc)
	return &resp, nil
}

// FinalReview is the super-admin stage; only approved documents are
// actionable, and the verdict may still reject one.
func (s *service) FinalReview(ctx context.Context, actor audit.Actor, documentID string, req FinalReviewRequest) (*DocumentResponse, error) {
	target := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if target != StatusVerified && target != StatusRejected {
		return nil, documenterrors.ErrInvalidFinalStatus
	}
	remarks := strings.TrimSpace(req.Remarks)
	if target == StatusRejected && len(remarks) < 5 {
		return nil, documenterrors.ErrRemarksTooShort
	}

	doc, owner, err := s.loadWithOwner(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != StatusApproved || !isAllowedTransition(doc.Status, target) {
		return nil, documenterrors.ErrInvalidTransition
	}

	now := time.Now()
	doc.Status = target
	doc.VerifiedBy = &actor.ID
	doc.VerifiedAt = &now
	if target == StatusRejected {
		doc.Remarks = remarks
	}

	eventType := events.EventDocumentVerified
	if target == StatusRejected {
		eventType = events.EventDocumentReviewed
	}
	event := events.DocumentLifecycleEvent{
		EventType:     eventType,
		RequestID:     contextutil.GetRequestID(ctx),
		DocumentID:    doc.ID.String(),
		EmployeeID:    doc.EmployeeID.String(),
		EmployeeEmail: owner.Email,
		DocumentName:  doc.Name,
		Status:        string(target),
		Remarks:       remarks,
		OccurredAt:    now.UTC(),
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, doc); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionDocumentVerified
	title := "Document verified"
	body := doc.Name + " passed final verification"
	if target == StatusRejected {
		action = audit.ActionDocumentRejected
		title = "Document rejected"
		body = doc.Name + " was rejected at final verification: " + remarks
	}

	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     action,
		TargetType: audit.TargetDocument,
		TargetID:   doc.ID.String(),
		Details:    map[string]any{"status": string(target), "remarks": remarks},
	})
	s.notifier.Notify(ctx, notification.Message{
		EmployeeID: doc.EmployeeID,
		Type:       notification.TypeDocumentVerified,
		Title:      title,
		Body:       body,
		Meta:       map[string]any{"document_id": doc.ID.String(), "status": string(target)},
	})

	resp := mapToResponse(*doc)
	return &resp, nil
}

func (s *service) ListByEmployee(ctx context.Context, requesterID, requesterRole, employeeID string) ([]DocumentResponse, error) {
	if employeeID == "" {
		employeeID = requesterID
	}
	if employeeID != requesterID && !rbac.IsPrivileged(requesterRole) {
		return nil, documenterrors.ErrNotDocumentOwner
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]DocumentResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) ListAll(ctx context.Context, filter Filter, page, pageSize int) ([]DocumentResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, documenterrors.ErrInvalidReviewStatus
	}

	rows, total, err := s.repo.FindAll(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]DocumentResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, total, nil
}

// Download streams the stored file; owners and privileged roles only.
func (s *service) Download(ctx context.Context, requesterID, requesterRole, documentID string) (*DocumentResponse, io.ReadCloser, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return nil, nil, documenterrors.ErrInvalidDocumentID
	}

	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, documenterrors.ErrDocumentNotFound
		}
		return nil, nil, err
	}
	if doc.EmployeeID.String() != requesterID && !rbac.IsPrivileged(requesterRole) {
		return nil, nil, documenterrors.ErrNotDocumentOwner
	}

	rc, err := s.store.Open(doc.FileName)
	if err != nil {
		return nil, nil, err
	}
	resp := mapToResponse(*doc)
	return &resp, rc, nil
}

func (s *service) HROverview(ctx context.Context) ([]HRSummary, error) {
	employees, docsByEmployee, err := s.loadOverviewData(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]HRSummary, len(employees))
	for i, e := range employees {
		summaries[i] = HRView(e.ID.String(), e.FullName, docsByEmployee[e.ID.String()])
	}
	return summaries, nil
}

func (s *service) FinalOverview(ctx context.Context) ([]FinalSummary, error) {
	employees, docsByEmployee, err := s.loadOverviewData(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]FinalSummary, len(employees))
	for i, e := range employees {
		summaries[i] = FinalView(e.ID.String(), e.FullName, docsByEmployee[e.ID.String()])
	}
	return summaries, nil
}

func (s *service) loadOverviewData(ctx context.Context) ([]employee.Employee, map[string][]Document, error) {
	employees, err := s.employeeRepo.FindOptions(ctx)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.ID.String()
	}

	docs, err := s.repo.FindByEmployeeIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	byEmployee := make(map[string][]Document, len(employees))
	for _, d := range docs {
		key := d.EmployeeID.String()
		byEmployee[key] = append(byEmployee[key], d)
	}
	return employees, byEmployee, nil
}

func (s *service) loadWithOwner(ctx context.Context, documentID string) (*Document, *employee.Employee, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return nil, nil, documenterrors.ErrInvalidDocumentID
	}

	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, documenterrors.ErrDocumentNotFound
		}
		return nil, nil, err
	}

	owner, err := s.employeeRepo.FindByID(ctx, doc.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, documenterrors.ErrDocumentNotFound
		}
		return nil, nil, err
	}
	return doc, owner, nil
}

// enqueueEvent writes the lifecycle event into the outbox inside the
// caller's transaction so the row change and the event commit or roll
// back together.
func (s *service) enqueueEvent(ctx context.Context, tx *gorm.DB, event events.DocumentLifecycleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "document",
		AggregateID:   event.DocumentID,
		EventType:     event.EventType,
		Topic:         events.DocumentLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}

	repo := s.outbox
	if tx != nil {
		if sqlTx, ok := connection.SQLTx(tx); ok {
			repo = s.outbox.WithTx(sqlTx)
		}
	}
	return repo.Create(ctx, outboxEvent)
}

func mapToResponse(d Document) DocumentResponse {
	resp := DocumentResponse{
		ID:           d.ID.String(),
		EmployeeID:   d.EmployeeID.String(),
		Name:         d.Name,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		Status:       string(d.Status),
		Remarks:      d.Remarks,
		CreatedAt:    d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if d.ReviewedAt != nil {
		resp.ReviewedAt = d.ReviewedAt.UTC().Format(time.RFC3339)
	}
	if d.VerifiedAt != nil {
		resp.VerifiedAt = d.VerifiedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
