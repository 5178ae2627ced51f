package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizcardx/internal/domain"
	"bizcardx/internal/extraction"
	"bizcardx/internal/ocr"
	"bizcardx/internal/port"
)

// ImageInput is an uploaded card image.
type ImageInput struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ExtractionResult is an extraction preview.
type ExtractionResult struct {
	Record      extraction.Record            `json:"record"`
	Detected    []string                     `json:"detected"`
	Classified  []extraction.ClassifiedToken `json:"classified"`
	ContentType string                       `json:"content_type,omitempty"`
}

// ShareInput is the DTO for sharing a card by email.
type ShareInput struct {
	ToEmail string `json:"to_email" binding:"required,email"`
	ToName  string `json:"to_name"`
	Note    string `json:"note" binding:"max=1000"`
}

// CardServiceConfig carries the limits and archive settings of the card service.
type CardServiceConfig struct {
	MaxImageBytes int64
	Bucket        string
	PresignExpiry int64
}

// CardService defines the business card contract.
type CardService interface {
	Extract(ctx context.Context, input ImageInput) (*ExtractionResult, error)
	ExtractDetections(ctx context.Context, raw []byte) (*ExtractionResult, error)
	Create(ctx context.Context, input ImageInput) (*domain.BusinessCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessCard, error)
	GetByName(ctx context.Context, name string) (*domain.BusinessCard, error)
	List(ctx context.Context, filter domain.CardFilter) ([]domain.BusinessCard, int, error)
	ListNames(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context) ([]domain.BusinessCard, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]string) (*domain.BusinessCard, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	GetImageURL(ctx context.Context, id uuid.UUID) (string, error)
	Share(ctx context.Context, id uuid.UUID, input ShareInput) error
}

type cardService struct {
	repo       port.CardRepository
	recognizer port.TextRecognizer
	storage    port.ObjectStorage
	email      port.EmailSender
	extractor  *extraction.Extractor
	cfg        CardServiceConfig
	log        *zap.Logger
}

// NewCardService creates a new CardService implementation. storage and email
// may be nil, which disables the image archive and sharing respectively.
func NewCardService(
	repo port.CardRepository,
	recognizer port.TextRecognizer,
	storage port.ObjectStorage,
	email port.EmailSender,
	extractor *extraction.Extractor,
	cfg CardServiceConfig,
	log *zap.Logger,
) CardService {
	return &cardService{
		repo:       repo,
		recognizer: recognizer,
		storage:    storage,
		email:      email,
		extractor:  extractor,
		cfg:        cfg,
		log:        log.Named("card_service"),
	}
}

func (s *cardService) Extract(ctx context.Context, input ImageInput) (*ExtractionResult, error) {
	image, contentType, err := s.readImage(input)
	if err != nil {
		return nil, err
	}
	return s.extract(ctx, image, contentType)
}

func (s *cardService) extract(ctx context.Context, image []byte, contentType string) (*ExtractionResult, error) {
	tokens, err := s.recognizer.Recognize(ctx, image)
	if err != nil {
		s.log.Warn("extract: recognition failed", zap.Error(err))
		if errors.Is(err, domain.ErrRecognitionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("cardService.Extract: %w", err)
	}
	res := s.extractor.Extract(tokens, image)
	s.log.Debug("extract",
		zap.Int("tokens", len(tokens)),
		zap.String("name", res.Record.Name),
	)
	return toResult(res, tokens, contentType), nil
}

func (s *cardService) ExtractDetections(_ context.Context, raw []byte) (*ExtractionResult, error) {
	tokens, image, err := ocr.ParseDetectionRequest(raw)
	if err != nil {
		return nil, err
	}
	contentType := ""
	if len(image) > 0 {
		contentType, err = sniffImage(image)
		if err != nil {
			return nil, err
		}
	}
	return toResult(s.extractor.Extract(tokens, image), tokens, contentType), nil
}

func toResult(res *extraction.Result, tokens []extraction.RawToken, contentType string) *ExtractionResult {
	return &ExtractionResult{
		Record:      res.Record,
		Detected:    extraction.Texts(tokens),
		Classified:  res.Classified,
		ContentType: contentType,
	}
}

func (s *cardService) Create(ctx context.Context, input ImageInput) (*domain.BusinessCard, error) {
	image, contentType, err := s.readImage(input)
	if err != nil {
		return nil, err
	}
	res, err := s.extract(ctx, image, contentType)
	if err != nil {
		return nil, err
	}

	card := domain.NewBusinessCard(res.Record, contentType)
	if err := s.repo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("cardService.Create: %w", err)
	}
	s.log.Info("card stored", zap.Stringer("card_id", card.ID), zap.String("name", card.Name))

	if s.storage != nil {
		// The database copy stays authoritative; archive failures only lose the URL.
		if key, err := s.archive(ctx, card); err != nil {
			s.log.Warn("archive failed", zap.Stringer("card_id", card.ID), zap.Error(err))
		} else {
			card.ImageKey = key
		}
	}
	return card, nil
}

func (s *cardService) archive(ctx context.Context, card *domain.BusinessCard) (string, error) {
	imgType := domain.AllowedContentTypes[card.ImageContentType]
	key := ImageKey(card.ID, imgType)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(card.Image),
		ContentType: card.ImageContentType,
		Size:        int64(len(card.Image)),
	}); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if err := s.repo.SetImageKey(ctx, card.ID, key); err != nil {
		// An object whose key never reached the row could not be deleted later.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			s.log.Error("archive: orphaned object", zap.String("key", key), zap.Error(delErr))
		}
		return "", err
	}
	return key, nil
}

// ImageKey returns the archive object key for a card image.
func ImageKey(id uuid.UUID, imgType domain.ImageType) string {
	return fmt.Sprintf("cards/%s/original.%s", id, imgType)
}

func (s *cardService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessCard, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *cardService) GetByName(ctx context.Context, name string) (*domain.BusinessCard, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *cardService) List(ctx context.Context, filter domain.CardFilter) ([]domain.BusinessCard, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *cardService) ListNames(ctx context.Context) ([]string, error) {
	return s.repo.ListNames(ctx)
}

func (s *cardService) ListAll(ctx context.Context) ([]domain.BusinessCard, error) {
	cards, _, err := s.repo.List(ctx, domain.CardFilter{})
	return cards, err
}

func (s *cardService) Update(ctx context.Context, id uuid.UUID, fields map[string]string) (*domain.BusinessCard, error) {
	tagged := make(map[extraction.FieldTag]string, len(fields))
	for k, v := range fields {
		tag, err := extraction.ParseFieldTag(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFields, err)
		}
		tagged[tag] = v
	}
	rec, err := extraction.BuildFromMap(tagged, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFields, err)
	}

	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	card.SetFields(rec.Fields())
	if err := s.repo.Update(ctx, card); err != nil {
		return nil, err
	}
	s.log.Info("card updated", zap.Stringer("card_id", id))
	return card, nil
}

func (s *cardService) Delete(ctx context.Context, id uuid.UUID) error {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if card.ImageKey != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, s.cfg.Bucket, card.ImageKey); err != nil {
			s.log.Error("delete: archive removal failed", zap.Stringer("card_id", id), zap.Error(err))
			return fmt.Errorf("deleting from storage: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("card deleted", zap.Stringer("card_id", id))
	return nil
}

// GetImage returns the stored image bytes. When the row holds no bytes but the
// image was archived, the archive copy is served instead.
func (s *cardService) GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	data, contentType, err := s.repo.GetImage(ctx, id)
	if err != nil || len(data) > 0 || s.storage == nil {
		return data, contentType, err
	}

	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if card.ImageKey == "" {
		return data, contentType, nil
	}
	data, err = s.storage.Download(ctx, s.cfg.Bucket, card.ImageKey)
	if err != nil {
		return nil, "", fmt.Errorf("cardService.GetImage: %w", err)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	s.log.Debug("image served from archive", zap.Stringer("card_id", id), zap.String("key", card.ImageKey))
	return data, contentType, nil
}

func (s *cardService) GetImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	if s.storage == nil {
		return "", domain.ErrImageArchiveDisabled
	}
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if card.ImageKey == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, card.ImageKey, s.cfg.PresignExpiry)
}

func (s *cardService) Share(ctx context.Context, id uuid.UUID, input ShareInput) error {
	if s.email == nil {
		return domain.ErrEmailDisabled
	}
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.email.SendCard(ctx, port.ShareInput{
		ToEmail: input.ToEmail,
		ToName:  input.ToName,
		Note:    input.Note,
		Card:    card,
	}); err != nil {
		return fmt.Errorf("cardService.Share: %w", err)
	}
	s.log.Info("card shared", zap.Stringer("card_id", id))
	return nil
}

// readImage enforces the extension allow-list and size limit, then sniffs
// the magic bytes.
func (s *cardService) readImage(input ImageInput) ([]byte, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, "", domain.ErrUnsupportedFileType
	}
	if input.Size > s.cfg.MaxImageBytes {
		return nil, "", domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, s.cfg.MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxImageBytes {
		return nil, "", domain.ErrFileTooLarge
	}
	contentType, err := sniffImage(data)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func sniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrEmptyImage
	}
	contentType := http.DetectContentType(data)
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return "", domain.ErrUnsupportedFileType
	}
	return contentType, nil
}
