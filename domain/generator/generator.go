package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Submission modes
const (
	ModeURL  = "url"
	ModeFile = "file"
)

// Validation errors surfaced to the handler as flash messages.
var (
	ErrInvalidMode   = errors.New(constant.ErrInvalidMode)
	ErrEmptyValue    = errors.New(constant.ErrEmptyValue)
	ErrNoFile        = errors.New(constant.ErrNoFile)
	ErrExtNotAllowed = errors.New(constant.ErrExtNotAllowed)
)

// Submission is one user request to generate a QR code.
// RawValue is set in url mode, Filename and Data in file mode.
type Submission struct {
	Mode     string
	RawValue string
	Filename string
	Data     []byte
}

// Result is a finished generation: the string the QR encodes and the
// filename of the PNG written to the QR blob store.
type Result struct {
	Target     string
	QRFilename string
}

// BlobStore persists blobs under sanitized filenames.
type BlobStore interface {
	Store(name string, data []byte) (string, error)
}

// Encoder turns text into a PNG QR image.
type Encoder interface {
	Encode(text string) ([]byte, error)
}

// Service validates submissions, resolves them into a target string
// and produces the QR image for it.
type Service struct {
	uploads     BlobStore
	qrImages    BlobStore
	encoder     Encoder
	baseURL     string
	allowedExts map[string]bool
}

// NewService creates a generator service. allowedExts is the upload
// extension allow-list; empty or nil disables the check.
func NewService(uploads, qrImages BlobStore, encoder Encoder, baseURL string, allowedExts []string) *Service {
	var exts map[string]bool
	if len(allowedExts) > 0 {
		exts = make(map[string]bool, len(allowedExts))
		for _, ext := range allowedExts {
			exts[strings.ToLower(ext)] = true
		}
	}

	logger.Debug("Creating generator service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "generator",
		},
	})

	return &Service{
		uploads:     uploads,
		qrImages:    qrImages,
		encoder:     encoder,
		baseURL:     strings.TrimRight(baseURL, "/"),
		allowedExts: exts,
	}
}

// Validate checks a submission and returns a typed validation error
// when it cannot be processed. It has no side effects.
func (s *Service) Validate(sub *Submission) error {
	switch sub.Mode {
	case ModeURL:
		if strings.TrimSpace(sub.RawValue) == "" {
			return ErrEmptyValue
		}
	case ModeFile:
		if sub.Filename == "" {
			return ErrNoFile
		}
		if !s.extensionAllowed(sub.Filename) {
			return ErrExtNotAllowed
		}
	default:
		return ErrInvalidMode
	}
	return nil
}

// extensionAllowed reports whether the filename passes the allow-list.
// A disabled allow-list accepts every filename.
func (s *Service) extensionAllowed(filename string) bool {
	if s.allowedExts == nil {
		return true
	}
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	return s.allowedExts[strings.ToLower(filename[idx+1:])]
}

// ResolveTarget turns a validated submission into the single string the
// QR image will encode. In file mode the upload is persisted first and
// the target is its public fetch URL.
func (s *Service) ResolveTarget(ctx context.Context, sub *Submission) (string, error) {
	if sub.Mode == ModeFile {
		stored, err := s.uploads.Store(sub.Filename, sub.Data)
		if err != nil {
			logger.CtxError(ctx, "Failed to store upload", logger.LoggerInfo{
				ContextFunction: constant.CtxResolveTarget,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeStoreFailure,
					Message: err.Error(),
					Type:    constant.ErrTypeStorage,
				},
				Data: map[string]interface{}{
					constant.DataFilename: sub.Filename,
				},
			})
			return "", err
		}

		logger.CtxInfo(ctx, "Upload stored", logger.LoggerInfo{
			ContextFunction: constant.CtxResolveTarget,
			Data: map[string]interface{}{
				constant.DataFilename: stored,
				constant.DataBytes:    len(sub.Data),
			},
		})

		return s.baseURL + "/file/" + stored, nil
	}

	value := strings.TrimSpace(sub.RawValue)
	switch {
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return value, nil
	case strings.Contains(value, " "):
		// Opaque text, left verbatim. It will not be a clickable link.
		return value, nil
	default:
		return "https://" + value, nil
	}
}

// Generate runs the full pipeline: validate, resolve, encode, store
// the PNG under a freshly generated filename.
func (s *Service) Generate(ctx context.Context, sub *Submission) (*Result, error) {
	logger.CtxDebug(ctx, "Processing QR generation request", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataMode: sub.Mode,
		},
	})

	if err := s.Validate(sub); err != nil {
		logger.CtxWarn(ctx, "Submission rejected", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    validationCode(err),
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataMode: sub.Mode,
			},
		})
		return nil, err
	}

	target, err := s.ResolveTarget(ctx, sub)
	if err != nil {
		return nil, err
	}

	png, err := s.encoder.Encode(target)
	if err != nil {
		logger.CtxError(ctx, "Failed to encode QR image", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEncodeFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataTarget: target,
			},
		})
		return nil, err
	}

	// 128-bit random id rendered as hex; never reused for another target.
	qrName := strings.ReplaceAll(uuid.New().String(), "-", "") + ".png"
	stored, err := s.qrImages.Store(qrName, png)
	if err != nil {
		logger.CtxError(ctx, "Failed to store QR image", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeStoreFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataQRFile: qrName,
			},
		})
		return nil, err
	}

	logger.CtxInfo(ctx, "QR code generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataTarget: target,
			constant.DataQRFile: stored,
			constant.DataBytes:  len(png),
		},
	})

	return &Result{
		Target:     target,
		QRFilename: stored,
	}, nil
}

// validationCode maps a validation error to its error code.
func validationCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyValue):
		return constant.ErrCodeEmptyValue
	case errors.Is(err, ErrNoFile):
		return constant.ErrCodeNoFile
	case errors.Is(err, ErrExtNotAllowed):
		return constant.ErrCodeExtNotAllowed
	default:
		return constant.ErrCodeInvalidMode
	}
}
