package generator

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock blob store for testing
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Store(name string, data []byte) (string, error) {
	args := m.Called(name, data)
	return args.String(0), args.Error(1)
}

// Mock encoder for testing
type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Encode(text string) ([]byte, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestService(allowedExts []string) (*Service, *MockBlobStore, *MockBlobStore, *MockEncoder) {
	uploads := new(MockBlobStore)
	qrImages := new(MockBlobStore)
	encoder := new(MockEncoder)
	service := NewService(uploads, qrImages, encoder, "http://localhost:8080", allowedExts)
	return service, uploads, qrImages, encoder
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		sub         *Submission
		allowedExts []string
		expected    error
	}{
		{"unknown mode", &Submission{Mode: "other"}, nil, ErrInvalidMode},
		{"empty mode", &Submission{}, nil, ErrInvalidMode},
		{"url mode empty value", &Submission{Mode: ModeURL, RawValue: "   "}, nil, ErrEmptyValue},
		{"url mode ok", &Submission{Mode: ModeURL, RawValue: "example.com"}, nil, nil},
		{"file mode no file", &Submission{Mode: ModeFile}, nil, ErrNoFile},
		{"file mode empty name", &Submission{Mode: ModeFile, Data: []byte("x")}, nil, ErrNoFile},
		{"file mode empty content accepted", &Submission{Mode: ModeFile, Filename: "empty.txt"}, nil, nil},
		{"file mode ok without allow-list", &Submission{Mode: ModeFile, Filename: "a.xyz", Data: []byte("x")}, nil, nil},
		{"file mode disallowed ext", &Submission{Mode: ModeFile, Filename: "a.exe", Data: []byte("x")}, []string{"png", "pdf"}, ErrExtNotAllowed},
		{"file mode allowed ext", &Submission{Mode: ModeFile, Filename: "a.PDF", Data: []byte("x")}, []string{"png", "pdf"}, nil},
		{"file mode no extension with allow-list", &Submission{Mode: ModeFile, Filename: "noext", Data: []byte("x")}, []string{"png"}, ErrExtNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _ := newTestService(tt.allowedExts)

			err := service.Validate(tt.sub)

			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestResolveTarget_URLMode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"bare host gets https", "example.com", "https://example.com"},
		{"http left verbatim", "http://example.com", "http://example.com"},
		{"https left verbatim", "https://example.com/a?b=c", "https://example.com/a?b=c"},
		{"text with space left verbatim", "hello world", "hello world"},
		{"surrounding whitespace trimmed", "  example.com  ", "https://example.com"},
		{"no scheme no space", "wifi:WPA;S:net;P:pw;;", "https://wifi:WPA;S:net;P:pw;;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, uploads, _, _ := newTestService(nil)

			target, err := service.ResolveTarget(context.Background(), &Submission{Mode: ModeURL, RawValue: tt.raw})

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, target)
			uploads.AssertNotCalled(t, "Store")
		})
	}
}

func TestResolveTarget_FileMode(t *testing.T) {
	// Arrange
	service, uploads, _, _ := newTestService(nil)
	data := []byte("file content")
	uploads.On("Store", "my report.pdf", data).Return("my_report.pdf", nil)

	// Act
	target, err := service.ResolveTarget(context.Background(), &Submission{
		Mode:     ModeFile,
		Filename: "my report.pdf",
		Data:     data,
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/file/my_report.pdf", target)
	uploads.AssertExpectations(t)
}

func TestGenerate_URLMode(t *testing.T) {
	// Arrange
	service, _, qrImages, encoder := newTestService(nil)
	png := []byte("png-bytes")
	qrNamePattern := regexp.MustCompile(`^[0-9a-f]{32}\.png$`)

	encoder.On("Encode", "https://example.com").Return(png, nil)
	qrImages.On("Store", mock.MatchedBy(func(name string) bool {
		return qrNamePattern.MatchString(name)
	}), png).Return("stored.png", nil)

	// Act
	result, err := service.Generate(context.Background(), &Submission{Mode: ModeURL, RawValue: "example.com"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com", result.Target)
	assert.Equal(t, "stored.png", result.QRFilename)
	encoder.AssertExpectations(t)
	qrImages.AssertExpectations(t)
}

func TestGenerate_FreshFilenamePerGeneration(t *testing.T) {
	// Arrange
	service, _, qrImages, encoder := newTestService(nil)
	encoder.On("Encode", mock.Anything).Return([]byte("png"), nil)

	var names []string
	qrImages.On("Store", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		names = append(names, args.String(0))
	}).Return("x.png", nil)

	// Act
	sub := &Submission{Mode: ModeURL, RawValue: "example.com"}
	_, err := service.Generate(context.Background(), sub)
	assert.NoError(t, err)
	_, err = service.Generate(context.Background(), sub)
	assert.NoError(t, err)

	// Assert: identical targets still get distinct filenames
	assert.Len(t, names, 2)
	assert.NotEqual(t, names[0], names[1])
}

func TestGenerate_ValidationRejection(t *testing.T) {
	// Arrange
	service, uploads, qrImages, encoder := newTestService(nil)

	// Act
	result, err := service.Generate(context.Background(), &Submission{Mode: ModeURL, RawValue: ""})

	// Assert: no side effects on rejection
	assert.ErrorIs(t, err, ErrEmptyValue)
	assert.Nil(t, result)
	uploads.AssertNotCalled(t, "Store")
	qrImages.AssertNotCalled(t, "Store")
	encoder.AssertNotCalled(t, "Encode")
}

func TestGenerate_EncoderFailure(t *testing.T) {
	// Arrange
	service, _, qrImages, encoder := newTestService(nil)
	encoder.On("Encode", mock.Anything).Return(nil, assert.AnError)

	// Act
	result, err := service.Generate(context.Background(), &Submission{Mode: ModeURL, RawValue: "example.com"})

	// Assert: the request fails, nothing is stored
	assert.Error(t, err)
	assert.Nil(t, result)
	qrImages.AssertNotCalled(t, "Store")
}
