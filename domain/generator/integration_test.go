package generator_test

import (
	"context"
	"io"
	"testing"

	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/blobstore"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newIntegrationService(t *testing.T) (*generator.Service, *blobstore.Store, *blobstore.Store) {
	t.Helper()

	uploads, err := blobstore.New(t.TempDir())
	require.NoError(t, err)
	qrImages, err := blobstore.New(t.TempDir())
	require.NoError(t, err)

	service := generator.NewService(uploads, qrImages, qrcode.NewGenerator(256), "http://localhost:8080", nil)
	return service, uploads, qrImages
}

func TestGenerate_EndToEnd_URL(t *testing.T) {
	service, _, qrImages := newIntegrationService(t)

	result, err := service.Generate(context.Background(), &generator.Submission{
		Mode:     generator.ModeURL,
		RawValue: "example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", result.Target)
	assert.Regexp(t, `^[0-9a-f]{32}\.png$`, result.QRFilename)

	rc, err := qrImages.Open(result.QRFilename)
	require.NoError(t, err)
	defer rc.Close()

	png, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngSignature, png[:len(pngSignature)])
}

func TestGenerate_EndToEnd_File(t *testing.T) {
	service, uploads, _ := newIntegrationService(t)

	result, err := service.Generate(context.Background(), &generator.Submission{
		Mode:     generator.ModeFile,
		Filename: "some notes.txt",
		Data:     []byte("remember the milk"),
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/file/some_notes.txt", result.Target)

	rc, err := uploads.Open("some_notes.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", string(data))
}

func TestGenerate_EndToEnd_UniqueFilenames(t *testing.T) {
	service, _, _ := newIntegrationService(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		result, err := service.Generate(context.Background(), &generator.Submission{
			Mode:     generator.ModeURL,
			RawValue: "example.com",
		})
		require.NoError(t, err)
		assert.False(t, seen[result.QRFilename])
		seen[result.QRFilename] = true
	}
}
