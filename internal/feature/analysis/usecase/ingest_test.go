package usecase_test

import (
	"bytes"
	"testing"

	"stock_analysis/internal/feature/analysis/usecase"
	"stock_analysis/internal/shared/apperror"
)

// pngHeader はPNGのシグネチャです。
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// fakePNG はPNGシグネチャで始まる指定サイズのバイト列を返します。
func fakePNG(size int) []byte {
	b := make([]byte, size)
	copy(b, pngHeader)
	for i := len(pngHeader); i < size; i++ {
		b[i] = byte(i % 251)
	}
	return b
}

func TestIngestImage(t *testing.T) {
	testCases := []struct {
		name         string
		data         []byte
		declaredType string
		expectedKind apperror.Kind
		expectedMIME string
	}{
		{
			name:         "success: png with declared type",
			data:         fakePNG(2048),
			declaredType: "image/png",
			expectedMIME: "image/png",
		},
		{
			name:         "success: no declared type sniffs png",
			data:         fakePNG(64),
			expectedMIME: "image/png",
		},
		{
			name:         "success: unknown bytes fall back to declared type",
			data:         []byte("not really an image"),
			declaredType: "image/gif",
			expectedMIME: "image/gif",
		},
		{
			name:         "success: unknown bytes without declared type default to png",
			data:         []byte("not really an image"),
			expectedMIME: usecase.DefaultImageMIMEType,
		},
		{
			name:         "success: declared type with parameters",
			data:         fakePNG(16),
			declaredType: "Image/PNG; charset=binary",
			expectedMIME: "image/png",
		},
		{
			name:         "success: exactly max size",
			data:         fakePNG(usecase.MaxImageSize),
			declaredType: "image/png",
			expectedMIME: "image/png",
		},
		{
			name:         "error: empty payload",
			data:         []byte{},
			declaredType: "image/png",
			expectedKind: apperror.KindEmptyPayload,
		},
		{
			name:         "error: one byte over max size",
			data:         make([]byte, usecase.MaxImageSize+1),
			declaredType: "image/png",
			expectedKind: apperror.KindPayloadTooLarge,
		},
		{
			name:         "error: non image content type",
			data:         fakePNG(16),
			declaredType: "application/octet-stream",
			expectedKind: apperror.KindInvalidMediaType,
		},
		{
			name:         "error: empty wins over media type",
			data:         nil,
			declaredType: "text/plain",
			expectedKind: apperror.KindEmptyPayload,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := usecase.IngestImage(tc.data, tc.declaredType)

			if tc.expectedKind != "" {
				if err == nil {
					t.Fatalf("expected error kind %s, got nil", tc.expectedKind)
				}
				if got := apperror.KindOf(err); got != tc.expectedKind {
					t.Errorf("expected kind %s, got %s (%v)", tc.expectedKind, got, err)
				}
				if img != nil {
					t.Errorf("expected nil image on error, got %+v", img)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.MIMEType != tc.expectedMIME {
				t.Errorf("expected MIME %q, got %q", tc.expectedMIME, img.MIMEType)
			}
			decoded, err := img.Decode()
			if err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if !bytes.Equal(decoded, tc.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(decoded), len(tc.data))
			}
		})
	}
}

func TestIngestImage_RoundTripAllByteValues(t *testing.T) {
	data := make([]byte, 0, 256*4)
	for r := 0; r < 4; r++ {
		for b := 0; b < 256; b++ {
			data = append(data, byte(b))
		}
	}
	for _, size := range []int{1, 2, 3, 255, 256, 1023, len(data)} {
		img, err := usecase.IngestImage(data[:size], "")
		if err != nil {
			t.Fatalf("size %d: unexpected error: %v", size, err)
		}
		decoded, err := img.Decode()
		if err != nil {
			t.Fatalf("size %d: failed to decode: %v", size, err)
		}
		if !bytes.Equal(decoded, data[:size]) {
			t.Errorf("size %d: round trip mismatch", size)
		}
	}
}
